package handler

import (
	"bytes"
	"strings"

	"linguabird/internal/domain"
	"linguabird/internal/parser"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText treats every plain message as a word list
func (h *Handler) handleText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	if text == "" || strings.HasPrefix(text, "/") {
		return nil
	}

	pairs := parser.Parse(text)
	if len(pairs) == 0 {
		return c.Send(msgNoPairs, tele.ModeHTML)
	}

	s := h.settings.Get(c.Sender().ID)
	return h.renderAndReply(c, pairs, s, true)
}

// renderAndReply shows a status message, renders the pairs and replies with the audio.
// Render failures are reported to the user and are not returned.
func (h *Handler) renderAndReply(c tele.Context, pairs []domain.WordPair, s domain.Settings, remember bool) error {
	userID := c.Sender().ID

	status, err := h.api.Send(c.Chat(), h.msg.Status(len(pairs), h.profileFor(s), s.RepeatCount))
	if err != nil {
		h.logger.Warn("Failed to send status message", zap.Error(err), zap.Int64("user_id", userID))
	}

	r, err := h.render.RenderPairs(h.ctx, userID, pairs, s)
	if err != nil {
		text := h.msg.RenderFailed(err)
		if status != nil {
			if _, editErr := h.api.Edit(status, text); editErr == nil {
				return nil
			}
		}
		return c.Send(text)
	}

	if remember {
		h.render.Remember(userID, s.Direction, pairs)
	}

	if status != nil {
		if err := h.api.Delete(status); err != nil {
			h.logger.Warn("Failed to delete status message", zap.Error(err))
		}
	}

	audio := &tele.Audio{
		File:      tele.FromReader(bytes.NewReader(r.Audio)),
		FileName:  r.Profile.FileName(),
		MIME:      "audio/mpeg",
		Title:     r.Profile.Label,
		Performer: msgPerformer,
		Caption:   h.msg.Caption(r.Pairs),
	}
	if _, err := h.api.Send(c.Chat(), audio, tele.ModeHTML); err != nil {
		h.logger.Error("Failed to send audio", zap.Error(err), zap.Int64("user_id", userID))
		return err
	}
	return nil
}
