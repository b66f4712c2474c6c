package handler

import (
	"strconv"
	"strings"
	"unicode"

	"linguabird/internal/domain"
	"linguabird/internal/settings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// callbackPrefixes carry an argument after the prefix
var callbackPrefixes = []string{"dir_", "repeat_", "pause_", "page_", "day_", "voice_"}

// parseCallback splits cleaned callback data into an action and its argument
func parseCallback(data string) (action, arg string) {
	for _, p := range callbackPrefixes {
		if strings.HasPrefix(data, p) {
			return strings.TrimSuffix(p, "_"), strings.TrimPrefix(data, p)
		}
	}
	return data, ""
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	data := cleanCallbackData(callback.Data)
	if data == "" {
		data = callback.Unique
	}
	action, arg := parseCallback(data)

	h.logger.Debug("Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.Int64("user_id", c.Sender().ID),
	)

	switch action {
	case "dir":
		return h.handleDirection(c, arg)
	case "change_direction":
		return h.show(c, msgChooseDirection, h.directionMarkup(true))
	case "change_repeat":
		return h.show(c, msgChooseRepeat, repeatMarkup())
	case "change_pause":
		return h.show(c, msgChoosePause, pauseMarkup())
	case "repeat":
		return h.handleRepeat(c, arg)
	case "pause":
		return h.handlePause(c, arg)
	case "back_settings":
		return h.handleSettings(c)
	case "view_days":
		return h.handleViewDays(c)
	case "page":
		return h.handlePagination(c, arg)
	case "day":
		return h.handleDaySelection(c, arg)
	case "voice":
		return h.handleVoiceDay(c, arg)
	case "random_pair", "more":
		return h.handleRandomPair(c)
	case "main_menu":
		return h.handleStart(c)
	}

	h.logger.Warn("Unhandled callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleDirection stores the chosen direction and explains the input format
func (h *Handler) handleDirection(c tele.Context, code string) error {
	userID := c.Sender().ID

	profile, err := h.directions.Lookup(domain.Direction(code))
	if err != nil {
		h.logger.Warn("Unknown direction selected", zap.String("direction", code), zap.Int64("user_id", userID))
		return c.Respond(&tele.CallbackResponse{Text: msgBadValue})
	}
	if err := h.settings.Set(userID, settings.FieldDirection, code); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: msgBadValue})
	}

	h.logger.Info("Direction selected", zap.Int64("user_id", userID), zap.String("direction", code))

	s := h.settings.Get(userID)
	return h.show(c, h.msg.DirectionChosen(profile, s.RepeatCount), tele.ModeHTML)
}

// handleRepeat stores one of the offered repeat counts
func (h *Handler) handleRepeat(c tele.Context, value string) error {
	n, ok := offered(value, domain.RepeatChoices)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: msgBadValue})
	}
	if err := h.settings.Set(c.Sender().ID, settings.FieldRepeat, value); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: msgBadValue})
	}
	return h.show(c, h.msg.RepeatSet(n))
}

// handlePause stores one of the offered pauses
func (h *Handler) handlePause(c tele.Context, value string) error {
	ms, ok := offered(value, domain.PauseChoices)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: msgBadValue})
	}
	if err := h.settings.Set(c.Sender().ID, settings.FieldPause, value); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: msgBadValue})
	}
	return h.show(c, h.msg.PauseSet(ms))
}

// offered parses value and reports whether it is one of choices
func offered(value string, choices []int) (int, bool) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	for _, c := range choices {
		if c == n {
			return n, true
		}
	}
	return 0, false
}
