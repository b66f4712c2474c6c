package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start and the main_menu button
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	if err := h.auth.EnsureUserExists(userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return c.Send(msgInternalError)
	}

	return h.show(c, h.msg.Welcome(), h.directionMarkup(false), tele.ModeHTML)
}

// handleHelp handles /help command
func (h *Handler) handleHelp(c tele.Context) error {
	return c.Send(h.msg.Help(h.directions.All(), h.history != nil), tele.ModeHTML)
}

// handleExample handles /example command
func (h *Handler) handleExample(c tele.Context) error {
	s := h.settings.Get(c.Sender().ID)
	return c.Send(h.msg.Example(h.profileFor(s)), tele.ModeHTML)
}

// handleSettings handles /settings and the back_settings button
func (h *Handler) handleSettings(c tele.Context) error {
	s := h.settings.Get(c.Sender().ID)
	return h.show(c, msgChooseSetting, h.settingsMarkup(s), tele.ModeHTML)
}

// show edits the message under a pressed button, or sends a new one for commands
func (h *Handler) show(c tele.Context, text string, opts ...interface{}) error {
	if c.Callback() == nil {
		return c.Send(text, opts...)
	}
	if err := c.Edit(text, opts...); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil
		}
		return c.Send(text, opts...)
	}
	return c.Respond()
}
