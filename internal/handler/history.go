package handler

import (
	"errors"
	"strconv"

	"linguabird/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// historyDisabled answers history requests when no database is configured
func (h *Handler) historyDisabled(c tele.Context) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: msgHistoryDisabled, ShowAlert: true})
	}
	return c.Send(msgHistoryDisabled)
}

// fail answers a failed history request
func (h *Handler) fail(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text})
	}
	return c.Send(text)
}

// handleViewDays shows the first page of days with words
func (h *Handler) handleViewDays(c tele.Context) error {
	if h.history == nil {
		return h.historyDisabled(c)
	}
	return h.showDays(c, 1)
}

// handlePagination handles page navigation
func (h *Handler) handlePagination(c tele.Context, pageStr string) error {
	if h.history == nil {
		return h.historyDisabled(c)
	}
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return c.Respond(&tele.CallbackResponse{Text: msgBadPage})
	}
	return h.showDays(c, page)
}

func (h *Handler) showDays(c tele.Context, page int) error {
	userID := c.Sender().ID

	days, totalPages, err := h.history.GetDaysList(userID, page)
	if err != nil {
		h.logger.Error("Failed to get days list", zap.Error(err), zap.Int64("user_id", userID))
		return h.fail(c, msgLoadError)
	}

	if len(days) == 0 {
		if page > 1 {
			return c.Respond(&tele.CallbackResponse{Text: msgNoData})
		}
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: msgNoWords, ShowAlert: true})
		}
		return c.Send(msgNoWords)
	}

	return h.show(c, msgDaysTitle, h.daysMarkup(days, page, totalPages))
}

// handleDaySelection shows words for selected day
func (h *Handler) handleDaySelection(c tele.Context, dateStr string) error {
	if h.history == nil {
		return h.historyDisabled(c)
	}
	userID := c.Sender().ID

	words, err := h.history.GetWordsByDate(userID, dateStr)
	if err != nil {
		h.logger.Error("Failed to get words by date", zap.Error(err), zap.String("date", dateStr))
		return c.Respond(&tele.CallbackResponse{Text: msgLoadError})
	}

	if len(words) == 0 {
		return c.Respond(&tele.CallbackResponse{Text: msgNoWordsForDay})
	}

	return h.show(c, h.msg.DayWords(words), dayMarkup(dateStr))
}

// handleRandomPair shows a random word-translation pair
func (h *Handler) handleRandomPair(c tele.Context) error {
	if h.history == nil {
		return h.historyDisabled(c)
	}
	userID := c.Sender().ID

	lock := h.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	word, err := h.history.GetRandomPair(userID)
	if err != nil {
		h.logger.Error("Failed to get random word", zap.Error(err))
		return h.fail(c, msgLoadError)
	}

	if word == nil {
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: msgNoWords, ShowAlert: true})
		}
		return c.Send(msgNoWords)
	}

	return h.show(c, h.msg.RandomPair(word), randomMarkup())
}

// handleVoiceDay renders again everything the user rendered on a day,
// one audio per direction, with the user's current repeat and pause.
func (h *Handler) handleVoiceDay(c tele.Context, dateStr string) error {
	if h.history == nil {
		return h.historyDisabled(c)
	}
	userID := c.Sender().ID

	batches, err := h.history.PairsByDate(userID, dateStr)
	if errors.Is(err, domain.ErrNoPairsFound) {
		return c.Respond(&tele.CallbackResponse{Text: msgNoWordsForDay})
	}
	if err != nil {
		h.logger.Error("Failed to load day for voicing", zap.Error(err), zap.String("date", dateStr))
		return c.Respond(&tele.CallbackResponse{Text: msgLoadError})
	}

	if err := c.Respond(&tele.CallbackResponse{Text: msgRenderBusy}); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}

	current := h.settings.Get(userID)
	for _, b := range batches {
		s := current
		s.Direction = b.Direction
		if err := h.renderAndReply(c, b.Pairs, s, false); err != nil {
			return err
		}
	}
	return nil
}
