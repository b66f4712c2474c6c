package handler

import (
	"fmt"

	"linguabird/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// Static inline buttons
var (
	btnViewDays = tele.Btn{
		Unique: "view_days",
		Text:   "📅 Посмотреть дни",
	}
	btnRandomPair = tele.Btn{
		Unique: "random_pair",
		Text:   "🎲 Случайная пара",
	}
	btnMore = tele.Btn{
		Unique: "more",
		Text:   "🔄 Ещё",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Главное меню",
	}
	btnBackSettings = tele.Btn{
		Unique: "back_settings",
		Text:   "« Назад",
	}
)

// buttonsPerRow for numeric choice keyboards
const buttonsPerRow = 3

// directionMarkup lists registered directions, with a back button when asked
func (h *Handler) directionMarkup(withBack bool) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	var rows []tele.Row
	for _, p := range h.directions.All() {
		rows = append(rows, markup.Row(markup.Data(h.msg.direction(p), "dir_"+string(p.Code))))
	}
	if withBack {
		rows = append(rows, markup.Row(btnBackSettings))
	} else if h.history != nil {
		rows = append(rows, markup.Row(btnViewDays, btnRandomPair))
	}
	markup.Inline(rows...)
	return markup
}

// settingsMarkup shows the current value of every setting
func (h *Handler) settingsMarkup(s domain.Settings) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data(h.msg.SettingsDirection(h.profileFor(s)), "change_direction")),
		markup.Row(markup.Data(h.msg.SettingsRepeat(s.RepeatCount), "change_repeat")),
		markup.Row(markup.Data(h.msg.SettingsPause(s.PauseMs), "change_pause")),
	)
	return markup
}

// choiceMarkup lays out numeric choices in rows with a back button
func choiceMarkup(choices []int, prefix, format string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	var rows []tele.Row
	var row tele.Row
	for _, v := range choices {
		row = append(row, markup.Data(fmt.Sprintf(format, v), fmt.Sprintf("%s%d", prefix, v)))
		if len(row) == buttonsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, markup.Row(btnBackSettings))
	markup.Inline(rows...)
	return markup
}

func repeatMarkup() *tele.ReplyMarkup {
	return choiceMarkup(domain.RepeatChoices, "repeat_", "%d")
}

func pauseMarkup() *tele.ReplyMarkup {
	return choiceMarkup(domain.PauseChoices, "pause_", "%dмс")
}

// daysMarkup lists one page of history days with navigation
func (h *Handler) daysMarkup(days []domain.Day, page, totalPages int) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	var rows []tele.Row

	for _, day := range days {
		rows = append(rows, markup.Row(markup.Data(h.msg.DayButton(day), "day_"+day.DateString())))
	}

	if totalPages > 1 {
		var nav tele.Row
		if page > 1 {
			nav = append(nav, markup.Data("⬅️", fmt.Sprintf("page_%d", page-1)))
		}
		if page < totalPages {
			nav = append(nav, markup.Data("➡️", fmt.Sprintf("page_%d", page+1)))
		}
		if len(nav) > 0 {
			rows = append(rows, nav)
		}
	}

	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)
	return markup
}

// dayMarkup is shown under the words of one day
func dayMarkup(dateStr string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("🎧 Озвучить", "voice_"+dateStr)),
		markup.Row(markup.Data("◀️ К дням", "view_days"), btnMainMenu),
	)
	return markup
}

func randomMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnMore),
		markup.Row(btnMainMenu),
	)
	return markup
}
