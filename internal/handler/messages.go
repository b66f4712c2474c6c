package handler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"linguabird/internal/domain"
)

// captionLimit is the Telegram limit for media captions
const captionLimit = 1024

const (
	msgInternalError   = "Произошла ошибка. Попробуйте позже."
	msgLoadError       = "Ошибка при загрузке данных"
	msgNoWords         = "У тебя пока нет сохранённых слов"
	msgNoWordsForDay   = "Нет слов за этот день"
	msgNoData          = "Нет данных"
	msgBadPage         = "Неверная страница"
	msgBadValue        = "Недопустимое значение"
	msgHistoryDisabled = "История слов отключена"
	msgRenderBusy      = "🎙️ Создаю аудио за выбранный день..."
	msgChooseSetting   = "⚙️ <b>Настройки</b>\n\nВыберите параметр для изменения:"
	msgChooseDirection = "🌍 Выберите направление перевода:"
	msgChooseRepeat    = "🔁 Сколько раз повторять английское слово?"
	msgChoosePause     = "⏱️ Пауза между словами:"
	msgDaysTitle       = "📅 Вот твои дни:\n\n"
	msgMainMenu        = "🏠 Главное меню\n\nВыберите действие:"
	msgNoPairs         = "❌ Не найдено пар слов.\n\nИспользуйте формат:\n<code>apple - яблоко\ncat - кот</code>"
	msgPerformer       = "English Learning Bot"
)

// Messages renders user facing texts.
// Decorated switches direction names to their flag variant.
type Messages struct {
	Decorated bool
}

func (m Messages) direction(p domain.DirectionProfile) string {
	return p.DisplayName(m.Decorated)
}

// Welcome is the /start text shown above the direction keyboard
func (m Messages) Welcome() string {
	return "🎧 <b>Добро пожаловать!</b>\n\n" +
		"Я создаю аудио для изучения английских слов.\n\n" +
		"<b>Выберите язык перевода:</b>"
}

// DirectionChosen explains the input format after a direction is picked
func (m Messages) DirectionChosen(p domain.DirectionProfile, repeat int) string {
	return fmt.Sprintf("✅ <b>Выбрано направление:</b>\n%s\n\n"+
		"📝 <b>Как использовать:</b>\n"+
		"Отправьте список слов в формате:\n\n"+
		"<code>%s</code>\n\n"+
		"Я создам MP3 файл, где:\n"+
		"• Английское слово × %d\n"+
		"• Перевод × 1 раз\n\n"+
		"🎵 <b>Отправьте слова и получите аудио!</b>",
		html.EscapeString(m.direction(p)), html.EscapeString(p.Example), repeat)
}

// Help lists commands and registered directions
func (m Messages) Help(profiles []domain.DirectionProfile, history bool) string {
	var b strings.Builder
	b.WriteString("📖 <b>Справка</b>\n\n<b>Команды:</b>\n")
	b.WriteString("/start - Начать работу\n")
	b.WriteString("/settings - Настройки\n")
	b.WriteString("/example - Пример для текущего направления\n")
	if history {
		b.WriteString("/history - Слова по дням\n")
		b.WriteString("/random - Случайная пара\n")
	}
	b.WriteString("/help - Справка\n\n")
	b.WriteString("<b>Как использовать:</b>\n\n")
	b.WriteString("1. Выберите направление перевода\n")
	b.WriteString("2. Отправьте слова в формате:\n\n")
	b.WriteString("<code>apple - яблоко\ncat - кот\ndog - собака</code>\n\n")
	b.WriteString("3. Получите MP3 аудио!\n\n")
	b.WriteString("<b>Поддерживаемые направления:</b>\n")
	for _, p := range profiles {
		b.WriteString("• " + html.EscapeString(m.direction(p)) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Example shows a ready-to-send word list for the current direction
func (m Messages) Example(p domain.DirectionProfile) string {
	return fmt.Sprintf("📝 <b>Пример</b>\n\n"+
		"<b>Текущее направление:</b>\n%s\n\n"+
		"<b>Отправьте такой текст:</b>\n\n"+
		"<code>%s</code>\n\n"+
		"И я создам аудио! 🎵",
		html.EscapeString(m.direction(p)), html.EscapeString(p.Example))
}

// SettingsDirection is the label of the direction settings button
func (m Messages) SettingsDirection(p domain.DirectionProfile) string {
	return "🌍 Направление: " + m.direction(p)
}

// SettingsRepeat is the label of the repeat settings button
func (m Messages) SettingsRepeat(n int) string {
	return fmt.Sprintf("🔁 Повторений: %d", n)
}

// SettingsPause is the label of the pause settings button
func (m Messages) SettingsPause(ms int) string {
	return fmt.Sprintf("⏱️ Пауза: %dмс", ms)
}

// RepeatSet confirms a new repeat count
func (m Messages) RepeatSet(n int) string {
	return fmt.Sprintf("✅ Установлено: %d× повторений", n)
}

// PauseSet confirms a new pause
func (m Messages) PauseSet(ms int) string {
	return fmt.Sprintf("✅ Установлено: %dмс пауза", ms)
}

// Status is shown while audio is being rendered
func (m Messages) Status(pairs int, p domain.DirectionProfile, repeat int) string {
	return fmt.Sprintf("🎙️ Создаю аудио...\n\n📊 Пар слов: %d\n🌍 %s\n🔁 Повторений: %d×",
		pairs, m.direction(p), repeat)
}

// Caption lists the rendered pairs under the audio.
// Lines that do not fit the caption limit are replaced with an ellipsis.
func (m Messages) Caption(pairs []domain.WordPair) string {
	const (
		header = "📚 <b>Your words. Let's get started!</b>\n\n"
		footer = "\n🫶🏼 <b>You're getting better every day!</b>\nSincerely yours, LinguaBird"
		more   = "…\n"
	)

	var b strings.Builder
	b.WriteString(header)
	budget := captionLimit - len([]rune(header)) - len([]rune(footer)) - len([]rune(more))
	for i, p := range pairs {
		line := fmt.Sprintf("%d. <b>%s</b> — %s\n", i+1, html.EscapeString(p.Source), html.EscapeString(p.Target))
		n := len([]rune(line))
		if n > budget {
			b.WriteString(more)
			break
		}
		budget -= n
		b.WriteString(line)
	}
	b.WriteString(footer)
	return b.String()
}

// RenderFailed describes a failed render
func (m Messages) RenderFailed(err error) string {
	return "❌ Ошибка при создании аудио:\n" + describeError(err) + "\n\nПопробуйте снова: /start"
}

// RandomPair shows one word from history
func (m Messages) RandomPair(w *domain.Word) string {
	return fmt.Sprintf("🎲 Случайная пара:\n\n📝 %s\n🔄 %s", w.Word, w.Translation)
}

// DayWords lists the words of a day
func (m Messages) DayWords(words []domain.Word) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📝 Слова за выбранный день (%d):\n\n", len(words))
	for i, w := range words {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, w.Word, w.Translation)
	}
	return b.String()
}

// DayButton is the label of a day in the history list
func (m Messages) DayButton(d domain.Day) string {
	return fmt.Sprintf("%s (%d)", d.DisplayString(), d.WordCount)
}

func describeError(err error) string {
	var (
		synthErr  *domain.SynthesisError
		exportErr *domain.ExportError
	)
	switch {
	case errors.Is(err, domain.ErrNoPairsFound):
		return "не найдено пар слов"
	case errors.Is(err, domain.ErrUnknownDirection):
		return "неизвестное направление перевода"
	case errors.Is(err, domain.ErrInvalidRepeatCount):
		return "число повторений должно быть не меньше 1"
	case errors.Is(err, domain.ErrInvalidPause):
		return "пауза не может быть отрицательной"
	case errors.Is(err, context.DeadlineExceeded):
		return "превышено время ожидания"
	case errors.As(err, &synthErr):
		return fmt.Sprintf("не удалось озвучить «%s»: %v", synthErr.Text, synthErr.Err)
	case errors.As(err, &exportErr):
		return fmt.Sprintf("не удалось сохранить MP3: %v", exportErr.Err)
	case errors.Is(err, domain.ErrExportFailure):
		return "не удалось сохранить MP3"
	default:
		return "внутренняя ошибка"
	}
}
