package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"linguabird/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestMessages_DirectionNames(t *testing.T) {
	p, err := domain.DefaultDirections().Lookup(domain.DirectionEnUk)
	assert.NoError(t, err)

	plain := Messages{}.SettingsDirection(p)
	flagged := Messages{Decorated: true}.SettingsDirection(p)

	assert.Equal(t, "🌍 Направление: English → Українська", plain)
	assert.Equal(t, "🌍 Направление: 🇬🇧 English → 🇺🇦 Українська", flagged)
}

func TestMessages_DirectionChosen(t *testing.T) {
	p, _ := domain.DefaultDirections().Lookup(domain.DirectionEnRu)
	text := Messages{}.DirectionChosen(p, 4)

	assert.Contains(t, text, "English → Русский")
	assert.Contains(t, text, "<code>apple - яблоко\ncat - кот\nbook - книга</code>")
	assert.Contains(t, text, "× 4")
}

func TestMessages_Help(t *testing.T) {
	profiles := domain.DefaultDirections().All()

	withHistory := Messages{}.Help(profiles, true)
	assert.Contains(t, withHistory, "/history")
	assert.Contains(t, withHistory, "• English → Русский")
	assert.Contains(t, withHistory, "• English → Українська")

	assert.NotContains(t, Messages{}.Help(profiles, false), "/history")
}

func TestMessages_Caption(t *testing.T) {
	pairs := []domain.WordPair{
		{Source: "cat", Target: "кот"},
		{Source: "a<b", Target: "c&d"},
	}
	caption := Messages{}.Caption(pairs)

	assert.Contains(t, caption, "1. <b>cat</b> — кот\n")
	assert.Contains(t, caption, "2. <b>a&lt;b</b> — c&amp;d\n")
	assert.True(t, strings.HasSuffix(caption, "Sincerely yours, LinguaBird"))
}

func TestMessages_CaptionFitsLimit(t *testing.T) {
	var pairs []domain.WordPair
	for i := 0; i < 200; i++ {
		pairs = append(pairs, domain.WordPair{Source: fmt.Sprintf("word%d", i), Target: "перевод"})
	}
	caption := Messages{}.Caption(pairs)

	assert.LessOrEqual(t, utf8.RuneCountInString(caption), captionLimit)
	assert.Contains(t, caption, "…\n")
	assert.Contains(t, caption, "1. <b>word0</b>")
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"no pairs", domain.ErrNoPairsFound, "не найдено пар слов"},
		{"unknown direction", fmt.Errorf("%w: %q", domain.ErrUnknownDirection, "xx"), "неизвестное направление перевода"},
		{"repeat", domain.ErrInvalidRepeatCount, "число повторений должно быть не меньше 1"},
		{"pause", domain.ErrInvalidPause, "пауза не может быть отрицательной"},
		{"synthesis", &domain.SynthesisError{Text: "cat", Language: "en", Err: errors.New("503")}, "не удалось озвучить «cat»: 503"},
		{"timeout", &domain.SynthesisError{Text: "cat", Language: "en", Err: context.DeadlineExceeded}, "превышено время ожидания"},
		{"export", &domain.ExportError{Err: errors.New("ffmpeg exited 1")}, "не удалось сохранить MP3: ffmpeg exited 1"},
		{"wrapped export", fmt.Errorf("render: %w", &domain.ExportError{Err: errors.New("ffmpeg")}), "не удалось сохранить MP3: ffmpeg"},
		{"bare export sentinel", domain.ErrExportFailure, "не удалось сохранить MP3"},
		{"other", errors.New("boom"), "внутренняя ошибка"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeError(tt.err))
		})
	}
}
