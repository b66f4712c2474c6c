package handler

import (
	"testing"

	"linguabird/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal string",
			input:    "repeat_3",
			expected: "repeat_3",
		},
		{
			name:     "unique prefix from inline buttons",
			input:    "\fday_20260115",
			expected: "day_20260115",
		},
		{
			name:     "string with whitespace",
			input:    "  view_days  ",
			expected: "view_days",
		},
		{
			name:     "string with newline",
			input:    "page\n_2",
			expected: "page_2",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: "",
		},
		{
			name:     "string with unprintable characters",
			input:    "dir_en-ru\x00\x01",
			expected: "dir_en-ru",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanCallbackData(tt.input))
		})
	}
}

func TestParseCallback(t *testing.T) {
	tests := []struct {
		data       string
		wantAction string
		wantArg    string
	}{
		{"dir_en-uk", "dir", "en-uk"},
		{"repeat_7", "repeat", "7"},
		{"pause_1500", "pause", "1500"},
		{"page_2", "page", "2"},
		{"day_20260115", "day", "20260115"},
		{"voice_20260115", "voice", "20260115"},
		{"change_direction", "change_direction", ""},
		{"back_settings", "back_settings", ""},
		{"random_pair", "random_pair", ""},
		{"main_menu", "main_menu", ""},
		{"unknown", "unknown", ""},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			action, arg := parseCallback(tt.data)
			assert.Equal(t, tt.wantAction, action)
			assert.Equal(t, tt.wantArg, arg)
		})
	}
}

func TestOffered(t *testing.T) {
	n, ok := offered("5", domain.RepeatChoices)
	assert.True(t, ok)
	assert.Equal(t, 5, n)

	_, ok = offered("6", domain.RepeatChoices)
	assert.False(t, ok)

	_, ok = offered("abc", domain.PauseChoices)
	assert.False(t, ok)

	_, ok = offered("-300", domain.PauseChoices)
	assert.False(t, ok)
}
