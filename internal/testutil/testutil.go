package testutil

import (
	"time"

	"linguabird/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestWord creates a test history word
func NewTestWord(id int, userID int64, word, translation string) *domain.Word {
	return &domain.Word{
		ID:          id,
		UserID:      userID,
		Word:        word,
		Translation: translation,
		Direction:   domain.DirectionEnRu,
		CreatedAt:   time.Now(),
	}
}

// NewTestDay creates a test day
func NewTestDay(date time.Time, wordCount int) domain.Day {
	return domain.Day{
		Date:      date,
		WordCount: wordCount,
	}
}

// NewTestPairs returns n distinct pairs
func NewTestPairs(n int) []domain.WordPair {
	words := []domain.WordPair{
		{Source: "apple", Target: "яблоко"},
		{Source: "cat", Target: "кот"},
		{Source: "book", Target: "книга"},
		{Source: "dog", Target: "собака"},
		{Source: "house", Target: "дом"},
	}
	out := make([]domain.WordPair, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, words[i%len(words)])
	}
	return out
}
