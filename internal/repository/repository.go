package repository

import (
	"time"

	"linguabird/internal/domain"
)

// UserRepository defines access list operations
type UserRepository interface {
	IsAuthorized(userID int64) (bool, error)
	AuthorizeUser(userID int64) error
	EnsureUserExists(userID int64) error
}

// WordRepository defines word history operations
type WordRepository interface {
	SaveWords(userID int64, direction domain.Direction, pairs []domain.WordPair) error
	GetRandomWord(userID int64) (*domain.Word, error)
	GetDaysWithWords(userID int64, limit, offset int) ([]domain.Day, error)
	GetTotalDaysCount(userID int64) (int, error)
	GetWordsByDate(userID int64, date time.Time) ([]domain.Word, error)
	CleanOldWords(days int) error
}
