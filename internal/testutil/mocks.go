package testutil

import (
	"context"
	"time"

	"linguabird/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockSynthesizer is a mock for speech synthesizers.
// The first return value may be a func(ctx, text, lang) []byte to echo arguments.
type MockSynthesizer struct {
	mock.Mock
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	args := m.Called(ctx, text, lang)
	switch v := args.Get(0).(type) {
	case nil:
		return nil, args.Error(1)
	case func(context.Context, string, string) []byte:
		return v(ctx, text, lang), args.Error(1)
	default:
		return args.Get(0).([]byte), args.Error(1)
	}
}

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) IsAuthorized(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AuthorizeUser(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureUserExists(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockWordRepository is a mock for WordRepository
type MockWordRepository struct {
	mock.Mock
}

func (m *MockWordRepository) SaveWords(userID int64, direction domain.Direction, pairs []domain.WordPair) error {
	args := m.Called(userID, direction, pairs)
	return args.Error(0)
}

func (m *MockWordRepository) GetRandomWord(userID int64) (*domain.Word, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

func (m *MockWordRepository) GetDaysWithWords(userID int64, limit, offset int) ([]domain.Day, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Day), args.Error(1)
}

func (m *MockWordRepository) GetWordsByDate(userID int64, date time.Time) ([]domain.Word, error) {
	args := m.Called(userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Word), args.Error(1)
}

func (m *MockWordRepository) CleanOldWords(days int) error {
	args := m.Called(days)
	return args.Error(0)
}

func (m *MockWordRepository) GetTotalDaysCount(userID int64) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

// MockAssembler is a mock for the audio assembler
type MockAssembler struct {
	mock.Mock
}

func (m *MockAssembler) Assemble(ctx context.Context, pairs []domain.WordPair, settings domain.Settings) ([]byte, error) {
	args := m.Called(ctx, pairs, settings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
