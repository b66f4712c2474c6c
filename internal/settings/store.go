// Package settings keeps per-user rendering preferences in memory.
package settings

import (
	"fmt"
	"strconv"
	"sync"

	"linguabird/internal/domain"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Field names a settings attribute that can be changed from the keyboard
type Field string

const (
	FieldRepeat    Field = "repeat"
	FieldPause     Field = "pause"
	FieldDirection Field = "direction"
)

// DefaultCapacity is the number of users kept before the least recently used are evicted
const DefaultCapacity = 10000

// Store maps user ids to settings. Users are created lazily with defaults,
// and evicted users fall back to defaults on their next access.
type Store struct {
	mu    sync.Mutex
	cache *lru.Cache[int64, domain.Settings]
}

// NewStore creates a store holding at most capacity users
func NewStore(capacity int) (*Store, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	cache, err := lru.New[int64, domain.Settings](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings cache: %w", err)
	}
	return &Store{cache: cache}, nil
}

// Get returns the user's settings, creating defaults on first access
func (s *Store) Get(userID int64) domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(userID)
}

func (s *Store) getLocked(userID int64) domain.Settings {
	if st, ok := s.cache.Get(userID); ok {
		return st
	}
	st := domain.DefaultSettings()
	s.cache.Add(userID, st)
	return st
}

// Set changes one field from its textual value (as carried in callback data).
// Values are not range checked.
func (s *Store) Set(userID int64, field Field, value string) error {
	switch field {
	case FieldRepeat:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: repeat %q", domain.ErrInvalidValue, value)
		}
		s.SetRepeatCount(userID, n)
	case FieldPause:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: pause %q", domain.ErrInvalidValue, value)
		}
		s.SetPause(userID, n)
	case FieldDirection:
		if value == "" {
			return fmt.Errorf("%w: empty direction", domain.ErrInvalidValue)
		}
		s.SetDirection(userID, domain.Direction(value))
	default:
		return fmt.Errorf("%w: unknown field %q", domain.ErrInvalidValue, field)
	}
	return nil
}

// SetRepeatCount sets how many times the source term is spoken
func (s *Store) SetRepeatCount(userID int64, n int) {
	s.update(userID, func(st *domain.Settings) { st.RepeatCount = n })
}

// SetPause sets the short pause in milliseconds
func (s *Store) SetPause(userID int64, ms int) {
	s.update(userID, func(st *domain.Settings) { st.PauseMs = ms })
}

// SetDirection sets the translation direction
func (s *Store) SetDirection(userID int64, d domain.Direction) {
	s.update(userID, func(st *domain.Settings) { st.Direction = d })
}

// Len returns the number of users currently held
func (s *Store) Len() int {
	return s.cache.Len()
}

func (s *Store) update(userID int64, fn func(*domain.Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.getLocked(userID)
	fn(&st)
	s.cache.Add(userID, st)
}
