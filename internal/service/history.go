package service

import (
	"fmt"
	"time"

	"linguabird/internal/domain"
	"linguabird/internal/repository"
)

// DaysPageSize is the number of days shown per history page
const DaysPageSize = 7

// HistoryService handles the log of rendered words
type HistoryService struct {
	wordRepo repository.WordRepository
}

// NewHistoryService creates a new history service
func NewHistoryService(wordRepo repository.WordRepository) *HistoryService {
	return &HistoryService{wordRepo: wordRepo}
}

// SaveBatch stores the pairs of one render
func (s *HistoryService) SaveBatch(userID int64, direction domain.Direction, pairs []domain.WordPair) error {
	if len(pairs) == 0 {
		return domain.ErrNoPairsFound
	}
	for _, p := range pairs {
		if p.Source == "" || p.Target == "" {
			return fmt.Errorf("word and translation cannot be empty")
		}
	}
	return s.wordRepo.SaveWords(userID, direction, pairs)
}

// GetRandomPair returns a random word-translation pair, nil when history is empty
func (s *HistoryService) GetRandomPair(userID int64) (*domain.Word, error) {
	return s.wordRepo.GetRandomWord(userID)
}

// GetDaysList returns paginated list of days with word counts
func (s *HistoryService) GetDaysList(userID int64, page int) ([]domain.Day, int, error) {
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * DaysPageSize
	days, err := s.wordRepo.GetDaysWithWords(userID, DaysPageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	totalDays, err := s.wordRepo.GetTotalDaysCount(userID)
	if err != nil {
		return nil, 0, err
	}

	totalPages := (totalDays + DaysPageSize - 1) / DaysPageSize
	if totalPages == 0 {
		totalPages = 1
	}

	return days, totalPages, nil
}

// GetWordsByDate returns all words for a date in YYYYMMDD format
func (s *HistoryService) GetWordsByDate(userID int64, dateStr string) ([]domain.Word, error) {
	date, err := time.Parse("20060102", dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date format: %w", err)
	}

	return s.wordRepo.GetWordsByDate(userID, date)
}

// PairsByDate returns the pairs rendered on a day, grouped by direction
// in the order each direction first appeared.
func (s *HistoryService) PairsByDate(userID int64, dateStr string) ([]DirectionBatch, error) {
	words, err := s.GetWordsByDate(userID, dateStr)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, domain.ErrNoPairsFound
	}

	var batches []DirectionBatch
	index := make(map[domain.Direction]int)
	for _, w := range words {
		i, ok := index[w.Direction]
		if !ok {
			i = len(batches)
			index[w.Direction] = i
			batches = append(batches, DirectionBatch{Direction: w.Direction})
		}
		batches[i].Pairs = append(batches[i].Pairs, w.Pair())
	}
	return batches, nil
}

// DirectionBatch is a run of pairs sharing one direction
type DirectionBatch struct {
	Direction domain.Direction
	Pairs     []domain.WordPair
}
