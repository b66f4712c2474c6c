package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"linguabird/internal/domain"
	"linguabird/internal/parser"
	"linguabird/internal/settings"
)

// Assembler turns pairs into encoded audio
type Assembler interface {
	Assemble(ctx context.Context, pairs []domain.WordPair, settings domain.Settings) ([]byte, error)
}

// Rendition is a finished audio file with what it was built from
type Rendition struct {
	Audio    []byte
	Pairs    []domain.WordPair
	Profile  domain.DirectionProfile
	Settings domain.Settings
}

// RenderService turns user text into audio
type RenderService struct {
	assembler  Assembler
	settings   *settings.Store
	directions *domain.Directions
	history    *HistoryService
	timeout    time.Duration
	logger     *zap.Logger
}

// NewRenderService creates a new render service. history may be nil.
func NewRenderService(
	assembler Assembler,
	store *settings.Store,
	directions *domain.Directions,
	history *HistoryService,
	timeout time.Duration,
	logger *zap.Logger,
) *RenderService {
	return &RenderService{
		assembler:  assembler,
		settings:   store,
		directions: directions,
		history:    history,
		timeout:    timeout,
		logger:     logger,
	}
}

// Render parses text and renders it with the user's current settings
func (s *RenderService) Render(ctx context.Context, userID int64, text string) (*Rendition, error) {
	pairs := parser.Parse(text)
	if len(pairs) == 0 {
		return nil, domain.ErrNoPairsFound
	}

	r, err := s.RenderPairs(ctx, userID, pairs, s.settings.Get(userID))
	if err != nil {
		return nil, err
	}

	s.Remember(userID, r.Settings.Direction, pairs)
	return r, nil
}

// Remember logs rendered pairs to history when it is enabled.
// History failures never fail a render.
func (s *RenderService) Remember(userID int64, direction domain.Direction, pairs []domain.WordPair) {
	if s.history == nil {
		return
	}
	if err := s.history.SaveBatch(userID, direction, pairs); err != nil {
		s.logger.Error("Failed to save history",
			zap.Int64("user_id", userID),
			zap.Int("pairs", len(pairs)),
			zap.Error(err))
	}
}

// RenderPairs renders already parsed pairs without touching history
func (s *RenderService) RenderPairs(ctx context.Context, userID int64, pairs []domain.WordPair, set domain.Settings) (*Rendition, error) {
	if len(pairs) == 0 {
		return nil, domain.ErrNoPairsFound
	}

	profile, err := s.directions.Lookup(set.Direction)
	if err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log := s.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.Int64("user_id", userID),
		zap.String("direction", string(set.Direction)),
	)
	log.Info("Rendering audio",
		zap.Int("pairs", len(pairs)),
		zap.Int("repeat", set.RepeatCount),
		zap.Int("pause_ms", set.PauseMs))

	started := time.Now()
	data, err := s.assembler.Assemble(ctx, pairs, set)
	if err != nil {
		log.Error("Failed to render audio", zap.Error(err))
		return nil, err
	}

	log.Info("Audio rendered",
		zap.Int("bytes", len(data)),
		zap.Duration("took", time.Since(started)))

	return &Rendition{
		Audio:    data,
		Pairs:    pairs,
		Profile:  profile,
		Settings: set,
	}, nil
}

// Settings returns the user's current settings
func (s *RenderService) Settings(userID int64) domain.Settings {
	return s.settings.Get(userID)
}

// HistoryEnabled reports whether renders are logged
func (s *RenderService) HistoryEnabled() bool {
	return s.history != nil
}
