package audio

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"linguabird/internal/domain"

	"github.com/gopxl/beep/v2"
	"go.uber.org/zap"
)

// Synthesizer renders text in a language into encoded speech audio
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

// Assembler builds one audio file out of word pairs
type Assembler struct {
	synth      Synthesizer
	decoder    Decoder
	exporter   Exporter
	directions *domain.Directions
	format     beep.Format
	logger     *zap.Logger
}

// NewAssembler creates an assembler producing DefaultFormat audio
func NewAssembler(
	synth Synthesizer,
	decoder Decoder,
	exporter Exporter,
	directions *domain.Directions,
	logger *zap.Logger,
) *Assembler {
	return &Assembler{
		synth:      synth,
		decoder:    decoder,
		exporter:   exporter,
		directions: directions,
		format:     DefaultFormat,
		logger:     logger,
	}
}

// Assemble renders pairs with the given settings and returns the exported file.
// Any failure aborts the whole run and no audio is returned.
func (a *Assembler) Assemble(ctx context.Context, pairs []domain.WordPair, settings domain.Settings) ([]byte, error) {
	buf, err := a.Build(ctx, pairs, settings)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := a.exporter.Export(ctx, buf, &out); err != nil {
		return nil, &domain.ExportError{Err: err}
	}

	a.logger.Debug("Audio exported",
		zap.Int("pairs", len(pairs)),
		zap.Duration("duration", buf.Duration()),
		zap.Int("bytes", out.Len()),
	)
	return out.Bytes(), nil
}

// Build renders pairs into a PCM buffer: for each pair the source term
// RepeatCount times, each followed by the short pause, then the target term
// followed by a pause twice as long.
func (a *Assembler) Build(ctx context.Context, pairs []domain.WordPair, settings domain.Settings) (*Buffer, error) {
	if len(pairs) == 0 {
		return nil, domain.ErrNoPairsFound
	}
	if settings.RepeatCount < 1 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidRepeatCount, settings.RepeatCount)
	}
	if settings.PauseMs < 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidPause, settings.PauseMs)
	}
	profile, err := a.directions.Lookup(settings.Direction)
	if err != nil {
		return nil, err
	}

	shortPause := time.Duration(settings.PauseMs) * time.Millisecond
	longPause := 2 * shortPause

	buf := NewBuffer(a.format)
	for _, pair := range pairs {
		for i := 0; i < settings.RepeatCount; i++ {
			if err := a.appendSpeech(ctx, buf, pair.Source, profile.Source); err != nil {
				return nil, err
			}
			buf.AppendSilence(shortPause)
		}
		if err := a.appendSpeech(ctx, buf, pair.Target, profile.Target); err != nil {
			return nil, err
		}
		buf.AppendSilence(longPause)
	}
	return buf, nil
}

// appendSpeech synthesizes one rendering and appends it. The decoded clip is
// released before returning on every path.
func (a *Assembler) appendSpeech(ctx context.Context, buf *Buffer, text, lang string) error {
	if err := ctx.Err(); err != nil {
		return &domain.SynthesisError{Text: text, Language: lang, Err: err}
	}

	data, err := a.synth.Synthesize(ctx, text, lang)
	if err != nil {
		return &domain.SynthesisError{Text: text, Language: lang, Err: err}
	}

	clip, format, err := a.decoder.Decode(data)
	if err != nil {
		return &domain.SynthesisError{Text: text, Language: lang, Err: err}
	}
	defer func() {
		if cerr := clip.Close(); cerr != nil {
			a.logger.Warn("Failed to release clip", zap.String("text", text), zap.Error(cerr))
		}
	}()

	if err := buf.AppendClip(clip, format); err != nil {
		return &domain.SynthesisError{Text: text, Language: lang, Err: err}
	}
	return nil
}
