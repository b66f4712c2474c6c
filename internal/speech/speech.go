// Package speech provides text-to-speech providers and the decorators
// (retry, circuit breaker, memoization) the bot wraps them in.
package speech

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Synthesizer renders text in a language into MP3 audio
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

// Provider names
const (
	ProviderGoogle = "google"
	ProviderOpenAI = "openai"
)

// Config holds provider selection and resilience settings
type Config struct {
	Provider string

	// OpenAI TTS
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	OpenAIVoice   string
	OpenAISpeed   float64

	Timeout         time.Duration // per call
	MaxAttempts     int
	RetryDelay      time.Duration // first backoff, doubled per attempt
	BreakerFailures uint32        // consecutive failures that open the breaker
	BreakerOpenFor  time.Duration
	CacheSize       int // 0 disables the cache
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() Config {
	return Config{
		Provider:        ProviderGoogle,
		OpenAIModel:     "tts-1",
		OpenAIVoice:     "alloy",
		OpenAISpeed:     1.0,
		Timeout:         15 * time.Second,
		MaxAttempts:     3,
		RetryDelay:      500 * time.Millisecond,
		BreakerFailures: 5,
		BreakerOpenFor:  30 * time.Second,
		CacheSize:       2048,
	}
}

// New builds the provider chain: cache -> retry/breaker -> provider
func New(cfg Config, logger *zap.Logger) (Synthesizer, error) {
	var provider Synthesizer
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderGoogle, "google-translate", "google_translate":
		provider = NewGoogleTranslate()
	case ProviderOpenAI:
		p, err := NewOpenAI(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.OpenAIVoice, cfg.OpenAISpeed)
		if err != nil {
			return nil, err
		}
		provider = p
	default:
		return nil, fmt.Errorf("unknown tts provider: %s", cfg.Provider)
	}

	var synth Synthesizer = NewResilient(provider, ResilientOptions{
		Timeout:         cfg.Timeout,
		MaxAttempts:     cfg.MaxAttempts,
		RetryDelay:      cfg.RetryDelay,
		BreakerFailures: cfg.BreakerFailures,
		BreakerOpenFor:  cfg.BreakerOpenFor,
	}, logger)

	if cfg.CacheSize > 0 {
		cached, err := NewCached(synth, cfg.CacheSize)
		if err != nil {
			return nil, err
		}
		synth = cached
	}
	return synth, nil
}
