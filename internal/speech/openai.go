package speech

import (
	"context"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
)

// OpenAI synthesizes speech with the OpenAI audio API. The model detects the
// language from the text, so lang is only used for error messages.
type OpenAI struct {
	client *openai.Client
	model  string
	voice  string
	speed  float64
}

// NewOpenAI creates the provider. baseURL may point to any compatible server.
func NewOpenAI(apiKey, baseURL, model, voice string, speed float64) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = "tts-1"
	}
	if voice == "" {
		voice = "alloy"
	}
	if speed <= 0 {
		speed = 1.0
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		voice:  voice,
		speed:  speed,
	}, nil
}

// Synthesize implements Synthesizer
func (p *OpenAI) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	resp, err := p.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.model),
		Input:          text,
		Voice:          openai.SpeechVoice(p.voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          p.speed,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI TTS API error (%s): %w", lang, err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenAI TTS response: %w", err)
	}
	return data, nil
}
