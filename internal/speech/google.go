package speech

import (
	"context"
	"fmt"
	"io"

	gtts "github.com/GrailFinder/google-translate-tts"
)

// GoogleTranslate synthesizes speech through the Google Translate TTS endpoint.
// GenerateSpeech keeps everything in memory, and the library only applies
// Speed during its own playback, so neither Folder nor Speed is set.
type GoogleTranslate struct{}

// NewGoogleTranslate creates the provider
func NewGoogleTranslate() *GoogleTranslate {
	return &GoogleTranslate{}
}

type speechResult struct {
	data []byte
	err  error
}

// Synthesize implements Synthesizer. The library issues a plain http.Get with
// no context or client timeout, so cancellation abandons the in-flight request
// and its goroutine lives until the endpoint answers.
func (g *GoogleTranslate) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan speechResult, 1)
	go func() {
		speech := &gtts.Speech{Language: lang}
		reader, err := speech.GenerateSpeech(text)
		if err != nil {
			done <- speechResult{err: fmt.Errorf("generate speech failed: %w", err)}
			return
		}
		data, err := io.ReadAll(reader)
		if err != nil {
			done <- speechResult{err: fmt.Errorf("read speech failed: %w", err)}
			return
		}
		done <- speechResult{data: data}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.data, res.err
	}
}
