package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"linguabird/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Providers(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "google default", mutate: func(c *Config) {}},
		{name: "google alias", mutate: func(c *Config) { c.Provider = "google-translate" }},
		{name: "openai with key", mutate: func(c *Config) { c.Provider = ProviderOpenAI; c.OpenAIKey = "sk-test" }},
		{name: "openai without key", mutate: func(c *Config) { c.Provider = ProviderOpenAI }, wantErr: true},
		{name: "unknown", mutate: func(c *Config) { c.Provider = "espeak" }, wantErr: true},
		{name: "cache disabled", mutate: func(c *Config) { c.CacheSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			synth, err := New(cfg, testutil.NewTestLogger())
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, synth)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, synth)
		})
	}
}

func TestNew_CacheIsOutermost(t *testing.T) {
	synth, err := New(DefaultConfig(), testutil.NewTestLogger())
	require.NoError(t, err)
	_, ok := synth.(*Cached)
	assert.True(t, ok)

	cfg := DefaultConfig()
	cfg.CacheSize = 0
	synth, err = New(cfg, testutil.NewTestLogger())
	require.NoError(t, err)
	_, ok = synth.(*Resilient)
	assert.True(t, ok)
}

func TestOpenAI_Synthesize(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/speech", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3-audio"))
	}))
	defer srv.Close()

	p, err := NewOpenAI("sk-test", srv.URL+"/v1", "tts-1-hd", "nova", 0)
	require.NoError(t, err)

	data, err := p.Synthesize(context.Background(), "apple", "en")

	require.NoError(t, err)
	assert.Equal(t, []byte("ID3-audio"), data)
	assert.Equal(t, "apple", got["input"])
	assert.Equal(t, "tts-1-hd", got["model"])
	assert.Equal(t, "nova", got["voice"])
	assert.Equal(t, "mp3", got["response_format"])
}

func TestOpenAI_SynthesizeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
	}))
	defer srv.Close()

	p, err := NewOpenAI("sk-test", srv.URL+"/v1", "", "", 1)
	require.NoError(t, err)

	data, err := p.Synthesize(context.Background(), "apple", "en")
	assert.Nil(t, data)
	assert.Error(t, err)
}

func TestSynthesize_EmptyText(t *testing.T) {
	p, err := NewOpenAI("sk-test", "", "", "", 1)
	require.NoError(t, err)
	_, err = p.Synthesize(context.Background(), "", "en")
	assert.Error(t, err)

	g := NewGoogleTranslate()
	_, err = g.Synthesize(context.Background(), "", "en")
	assert.Error(t, err)
}

func TestGoogleTranslate_CancelledContext(t *testing.T) {
	g := NewGoogleTranslate()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Synthesize(ctx, "apple", "en")
	assert.ErrorIs(t, err, context.Canceled)
}
