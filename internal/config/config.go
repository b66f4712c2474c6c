package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"linguabird/internal/audio"
	"linguabird/internal/settings"
	"linguabird/internal/speech"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken    string
	BotPassword string
	Database    DatabaseConfig
	TTS         speech.Config
	Audio       AudioConfig
	History     HistoryConfig

	SettingsCapacity int
	RenderTimeout    time.Duration
	DirectionsFile   string
	UIFlags          bool
	LogLevel         string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// AudioConfig holds export settings
type AudioConfig struct {
	FFmpegPath string
	Bitrate    string
}

// HistoryConfig holds word history settings
type HistoryConfig struct {
	Timezone      string
	RetentionDays int
}

// Load reads the bot configuration from environment variables
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.BotPassword != "" && !cfg.HistoryEnabled() {
		return nil, fmt.Errorf("BOT_PASSWORD requires a database, set DB_PASSWORD")
	}
	return cfg, nil
}

// LoadRender reads the configuration needed for offline rendering.
// Bot and database settings are not required.
func LoadRender() (*Config, error) {
	return load()
}

func load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	p := &envParser{}
	ttsDefaults := speech.DefaultConfig()

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		BotPassword: os.Getenv("BOT_PASSWORD"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "linguabird"),
			User:     getEnv("DB_USER", "linguabird"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		TTS: speech.Config{
			Provider:        getEnv("TTS_PROVIDER", ttsDefaults.Provider),
			OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
			OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
			OpenAIModel:     getEnv("OPENAI_TTS_MODEL", ttsDefaults.OpenAIModel),
			OpenAIVoice:     getEnv("OPENAI_TTS_VOICE", ttsDefaults.OpenAIVoice),
			OpenAISpeed:     p.getFloat("OPENAI_TTS_SPEED", ttsDefaults.OpenAISpeed),
			Timeout:         p.getDuration("TTS_TIMEOUT", ttsDefaults.Timeout),
			MaxAttempts:     p.getInt("TTS_MAX_ATTEMPTS", ttsDefaults.MaxAttempts),
			RetryDelay:      p.getDuration("TTS_RETRY_DELAY", ttsDefaults.RetryDelay),
			BreakerFailures: uint32(p.getInt("TTS_BREAKER_FAILURES", int(ttsDefaults.BreakerFailures))),
			BreakerOpenFor:  p.getDuration("TTS_BREAKER_OPEN_FOR", ttsDefaults.BreakerOpenFor),
			CacheSize:       p.getInt("TTS_CACHE_SIZE", ttsDefaults.CacheSize),
		},
		Audio: AudioConfig{
			FFmpegPath: getEnv("FFMPEG_PATH", "ffmpeg"),
			Bitrate:    getEnv("AUDIO_BITRATE", audio.DefaultBitrate),
		},
		History: HistoryConfig{
			Timezone:      getEnv("HISTORY_TIMEZONE", "Europe/Moscow"),
			RetentionDays: p.getInt("HISTORY_RETENTION_DAYS", 60),
		},
		SettingsCapacity: p.getInt("SETTINGS_CAPACITY", settings.DefaultCapacity),
		RenderTimeout:    p.getDuration("RENDER_TIMEOUT", 2*time.Minute),
		DirectionsFile:   os.Getenv("DIRECTIONS_FILE"),
		UIFlags:          p.getBool("UI_FLAGS", false),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}
	if p.err != nil {
		return nil, p.err
	}

	if cfg.TTS.Provider == speech.ProviderOpenAI && cfg.TTS.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required for TTS_PROVIDER=openai")
	}
	if cfg.History.RetentionDays < 1 {
		return nil, fmt.Errorf("HISTORY_RETENTION_DAYS must be positive")
	}
	if _, err := time.LoadLocation(cfg.History.Timezone); err != nil {
		return nil, fmt.Errorf("invalid HISTORY_TIMEZONE: %w", err)
	}

	return cfg, nil
}

// HistoryEnabled reports whether a database is configured
func (c *Config) HistoryEnabled() bool {
	return c.Database.Password != ""
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envParser reads typed values and keeps the first error
type envParser struct {
	err error
}

func (p *envParser) getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return n
}

func (p *envParser) getFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return f
}

func (p *envParser) getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return d
}

func (p *envParser) getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return b
}

func (p *envParser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
}
