package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linguabird/internal/audio"
	"linguabird/internal/config"
	"linguabird/internal/handler"
	"linguabird/internal/middleware"
	"linguabird/internal/repository/postgres"
	"linguabird/internal/service"
	"linguabird/internal/settings"
	"linguabird/internal/speech"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Bootstrap logger until the configured level is known
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	if logger, err = config.NewLogger(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting LinguaBird",
		zap.String("tts_provider", cfg.TTS.Provider),
		zap.Bool("history", cfg.HistoryEnabled()),
		zap.Bool("password", cfg.BotPassword != ""),
	)

	directions, err := config.LoadDirections(cfg.DirectionsFile)
	if err != nil {
		logger.Fatal("Failed to load directions", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// History and access control need the database
	var (
		authService    = service.NewAuthService(nil, "")
		historyService *service.HistoryService
		statsService   *service.StatsService
	)
	if cfg.HistoryEnabled() {
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Database connection established")

		if err := runMigrations(db, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}

		userRepo := postgres.NewUserRepo(db)
		wordRepo := postgres.NewWordRepo(db, cfg.History.Timezone)

		authService = service.NewAuthService(userRepo, cfg.BotPassword)
		historyService = service.NewHistoryService(wordRepo)
		statsService = service.NewStatsService(wordRepo, cfg.History.RetentionDays, logger)
	}

	synth, err := speech.New(cfg.TTS, logger)
	if err != nil {
		logger.Fatal("Failed to create speech synthesizer", zap.Error(err))
	}

	exporter := audio.NewFFmpegExporter(cfg.Audio.FFmpegPath, cfg.Audio.Bitrate)
	if err := exporter.CheckInstalled(); err != nil {
		logger.Warn("ffmpeg is not available, audio export will fail", zap.Error(err))
	}

	assembler := audio.NewAssembler(synth, audio.MP3Decoder{}, exporter, directions, logger)

	store, err := settings.NewStore(cfg.SettingsCapacity)
	if err != nil {
		logger.Fatal("Failed to create settings store", zap.Error(err))
	}

	renderService := service.NewRenderService(assembler, store, directions, historyService, cfg.RenderTimeout, logger)

	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			fields := []zap.Field{zap.Error(err)}
			if c != nil && c.Sender() != nil {
				fields = append(fields, zap.Int64("user_id", c.Sender().ID))
			}
			logger.Error("Handler failed", fields...)
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	if authService.Enabled() {
		bot.Use(middleware.AuthMiddleware(authService, logger))
	}

	h := handler.NewHandler(ctx, bot, handler.Deps{
		Auth:       authService,
		Render:     renderService,
		History:    historyService,
		Settings:   store,
		Directions: directions,
		Messages:   handler.Messages{Decorated: cfg.UIFlags},
	}, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered", zap.Int("directions", len(directions.All())))

	if statsService != nil {
		go runCleanupJob(ctx, statsService, logger)
	}

	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	cancel()
	bot.Stop()

	logger.Info("Bot stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations applies the schema from ./migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}

// runCleanupJob runs periodic cleanup of old history
func runCleanupJob(ctx context.Context, statsService *service.StatsService, logger *zap.Logger) {
	if err := statsService.CleanupOldData(); err != nil {
		logger.Error("Failed to run initial cleanup", zap.Error(err))
	}

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			logger.Info("Running scheduled cleanup")
			if err := statsService.CleanupOldData(); err != nil {
				logger.Error("Failed to run scheduled cleanup", zap.Error(err))
			}
		}
	}
}
