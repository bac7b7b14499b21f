package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/themobileprof/healthdesk-be/internal/api"
	"github.com/themobileprof/healthdesk-be/internal/api/middleware"
	"github.com/themobileprof/healthdesk-be/internal/circuitbreaker"
	"github.com/themobileprof/healthdesk-be/internal/config"
	"github.com/themobileprof/healthdesk-be/internal/db"
	"github.com/themobileprof/healthdesk-be/internal/history"
)

const shutdownTimeout = 5 * time.Second

func main() {
	rootCmd := &cobra.Command{
		Use:          "healthdesk",
		Short:        "Symptom triage and diagnosis support service",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(emergencyCmd())
	rootCmd.AddCommand(kbCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runServer(cfg, newLogger(cfg))
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.HistoryEnabled() {
				return errors.New("DATABASE_URL is not set")
			}
			logger := newLogger(cfg)

			database, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			applied, err := database.Migrate(cmd.Context())
			if err != nil {
				return err
			}
			logger.Info().Int("applied", applied).Msg("migrations complete")
			return nil
		},
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}

func openDB(cfg *config.Config) (*db.DB, error) {
	return db.New(db.Config{
		URL:             cfg.DatabaseURL,
		MaxConnections:  cfg.DBMaxConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: 5 * time.Minute,
	})
}

func runServer(cfg *config.Config, logger zerolog.Logger) error {
	kb, err := loadKnowledge(cfg.KnowledgeFile)
	if err != nil {
		return err
	}
	logger.Info().
		Str("source", knowledgeSource(cfg.KnowledgeFile)).
		Int("diseases", len(kb.Diseases())).
		Msg("knowledge base loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := api.Deps{
		Logger:      logger,
		KB:          kb,
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    cfg.TokenTTL,
		CORSOrigins: cfg.CORSOrigins,
		IPLimiter:   middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		UserLimiter: middleware.NewRateLimiter(cfg.UserRateLimitRPS, cfg.UserRateLimitBurst),
	}
	go deps.IPLimiter.Run(ctx)
	go deps.UserLimiter.Run(ctx)

	if cfg.HistoryEnabled() {
		database, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer database.Close()
		logger.Info().Msg("connected to database")

		applied, err := database.Migrate(ctx)
		if err != nil {
			return err
		}
		if applied > 0 {
			logger.Info().Int("applied", applied).Msg("migrations applied")
		}

		breaker := circuitbreaker.New(circuitbreaker.Settings{
			Name:         "history",
			MaxFailures:  cfg.HistoryMaxFailures,
			ResetTimeout: cfg.HistoryResetTimeout,
			OnStateChange: func(name string, from, to circuitbreaker.State) {
				logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
			},
		})

		deps.Users = database
		deps.Assessments = database
		deps.DB = database
		deps.Recorder = history.NewRecorder(database, breaker, logger)
	} else {
		logger.Warn().Msg("DATABASE_URL not set: accounts and history are disabled")
	}

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
