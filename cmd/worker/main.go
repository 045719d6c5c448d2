package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/medagenda/agenda-api/internal/config"
	"github.com/medagenda/agenda-api/internal/repository/postgres"
	bookingService "github.com/medagenda/agenda-api/internal/service/booking"
	"github.com/medagenda/agenda-api/internal/worker"
	"github.com/medagenda/agenda-api/pkg/clock"
	"github.com/medagenda/agenda-api/pkg/locker"
	"github.com/medagenda/agenda-api/pkg/logger"
	"github.com/medagenda/agenda-api/pkg/metrics"
)

// workerConfig comes from the environment only. The sweeper runs as a
// sidecar or cron-style deployment and has no config file of its own.
type workerConfig struct {
	DatabaseHost     string        `envconfig:"DB_HOST" default:"localhost"`
	DatabasePort     int           `envconfig:"DB_PORT" default:"5432"`
	DatabaseUser     string        `envconfig:"DB_USER" default:"postgres"`
	DatabasePassword string        `envconfig:"DB_PASSWORD"`
	DatabaseName     string        `envconfig:"DB_NAME" default:"agenda"`
	DatabaseSSLMode  string        `envconfig:"DB_SSLMODE" default:"disable"`
	PendingTTL       time.Duration `envconfig:"PENDING_TTL" default:"30m"`
	SweepInterval    time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
	HealthAddr       string        `envconfig:"HEALTH_ADDR" default:":8081"`
}

func main() {
	var cfg workerConfig
	if err := envconfig.Process("agenda_worker", &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to load worker configuration")
	}

	db, err := postgres.NewDB(config.DatabaseConfig{
		Host:     cfg.DatabaseHost,
		Port:     cfg.DatabasePort,
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Name:     cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	bookingRepo := postgres.NewBookingRepository(db)
	svc := bookingService.NewService(
		bookingRepo,
		locker.NewKeyedMutex(),
		clock.System(),
		metrics.NewMetrics("agenda", "worker"),
		0,
	)

	startHealthServer(cfg.HealthAddr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Dur("pending_ttl", cfg.PendingTTL).
		Dur("interval", cfg.SweepInterval).
		Msg("starting stale pending sweeper")

	worker.NewSweeper(svc, logger.NewLogger(nil), cfg.PendingTTL, cfg.SweepInterval).Start(ctx)
	log.Info().Msg("sweeper stopped")
}

func startHealthServer(addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server failed")
			os.Exit(1)
		}
	}()
}
