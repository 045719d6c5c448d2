package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medagenda/agenda-api/internal/config"
	"github.com/medagenda/agenda-api/internal/handler"
	bookingHandler "github.com/medagenda/agenda-api/internal/handler/booking"
	calendarHandler "github.com/medagenda/agenda-api/internal/handler/calendar"
	professionalHandler "github.com/medagenda/agenda-api/internal/handler/professional"
	scheduleHandler "github.com/medagenda/agenda-api/internal/handler/schedule"
	templateHandler "github.com/medagenda/agenda-api/internal/handler/template"
	"github.com/medagenda/agenda-api/internal/middleware"
	"github.com/medagenda/agenda-api/internal/repository/postgres"
	"github.com/medagenda/agenda-api/internal/router"
	bookingService "github.com/medagenda/agenda-api/internal/service/booking"
	calendarService "github.com/medagenda/agenda-api/internal/service/calendar"
	professionalService "github.com/medagenda/agenda-api/internal/service/professional"
	scheduleService "github.com/medagenda/agenda-api/internal/service/schedule"
	templateService "github.com/medagenda/agenda-api/internal/service/template"
	"github.com/medagenda/agenda-api/pkg/clock"
	"github.com/medagenda/agenda-api/pkg/locker"
	"github.com/medagenda/agenda-api/pkg/metrics"
	"github.com/medagenda/agenda-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogging(cfg.Logging)

	if err := validator.RegisterCustomValidations(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validations")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	templateRepo := postgres.NewTemplateRepository(db)
	blockRepo := postgres.NewBlockRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	professionalRepo := postgres.NewProfessionalRepository(db)

	lock, err := newLocker(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}

	clk := clock.System()
	m := metrics.NewMetrics("agenda", "api")

	calendarCfg := calendarService.DefaultConfig()
	calendarCfg.DayStartHour = cfg.Scheduling.DayStartHour
	calendarCfg.DayEndHour = cfg.Scheduling.DayEndHour
	calendarCfg.IncludeSunday = cfg.Scheduling.IncludeSunday
	calendarCfg.MonthPreviewLimit = cfg.Scheduling.MonthPreviewLimit
	calendarCfg.CacheTTL = cfg.Scheduling.CacheTTL

	scheduleSvc := scheduleService.NewService(templateRepo, blockRepo, bookingRepo, clk, m)
	bookingSvc := bookingService.NewService(bookingRepo, lock, clk, m, cfg.Scheduling.CreateGrace)
	templateSvc := templateService.NewService(templateRepo, blockRepo)
	professionalSvc := professionalService.NewService(professionalRepo)
	calendarSvc := calendarService.NewService(
		scheduleSvc,
		bookingRepo,
		calendarService.NewStaticDirectory(nil),
		clk,
		m,
		calendarCfg,
	)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	h := handler.NewHandler()
	r := router.NewRouter(
		authMiddleware,
		scheduleHandler.NewHandler(scheduleSvc),
		bookingHandler.NewHandler(bookingSvc),
		templateHandler.NewHandler(templateSvc),
		calendarHandler.NewHandler(calendarSvc),
		professionalHandler.NewHandler(professionalSvc),
		h,
		router.RouterConfig{
			RateLimit:     cfg.RateLimit.RequestsPerSecond,
			RateBurst:     cfg.RateLimit.Burst,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "agenda_api",
			AuthEnabled:   cfg.JWT.Enabled,
		},
	)

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

func setupLogging(cfg config.LoggingConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
}

// newLocker prefers the Redis lock when a URL is configured so that
// per-professional serialization holds across replicas. Without Redis
// the in-process keyed mutex covers a single instance.
func newLocker(cfg config.RedisConfig) (locker.Locker, error) {
	if cfg.URL == "" {
		return locker.NewKeyedMutex(), nil
	}

	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := goredis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return locker.NewRedisLocker(client, cfg.LockTTL), nil
}
