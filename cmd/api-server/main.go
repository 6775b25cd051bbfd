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

	"moviehub/database"
	"moviehub/internal/api/middleware"
	"moviehub/internal/api/repository"
	"moviehub/internal/api/router"
	"moviehub/internal/api/service"
	"moviehub/internal/cache"
	"moviehub/internal/config"
	"moviehub/internal/events"
	"moviehub/internal/logging"
	"moviehub/internal/metrics"
	"moviehub/internal/seed"
)

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("could not load config")
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log := logging.WithComponent("api-server")
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Connect to the database
	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to database")
	}
	defer database.Close(db)

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("could not get database handle")
	}

	movieRepo := repository.NewMovieRepo(db)
	actorRepo := repository.NewActorRepo(db)

	if cfg.SeedOnStart {
		if _, err := seed.New(movieRepo, 0, logging.WithComponent("seed")).Run(ctx, cfg.SeedMovies); err != nil {
			log.Error().Err(err).Msg("seeding failed")
		}
	}

	// 3. Optional infrastructure
	m := metrics.New()

	var responseCache *cache.Cache
	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, response cache disabled")
		} else {
			defer rdb.Close()
			responseCache = cache.New(rdb, cfg.CacheTTL, m, logging.WithComponent("cache"))
			log.Info().Dur("ttl", cfg.CacheTTL).Msg("Response cache enabled")
		}
	}

	publisher := events.New(cfg.RabbitMQURL, cfg.EventsQueue, logging.WithComponent("events"))
	defer publisher.Close()

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Run(10*time.Minute, ctx.Done())

	// 4. Services and routes
	engine := router.New(router.Deps{
		Movies:         service.NewMovieService(movieRepo, publisher),
		Actors:         service.NewActorService(actorRepo, publisher),
		Auth:           service.NewAuthService(cfg),
		DB:             sqlDB,
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: cfg.TrustedProxies,
		Cache:          responseCache,
		Metrics:        m,
		Limiter:        limiter,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.GoEnv).Msg("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
