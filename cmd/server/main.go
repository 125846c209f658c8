// @title                       SkillLink Marketplace API
// @version                     1.0
// @description                 Freelance marketplace: clients post jobs, freelancers bid on them.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/skilllink/marketplace/internal/api"
	"github.com/skilllink/marketplace/internal/core/domain"
	"github.com/skilllink/marketplace/internal/core/ports"
	"github.com/skilllink/marketplace/internal/core/service"
	"github.com/skilllink/marketplace/internal/infrastructure/db/memory"
	"github.com/skilllink/marketplace/internal/infrastructure/db/mongo"
	"github.com/skilllink/marketplace/internal/infrastructure/db/redis"
	"github.com/skilllink/marketplace/internal/infrastructure/queue"
	"github.com/skilllink/marketplace/internal/pkg/config"
	"github.com/skilllink/marketplace/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Configuration ---
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.Log.Level,
		Pretty:  cfg.Log.Pretty,
		Service: "skilllink-marketplace",
		Env:     cfg.Env,
	})

	// --- Optional backends ---
	var (
		db  *gomongo.Database
		rdb *goredis.Client
	)
	if cfg.Mongo.URI != "" {
		conn, err := mongo.Open(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "skilllink-marketplace",
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := conn.Close(shutdownTimeout); err != nil {
				log.Error().Err(err).Msg("mongo disconnect failed")
			}
		}()
		db = conn.DB
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo activity log enabled")
	}
	if cfg.Redis.Addr != "" {
		client, err := redis.Open(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer client.Close()
		rdb = client
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis idempotency store enabled")
	}

	// --- Activity pipeline ---
	var sink ports.ActivitySink = queue.NewLogSink(logger.Component("activity"))
	if db != nil {
		repo := mongo.NewActivityRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("activity indexes not ensured")
		}
		sink = repo
	}
	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, sink, logger.Component("dispatcher"))
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	// --- Stores ---
	var (
		users []*domain.User
		jobs  []domain.Job
	)
	if cfg.SeedMockData {
		users, jobs = memory.SeedUsers(), memory.SeedJobs()
	}
	directory := memory.NewUserDirectory(users...)
	marketplace := service.NewMarketplaceStore(logger.Component("marketplace"), dispatcher, jobs...)
	authService := service.NewAuthService(directory, cfg.JWTSecret, cfg.TokenTTL, logger.Component("identity"),
		service.WithPasswordVerification(cfg.Auth.VerifyPasswords),
		service.WithIdentityActivity(dispatcher),
	)

	var idem ports.IdempotencyStore = memory.NewIdempotencyStore()
	if rdb != nil {
		idem = redis.NewIdempotencyStore(rdb)
	}

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Log:            logger.Component("http"),
		JWTSecret:      cfg.JWTSecret,
		TokenTTL:       cfg.TokenTTL,
		IdempotencyTTL: cfg.IdempotencyTTL,
		HideDocs:       cfg.IsProduction(),
		Auth:           authService,
		Marketplace:    marketplace,
		Idempotency:    idem,
		Mongo:          db,
		Redis:          rdb,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Int("jobs", len(jobs)).Int("users", len(users)).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// --- Graceful shutdown ---
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")
	case err := <-serveErr:
		stopWorkers()
		dispatcher.Wait()
		return fmt.Errorf("listen: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	// Workers drain whatever the last requests published.
	stopWorkers()
	dispatcher.Wait()

	log.Info().Msg("server exiting")
	return nil
}
