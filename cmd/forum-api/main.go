// @title        Forum API
// @version      1.0
// @description  Users, posts and comments with per-post comment bans.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/forum-api/internal/api"
	"github.com/sirpyerre/forum-api/internal/api/handler"
	"github.com/sirpyerre/forum-api/internal/core/service"
	mongostore "github.com/sirpyerre/forum-api/internal/infrastructure/db/mongo"
	redisstore "github.com/sirpyerre/forum-api/internal/infrastructure/db/redis"
	"github.com/sirpyerre/forum-api/internal/pkg/config"
	"github.com/sirpyerre/forum-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "forum-api",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		Timeout:     cfg.Mongo.Timeout,
		MaxPoolSize: cfg.Mongo.MaxPool,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	checks := map[string]handler.Pinger{"mongodb": mongostore.NewPinger(db)}

	var limiter service.RateLimiter
	if cfg.Redis.Enabled {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()

		limiter = redisstore.NewRateLimiter(rdb, cfg.CommentRate.Limit, cfg.CommentRate.Window)
		checks["redis"] = redisstore.NewPinger(rdb)
	}

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	postRepo := mongostore.NewPostRepository(db)
	commentRepo := mongostore.NewCommentRepository(db)
	lookup := service.NewUserLookup(userRepo)

	e, err := api.NewRouter(api.RouterConfig{
		Users:    service.NewUserService(userRepo, log),
		Posts:    service.NewPostService(postRepo, lookup, log),
		Comments: service.NewCommentService(commentRepo, postRepo, lookup, limiter, log),
		Checks:   checks,
		Logger:   log,
		Metrics:  true,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
