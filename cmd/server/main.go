// Package main wires the HTTP server for the contributions showcase API.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"portfolio-contributions/config"
	"portfolio-contributions/internal/cache"
	"portfolio-contributions/internal/fetcher"
	"portfolio-contributions/internal/repository"
	"portfolio-contributions/internal/transport/http/middleware"
	"portfolio-contributions/internal/transport/http/server/handlers-fiber"
	"portfolio-contributions/internal/usecase"
	"portfolio-contributions/internal/usecase/domain"
	"portfolio-contributions/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	repo, err := repository.New(ctx, cfg.Storage.Backend, log, cfg)
	if err != nil {
		log.Errorw("repository initialization error", "error", err)
		return
	}
	if err := repo.OnStart(ctx); err != nil {
		log.Errorw("repository start error", "error", err)
		return
	}
	defer func() {
		_ = repo.OnStop(context.Background())
	}()

	prFetcher, err := fetcher.New(log, cfg)
	if err != nil {
		log.Errorw("fetcher initialization error", "error", err)
		return
	}

	uc := usecase.New(log, ctx, prFetcher, repo, cache.New(cfg.Cache.TTL), domain.Settings{
		Author:           cfg.GitHub.Username,
		RevalidateSecret: cfg.Cache.RevalidateSecret,
		FetchTimeout:     cfg.GitHub.FetchTimeout,
	}, cfg.HTTP.RequestTimeout)

	if err := uc.Warm(ctx); err != nil {
		log.Warnw("cache warm-up failed", "error", err)
	}
	if cfg.Cache.RevalidateSecret == "" {
		log.Warnw("cache.revalidate_secret is empty, invalidation requests will be rejected")
	}

	serv := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.RequestTimeout,
		WriteTimeout: cfg.HTTP.RequestTimeout,
	})
	serv.Use(recover.New())
	serv.Use(requestid.New())
	serv.Use(middleware.RequestLogger(log, "/healthz"))

	serv.Get("/healthz", func(c *fiber.Ctx) error {
		if pinger, ok := repo.(interface{ Ping(context.Context) error }); ok {
			if err := pinger.Ping(c.UserContext()); err != nil {
				log.Warnw("health check failed", "error", err)
				return c.SendStatus(fiber.StatusServiceUnavailable)
			}
		}
		return c.SendStatus(fiber.StatusOK)
	})

	handlers_fiber.RegisterHandlers(serv, handlers_fiber.NewHandler(log, uc))

	go func() {
		log.Infow("server listening", "addr", cfg.ServerAddr(), "author", cfg.GitHub.Username, "storage", cfg.Storage.Backend)
		if err := serv.Listen(cfg.ServerAddr()); err != nil {
			log.Errorw("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	if err := serv.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		log.Warnw("server shutdown", "timeout", cfg.Server.ShutdownTimeout, "error", err)
	}
}
