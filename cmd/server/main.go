package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/benbeisheim/shashki-backend/internal/config"
	"github.com/benbeisheim/shashki-backend/internal/controller"
	"github.com/benbeisheim/shashki-backend/internal/middleware"
	"github.com/benbeisheim/shashki-backend/internal/model"
	"github.com/benbeisheim/shashki-backend/internal/msgcat"
	"github.com/benbeisheim/shashki-backend/internal/obslog"
	"github.com/benbeisheim/shashki-backend/internal/service"
	"github.com/benbeisheim/shashki-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	if err := obslog.InitFromEnv(); err != nil {
		obslog.L().Warn("logger_init_failed", zap.Error(err))
	}
	defer func() { _ = obslog.L().Sync() }()

	cfg, err := config.Load()
	if err != nil {
		obslog.L().Fatal("config_load_failed", zap.Error(err))
	}

	catalog, err := msgcat.New(cfg.MessagesLang, cfg.MessagesDir)
	if err != nil {
		obslog.L().Fatal("messages_load_failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis keeps undo history across restarts; without it history lives in memory.
	var history model.HistoryStore = model.NewMemoryHistory(cfg.HistoryLimit)
	if cfg.RedisURL != "" {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		rdb, err := store.NewRedisClient(pingCtx, cfg.RedisURL)
		cancel()
		if err != nil {
			obslog.L().Fatal("redis_connect_failed", zap.Error(err))
		}
		defer func() { _ = rdb.Close() }()
		history = store.NewRedisHistory(rdb, cfg.HistoryLimit, time.Duration(cfg.HistoryTTLSeconds)*time.Second)
		obslog.L().Info("history_backend", zap.String("kind", "redis"))
	} else {
		obslog.L().Info("history_backend", zap.String("kind", "memory"))
	}

	gameManager := service.NewGameManager(history, catalog)
	if cfg.DatabaseURL != "" {
		repo, err := store.NewResultRepository(cfg.DatabaseURL)
		if err != nil {
			obslog.L().Fatal("postgres_connect_failed", zap.Error(err))
		}
		defer func() { _ = repo.Close() }()
		gameManager.AttachResults(repo)
	}
	gameService := service.NewGameService(gameManager)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger())

	controller.RegisterRoutes(app, gameService, splitOrigins(cfg.AllowedOrigins))

	go func() {
		<-ctx.Done()
		obslog.L().Info("shutdown")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			obslog.L().Error("shutdown_failed", zap.Error(err))
		}
	}()

	obslog.L().Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("lang", cfg.MessagesLang))
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		obslog.L().Fatal("listen_failed", zap.Error(err))
	}
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
