package main

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/linkforge-app/linkforge-backend/config"
	"github.com/linkforge-app/linkforge-backend/internal/bootstrap"
	linksservice "github.com/linkforge-app/linkforge-backend/internal/links/service"
	"github.com/linkforge-app/linkforge-backend/internal/projects/repository"
)

const serviceName = "linkforge-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Fatal("redis unreachable", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}

	repo := repository.New(client)

	// Hourly snapshot of the project collection. Writes are whole-collection
	// replaces, so a single bad save would otherwise be unrecoverable.
	scheduler := cron.New()
	_, err = scheduler.AddFunc("@hourly", func() {
		key, err := repo.Backup(context.Background())
		if err != nil {
			logger.Warn("project backup failed", zap.Error(err))
			return
		}
		logger.Info("project backup written", zap.String("key", key))
	})
	if err != nil {
		logger.Fatal("failed to schedule backup job", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	bitly := linksservice.NewBitlyClient(cfg.Bitly.APIBase, cfg.Bitly.Timeout)

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		Redis:       client,
		Bitly:       bitly,
		Logger:      logger,
	})

	logger.Info("listening", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zapCfg.Build()
}
