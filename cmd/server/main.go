package main

import (
	"log"
	"os"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"acroparty/internal/config"
	"acroparty/internal/db"
	"acroparty/internal/game"
	"acroparty/internal/httpapi"
	"acroparty/internal/notify"
	"acroparty/internal/tasks"
	"acroparty/internal/worker"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	conn, err := db.Open()
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	if err := db.ConfigurePool(conn,
		cfg.DBMaxOpenConns,
		cfg.DBMaxIdleConns,
		time.Duration(cfg.DBConnMaxLifetimeSeconds)*time.Second,
		time.Duration(cfg.DBConnMaxIdleTimeSeconds)*time.Second,
	); err != nil {
		logger.Fatal("configure pool", zap.Error(err))
	}
	if err := db.Migrate(conn); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	redisOpt := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
	scheduler := tasks.NewClient(redisOpt)
	defer scheduler.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	defer redisClient.Close()
	notifier := notify.NewRedisNotifier(redisClient)

	svc := game.New(conn, logger, notifier, scheduler)
	restored, err := svc.RestoreActiveGames()
	if err != nil {
		logger.Fatal("restore games", zap.Error(err))
	}
	logger.Info("restored active games", zap.Int("count", restored))

	ticker, err := svc.StartTicking(time.Duration(cfg.TickIntervalSeconds) * time.Second)
	if err != nil {
		logger.Fatal("start ticker", zap.Error(err))
	}
	defer ticker.Stop()

	workers := worker.NewServer(redisOpt, svc, logger, cfg.WorkerConcurrency)
	go func() {
		if err := workers.Start(); err != nil {
			logger.Fatal("worker server", zap.Error(err))
		}
	}()
	defer workers.Shutdown()

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}

	api := httpapi.New(svc, logger)
	logger.Info("server listening", zap.String("addr", addr))
	if err := api.Router().Run(addr); err != nil {
		logger.Fatal("http server", zap.Error(err))
	}
}
