package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/jesusmora-dev/portfolio-agent/internal/agent"
	"github.com/jesusmora-dev/portfolio-agent/internal/api"
	"github.com/jesusmora-dev/portfolio-agent/internal/config"
	"github.com/jesusmora-dev/portfolio-agent/internal/conversation"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	persister := newPersister(cfg.Session)
	agentClient := agent.New(cfg.Agent.Mode, cfg.Agent.BaseURL, cfg.Agent.Timeout)

	srv := api.NewServer(agentClient, persister, cfg.Chat.CannedReplyDelay, cfg.Server.WebDir)

	slog.Info("starting server", "port", cfg.Server.Port)
	if err := http.ListenAndServe(":"+cfg.Server.Port, srv.Router()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// newPersister connects to Redis when an address is configured, so chat
// sessions survive page reloads; otherwise histories live in process memory.
func newPersister(cfg config.Session) conversation.Persister {
	if cfg.RedisAddr == "" {
		slog.Info("no REDIS_ADDR set, keeping sessions in memory")
		return conversation.NewMemoryPersister()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}

	slog.Info("using redis session persistence", "addr", cfg.RedisAddr, "ttl", cfg.TTL)
	return conversation.NewRedisPersister(rdb, cfg.TTL)
}
