package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"member_portal_backend/internal/analytics"
	"member_portal_backend/platform/config"
	"member_portal_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting analytics worker", "env", cfg.Env, "queue", cfg.AnalyticsQueueName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker, err := analytics.NewWorker(cfg, log)
	if err != nil {
		log.Error("failed to initialize analytics worker", "error", err)
		panic("failed to initialize analytics worker: " + err.Error())
	}

	worker.Run(ctx)
}
