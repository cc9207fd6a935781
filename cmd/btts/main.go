package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/riskibarqy/today-api/external/todayapi"
	"github.com/riskibarqy/today-api/internal/btts"
	"github.com/riskibarqy/today-api/internal/platform/logging"
)

func main() {
	baseURL := flag.String("base-url", envOr("TODAY_API_BASE_URL", "http://localhost:8000"), "proxy base URL")
	zone := flag.String("tz", envOr("API_FOOTBALL_TIMEZONE", "Europe/Belgrade"), "timezone that defines today")
	timeout := flag.Duration("timeout", 10*time.Second, "per request timeout")
	flag.Parse()

	logger := logging.NewJSONTo(os.Stderr, logging.LevelWarn)
	defer func() { _ = logger.Sync() }()

	location, err := time.LoadLocation(*zone)
	if err != nil {
		logger.Error("invalid timezone", "tz", *zone, "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := todayapi.NewClient(todayapi.ClientConfig{BaseURL: *baseURL, Timeout: *timeout, Logger: logger})
	lines, err := btts.NewReporter(client, location, nil, logger).Today(ctx)
	if err != nil {
		logger.Error("build report", "error", err)
		os.Exit(1)
	}
	if err := btts.Render(os.Stdout, lines); err != nil {
		logger.Error("write report", "error", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
