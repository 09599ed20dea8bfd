// Package main — терминальный клиент портала покупателя: вход по email и ZIP,
// история заказов и ближайшие списания по подпискам.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/subscription-portal/internal/app/portal"
	"github.com/magabrotheeeer/subscription-portal/internal/cache"
	"github.com/magabrotheeeer/subscription-portal/internal/config"
	"github.com/magabrotheeeer/subscription-portal/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-portal/internal/services/identity"
	"github.com/magabrotheeeer/subscription-portal/internal/services/orders"
	"github.com/magabrotheeeer/subscription-portal/internal/stickyio"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	email := flag.String("email", "", "customer email")
	zip := flag.String("zip", "", "customer ZIP code")
	query := flag.String("q", "", "search order history by product name or date")
	flag.Parse()

	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)
	logger.Debug("config loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, cfg, logger, portal.LoginRequest{Email: *email, Zip: *zip}, *query)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, req portal.LoginRequest, query string) int {
	reg := prometheus.NewRegistry()
	defer writeMetrics(cfg.Metrics.Textfile, reg, logger)

	var poster stickyio.Poster = stickyio.Instrument(
		stickyio.NewClient(cfg.StickyIO.BaseURL, cfg.StickyIO.Username, cfg.StickyIO.Password, cfg.StickyIO.Timeout),
		stickyio.NewMetrics(reg),
	)

	if cfg.CacheEnabled() {
		store, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			logger.Warn("order cache disabled", sl.Err(err))
		} else {
			defer store.Close()
			poster = cache.NewCachedPoster(poster, store, cfg.RedisConnection.OrderTTL, logger, stickyio.PathOrderView)
		}
	}

	resolver := identity.NewResolver(poster, identity.DateRange{
		Start: cfg.Lookup.StartDate,
		End:   cfg.Lookup.End(time.Now()),
	}, logger)
	normalizer := orders.NewNormalizer(poster, orders.Options{
		Concurrency: cfg.Fetch.Concurrency,
		RPS:         cfg.Fetch.RPS,
		Burst:       cfg.Fetch.Burst,
	}, logger)

	p := portal.New(resolver, normalizer, logger)
	logger.Info("session started", slog.String("session_id", p.SessionID()))

	customer, err := p.Login(ctx, req)
	if err != nil {
		fmt.Fprintln(os.Stderr, portal.UserMessage(err))
		return 1
	}

	dashboard := p.Dashboard(ctx, customer, time.Now(), query)
	if err := portal.Render(os.Stdout, dashboard); err != nil {
		logger.Error("failed to render dashboard", sl.Err(err))
		return 1
	}
	return 0
}

func writeMetrics(path string, g prometheus.Gatherer, logger *slog.Logger) {
	if path == "" {
		return
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		logger.Warn("failed to write metrics", slog.String("path", path), sl.Err(err))
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	return log
}
