package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/playperu/formrelay/internal/config"
	"github.com/playperu/formrelay/internal/handler/health"
	"github.com/playperu/formrelay/internal/relay"
	"github.com/playperu/formrelay/internal/schema"
	"github.com/playperu/formrelay/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Relay ---
	formSchema, err := cfg.FormSchema()
	if err != nil {
		return fmt.Errorf("resolving form schema: %w", err)
	}
	schemaName := schema.Auto
	if formSchema != nil {
		schemaName = formSchema.Name
	}

	rl := relay.New(
		relay.NewTransformer(formSchema),
		relay.NewSender(cfg.Endpoint, relay.NewHTTPClient(cfg.Timeout)),
	)
	logger.Info("relay configured",
		"endpoint", cfg.Endpoint,
		"schema", schemaName,
		"timeout", cfg.Timeout,
	)

	endpointCheck, err := health.Endpoint(cfg.Endpoint)
	if err != nil {
		return fmt.Errorf("building endpoint check: %w", err)
	}
	healthz := health.NewHandler(logger, map[string]health.Checker{
		"endpoint": endpointCheck,
	}).Routes()

	// --- HTTP Server ---
	limiter := server.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	srv := server.New(cfg.HTTPAddr, logger, rl, healthz, limiter)

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
