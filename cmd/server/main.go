package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"rcgate/internal/birthnumber/handler"
	bnmetrics "rcgate/internal/birthnumber/metrics"
	"rcgate/internal/birthnumber/service"
	"rcgate/internal/platform/config"
	"rcgate/internal/platform/httpserver"
	"rcgate/internal/platform/logger"
	"rcgate/internal/platform/metrics"
	httptransport "rcgate/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Parsing rules live in pkg/birthnumber.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		logger.New("error", "json").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	svc := service.New(service.Config{
		DefaultSeparator: cfg.BirthNumbers.Separator,
		RollingCentury:   cfg.BirthNumbers.RollingCentury,
		MaxBatchSize:     cfg.BirthNumbers.MaxBatchSize,
		BatchConcurrency: cfg.BirthNumbers.BatchConcurrency,
	}, log, bnmetrics.New(metrics.Registry))

	router := httptransport.NewRouter(metrics.Handler(), handler.New(svc, log))
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting rcgate",
			"addr", cfg.Addr,
			"rolling_century", cfg.BirthNumbers.RollingCentury,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}
