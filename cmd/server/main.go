package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/ambernotes/revops-etl/internal/config"
	"github.com/ambernotes/revops-etl/internal/httpx"
	"github.com/ambernotes/revops-etl/internal/loader"
	"github.com/ambernotes/revops-etl/internal/pipeline"
	"github.com/ambernotes/revops-etl/internal/store"
)

func main() {
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	cl := loader.NewHTTPClient(cfg.HTTPTimeout)
	ld := loader.New(cl, logger, cfg)
	p := pipeline.New(ld, logger)
	st := store.NewMemoryStore()

	r := httpx.NewRouter(logger, p, st)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", slog.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
