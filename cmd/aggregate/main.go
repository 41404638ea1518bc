// One-shot batch mode: load the snapshots, run the pipeline once, write the
// dashboard document to OUT_PATH, and exit. A load failure exits non-zero
// with the full cause logged; downstream consumers have no partial-result
// story.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/ambernotes/revops-etl/internal/config"
	"github.com/ambernotes/revops-etl/internal/loader"
	"github.com/ambernotes/revops-etl/internal/pipeline"
)

func main() {
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	cl := loader.NewHTTPClient(cfg.HTTPTimeout)
	ld := loader.New(cl, logger, cfg)
	p := pipeline.New(ld, logger)

	doc, err := p.Run(context.Background())
	if err != nil {
		logger.Error("pipeline run failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	b, err := json.MarshalIndent(doc, "", " ")
	if err != nil {
		logger.Error("encode dashboard", slog.String("err", err.Error()))
		os.Exit(1)
	}
	if err := os.WriteFile(cfg.OutPath, b, 0o644); err != nil {
		logger.Error("write dashboard", slog.String("err", err.Error()), slog.String("path", cfg.OutPath))
		os.Exit(1)
	}
	logger.Info("dashboard written", slog.String("path", cfg.OutPath), slog.Int("bytes", len(b)))
}
