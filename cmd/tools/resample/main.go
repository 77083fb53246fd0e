package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/soltixdb/soltix-resample/internal/aggregation"
	"github.com/soltixdb/soltix-resample/internal/config"
	"github.com/soltixdb/soltix-resample/internal/logging"
	"github.com/soltixdb/soltix-resample/internal/services"
	"github.com/soltixdb/soltix-resample/internal/seriesio"
)

func main() {
	opts := readCommandLineOptions()

	level, err := zerolog.ParseLevel(opts.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := logging.NewWithWriter(zerolog.ConsoleWriter{Out: os.Stderr}, level)
	logging.SetGlobal(logger)

	ctx := logging.WithRunID(context.Background(), uuid.New().String())
	ctx = logging.WithLogger(ctx, logger)
	if err := run(ctx, logger, opts); err != nil {
		logger.WithContext(ctx).Fatal("Resample failed", "error", err)
	}
}

// run reads opts.Input, resamples it and writes opts.Output
func run(ctx context.Context, logger *logging.Logger, opts CommandLineOptions) error {
	transform, err := opts.transform()
	if err != nil {
		return err
	}

	in, err := seriesio.Open(opts.Input)
	if err != nil {
		return err
	}
	src, err := seriesio.ReadCSV(in)
	_ = in.Close()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.Input, err)
	}

	logging.InfoCtx(ctx, "Loaded source series",
		"input", opts.Input, "points", src.Len())

	svc := services.NewResampleService(logger, config.DefaultConfig().Resample)

	out, _, err := svc.Run(ctx, src, transform, aggregation.Name(opts.Aggregator))
	if err != nil {
		return err
	}

	w, err := seriesio.Create(opts.Output)
	if err != nil {
		return err
	}
	if err := seriesio.WriteCSV(w, out); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write %s: %w", opts.Output, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", opts.Output, err)
	}

	logging.InfoCtx(ctx, "Wrote target series",
		"output", opts.Output, "points", out.Len())
	return nil
}
