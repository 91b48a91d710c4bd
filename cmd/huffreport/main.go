// Command huffreport encodes a file with a Huffman code built from its own
// byte frequencies, decodes it again, and writes a report with the encoded
// bits, the decoded text, compression metrics and timings.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/chronos-tachyon/hufftree/internal/config"
	"github.com/chronos-tachyon/hufftree/internal/pipeline"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "huffreport: %v\n", err)
		os.Exit(2)
	}

	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger, err := zcfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "huffreport: failed to build logger: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("huffreport failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	info, err := os.Stat(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	if uint64(info.Size()) > cfg.MaxSize {
		return fmt.Errorf("%w: %s is %s, max %s", pipeline.ErrTooLarge, cfg.InputPath,
			humanize.IBytes(uint64(info.Size())), humanize.IBytes(cfg.MaxSize))
	}

	input, err := os.ReadFile(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if c := logger.Check(zap.InfoLevel, "input loaded"); c != nil {
		c.Write(zap.String("path", cfg.InputPath), zap.String("size", humanize.IBytes(uint64(len(input)))))
	}

	registry := prometheus.NewRegistry()
	p := pipeline.New(logger, registry, pipeline.Options{
		MaxSize:  cfg.MaxSize,
		Baseline: cfg.Baseline,
	})

	report, err := p.Run(input)
	if err != nil {
		return err
	}

	out, err := os.Create(cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if _, err := report.WriteTo(out); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.PackedPath != "" {
		packed, err := report.Packed()
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.PackedPath, packed, 0o644); err != nil {
			return fmt.Errorf("failed to write packed bits: %w", err)
		}
		if c := logger.Check(zap.DebugLevel, "packed bits written"); c != nil {
			c.Write(zap.String("path", cfg.PackedPath), zap.Int("bits", len(report.Encoded)), zap.Int("bytes", len(packed)))
		}
	}

	if cfg.MetricsPath != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsPath, registry); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	logger.Info("report written", zap.String("path", cfg.OutputPath), zap.Stringer("metrics", report.Metrics))
	return nil
}
