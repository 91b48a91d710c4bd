// Package config holds the settings of the huffreport command.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap/zapcore"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

const (
	DefaultInputPath  = "input.txt"
	DefaultOutputPath = "output.txt"
	DefaultMaxSize    = "64MiB"
	DefaultLogLevel   = "info"
)

// Config is the validated configuration of one run.
type Config struct {
	// InputPath is the file whose bytes are encoded.
	InputPath string

	// OutputPath receives the text report.
	OutputPath string

	// PackedPath, if set, receives the encoded bits packed into bytes.
	PackedPath string

	// MetricsPath, if set, receives the run's gauges in the Prometheus
	// text exposition format.
	MetricsPath string

	// MaxSize is the largest input accepted, in bytes.
	MaxSize uint64

	// LogLevel is the minimum level that gets logged.
	LogLevel zapcore.Level

	// Baseline enables a zstd comparison in the report.
	Baseline bool
}

// Parse builds a Config from command-line arguments (without the program
// name).  Usage and flag errors are written to stderr.
func Parse(name string, args []string, stderr io.Writer) (Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		cfg      Config
		maxSize  string
		logLevel string
	)
	fs.StringVar(&cfg.InputPath, "in", DefaultInputPath, "input file to encode")
	fs.StringVar(&cfg.OutputPath, "out", DefaultOutputPath, "report file to write")
	fs.StringVar(&cfg.PackedPath, "packed", "", "optional file for the packed encoded bits")
	fs.StringVar(&cfg.MetricsPath, "metrics-file", "", "optional Prometheus textfile for run metrics")
	fs.StringVar(&maxSize, "max-size", DefaultMaxSize, "largest accepted input, e.g. 512KiB or 64MiB")
	fs.StringVar(&logLevel, "log-level", DefaultLogLevel, "minimum log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.Baseline, "baseline", false, "also report the zstd-compressed size of the input")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() != 0 {
		return Config{}, fmt.Errorf("%w: unexpected arguments %q", ErrInvalid, fs.Args())
	}

	size, err := humanize.ParseBytes(maxSize)
	if err != nil {
		return Config{}, fmt.Errorf("%w: -max-size %q: %v", ErrInvalid, maxSize, err)
	}
	cfg.MaxSize = size

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return Config{}, fmt.Errorf("%w: -log-level %q: %v", ErrInvalid, logLevel, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the Config is usable.
func (cfg Config) Validate() error {
	if cfg.InputPath == "" {
		return fmt.Errorf("%w: input path is empty", ErrInvalid)
	}
	if cfg.OutputPath == "" {
		return fmt.Errorf("%w: output path is empty", ErrInvalid)
	}
	if cfg.MaxSize < 2 {
		return fmt.Errorf("%w: max size %s is below the 2-byte minimum input", ErrInvalid, humanize.IBytes(cfg.MaxSize))
	}
	for _, path := range []string{cfg.OutputPath, cfg.PackedPath, cfg.MetricsPath} {
		if path != "" && path == cfg.InputPath {
			return fmt.Errorf("%w: %q is both input and output", ErrInvalid, path)
		}
	}
	return nil
}
