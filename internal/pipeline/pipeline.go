// Package pipeline runs the hufftree core end to end over a byte input:
// count, build, encode, decode, verify, measure.
package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/chronos-tachyon/hufftree"
	"github.com/klauspost/compress/zstd"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var (
	// ErrEmpty is reported for an input with no bytes at all.
	ErrEmpty = errors.New("input is empty")

	// ErrTooShort is reported for an input of a single byte.
	ErrTooShort = errors.New("input must contain at least 2 symbols")

	// ErrTooLarge is reported for an input above Options.MaxSize.
	ErrTooLarge = errors.New("input is too large")

	// ErrMismatch is reported when the decoded output differs from the
	// input.  It always indicates a defect.
	ErrMismatch = errors.New("decoded output does not match input")
)

// MinInputLen is the shortest input Run accepts.
const MinInputLen = 2

// Options tunes a Pipeline.
type Options struct {
	// MaxSize is the largest input accepted, in bytes.  Zero means no
	// limit.
	MaxSize uint64

	// Baseline enables measuring the zstd-compressed size of the input.
	Baseline bool
}

// Pipeline runs the encode/decode round trip and records its results.
type Pipeline struct {
	logger  *zap.Logger
	metrics *runMetrics
	opts    Options
}

// New creates a Pipeline.  Its gauges are registered with registry.
func New(logger *zap.Logger, registry prometheus.Registerer, opts Options) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		logger:  logger,
		metrics: newRunMetrics(registry),
		opts:    opts,
	}
}

// Run encodes input, decodes the result and checks that the round trip is
// exact.
func (p *Pipeline) Run(input []byte) (*Report, error) {
	switch {
	case len(input) == 0:
		return nil, ErrEmpty
	case len(input) < MinInputLen:
		return nil, fmt.Errorf("%w: got %d", ErrTooShort, len(input))
	case p.opts.MaxSize != 0 && uint64(len(input)) > p.opts.MaxSize:
		return nil, fmt.Errorf("%w: %d bytes, max %d", ErrTooLarge, len(input), p.opts.MaxSize)
	}

	report := &Report{Input: input, BaselineSize: -1}
	timed := func(name string, fn func()) {
		start := time.Now()
		fn()
		elapsed := time.Since(start)
		report.Timings = append(report.Timings, Stage{Name: name, Duration: elapsed})
		if c := p.logger.Check(zap.DebugLevel, "stage done"); c != nil {
			c.Write(zap.String("stage", name), zap.Duration("elapsed", elapsed))
		}
	}

	var freqs hufftree.Frequencies[byte]
	timed("count", func() {
		freqs = hufftree.Count(input)
	})

	var tree *hufftree.Tree[byte]
	timed("build", func() {
		tree = hufftree.BuildTree(freqs)
	})
	defer tree.Release()

	if err := tree.Validate(); err != nil {
		return nil, fmt.Errorf("code tree is inconsistent: %w", err)
	}
	report.Table = tree.CodeTable()

	timed("encode", func() {
		report.Encoded = report.Table.Encode(input)
	})

	var err error
	timed("decode", func() {
		report.Decoded, err = tree.Decode(report.Encoded)
	})
	tree.Release()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %d bits: %w", len(report.Encoded), err)
	}

	report.InputDigest = xxhash.Sum64(input)
	report.OutputDigest = xxhash.Sum64(report.Decoded)
	if !bytes.Equal(input, report.Decoded) {
		p.logger.Error("round trip mismatch",
			zap.Int("inputLen", len(input)),
			zap.Int("outputLen", len(report.Decoded)),
			zap.Uint64("inputDigest", report.InputDigest),
			zap.Uint64("outputDigest", report.OutputDigest))
		return nil, fmt.Errorf("%w: digest %016x != %016x", ErrMismatch, report.OutputDigest, report.InputDigest)
	}

	report.Metrics = hufftree.ComputeMetrics(
		uint64(len(input)),
		uint64(len(report.Encoded)),
		hufftree.BitsPerByte,
		report.Table,
		freqs)

	if p.opts.Baseline {
		size, err := zstdSize(input)
		if err != nil {
			return nil, fmt.Errorf("failed to measure zstd baseline: %w", err)
		}
		report.BaselineSize = size
	}

	p.metrics.observe(report)

	if c := p.logger.Check(zap.InfoLevel, "round trip verified"); c != nil {
		c.Write(
			zap.Int("symbols", len(input)),
			zap.Int("alphabet", report.Table.Len()),
			zap.Int("bits", len(report.Encoded)),
			zap.Float64("ratio", report.Metrics.Ratio),
			zap.Float64("degree", report.Metrics.Degree),
			zap.Float64("avgCodeLength", report.Metrics.AverageCodeLength))
	}
	return report, nil
}

func zstdSize(input []byte) (int, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
	if err != nil {
		return 0, err
	}
	defer enc.Close()
	return len(enc.EncodeAll(input, nil)), nil
}
