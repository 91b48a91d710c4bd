package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/chronos-tachyon/hufftree"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestPipeline(t *testing.T, opts Options) (*Pipeline, *prometheus.Registry) {
	registry := prometheus.NewRegistry()
	return New(zaptest.NewLogger(t), registry, opts), registry
}

func TestRun(t *testing.T) {
	p, _ := newTestPipeline(t, Options{})

	report, err := p.Run([]byte("aaabbc"))
	require.NoError(t, err)
	require.Equal(t, "000111110", report.Encoded)
	require.Equal(t, []byte("aaabbc"), report.Decoded)
	require.Equal(t, report.InputDigest, report.OutputDigest)
	require.Equal(t, 3, report.Table.Len())
	require.Equal(t, -1, report.BaselineSize)
	require.InDelta(t, 1.5, report.Metrics.AverageCodeLength, 1e-9)
	require.InDelta(t, 81.25, report.Metrics.Degree, 1e-9)

	for _, name := range []string{"count", "build", "encode", "decode"} {
		_, ok := report.Stage(name)
		require.True(t, ok, "missing stage %q", name)
	}

	packed, err := report.Packed()
	require.NoError(t, err)
	require.Equal(t, []byte{0x1f, 0x00}, packed)
}

func TestRun_SingleSymbol(t *testing.T) {
	p, _ := newTestPipeline(t, Options{})

	report, err := p.Run([]byte("aaaa"))
	require.NoError(t, err)
	require.Equal(t, "0000", report.Encoded)
	require.Equal(t, []byte("aaaa"), report.Decoded)
	require.InDelta(t, 1.0, report.Metrics.AverageCodeLength, 1e-9)
}

func TestRun_Rejects(t *testing.T) {
	p, _ := newTestPipeline(t, Options{MaxSize: 8})

	_, err := p.Run(nil)
	require.True(t, errors.Is(err, ErrEmpty), "got %v", err)

	_, err = p.Run([]byte("a"))
	require.True(t, errors.Is(err, ErrTooShort), "got %v", err)

	_, err = p.Run([]byte("abcdefghi"))
	require.True(t, errors.Is(err, ErrTooLarge), "got %v", err)
}

func TestRun_Metrics(t *testing.T) {
	p, registry := newTestPipeline(t, Options{Baseline: true})

	input := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog. ", 20))
	report, err := p.Run(input)
	require.NoError(t, err)
	require.Greater(t, report.BaselineSize, 0)

	require.Equal(t, float64(len(input)), testutil.ToFloat64(p.metrics.inputSymbols))
	require.Equal(t, float64(len(report.Encoded)), testutil.ToFloat64(p.metrics.encodedBits))
	require.Equal(t, float64(report.Table.Len()), testutil.ToFloat64(p.metrics.alphabetSize))
	require.Equal(t, report.Metrics.Ratio, testutil.ToFloat64(p.metrics.compressionRatio))
	require.Equal(t, float64(report.BaselineSize), testutil.ToFloat64(p.metrics.baselineBytes))

	count, err := testutil.GatherAndCount(registry, "huffreport_run_stage_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 4, count)
}

func TestReport_WriteTo(t *testing.T) {
	p, _ := newTestPipeline(t, Options{Baseline: true})

	report, err := p.Run([]byte("aaabbc"))
	require.NoError(t, err)

	var buf strings.Builder
	_, err = report.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()

	for _, expect := range []string{
		"Input text:\naaabbc\n\n",
		"Encoded text:\n000111110\n\n",
		"Decoded text:\naaabbc\n\n",
		"'a'\t0\n",
		"'b'\t11\n",
		"'c'\t10\n",
		"Compression degree: 81.25%\n",
		"Average code length: 1.5 bits per symbol\n",
		"Fixed-length code: 2 bits per symbol\n",
		"Encoded size: 2 B (9 bits)\n",
		"zstd size: ",
		"Time to encode: ",
		"Time to decode: ",
	} {
		require.Contains(t, out, expect)
	}
}

func TestRoundTripNeverMismatches(t *testing.T) {
	p, _ := newTestPipeline(t, Options{})

	inputs := [][]byte{
		[]byte("ab"),
		[]byte("mississippi"),
		[]byte{0, 0, 255, 255, 0, 1},
		[]byte(strings.Repeat("ab", 500) + "c"),
	}
	for _, input := range inputs {
		report, err := p.Run(input)
		require.NoError(t, err)
		require.Equal(t, input, report.Decoded)

		bits, err := hufftree.Unpack(mustPack(t, report), len(report.Encoded))
		require.NoError(t, err)
		require.Equal(t, report.Encoded, bits)
	}
}

func mustPack(t *testing.T, report *Report) []byte {
	t.Helper()
	packed, err := report.Packed()
	require.NoError(t, err)
	return packed
}
