package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const ns, sub = "huffreport", "run"

type runMetrics struct {
	inputSymbols      prometheus.Gauge
	encodedBits       prometheus.Gauge
	alphabetSize      prometheus.Gauge
	compressionRatio  prometheus.Gauge
	compressionDegree prometheus.Gauge
	averageCodeLength prometheus.Gauge
	baselineBytes     prometheus.Gauge
	stageDuration     *prometheus.GaugeVec
}

func newRunMetrics(registry prometheus.Registerer) *runMetrics {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      name,
			Help:      help,
		})
	}

	m := &runMetrics{
		inputSymbols:      gauge("input_symbols", "The number of symbols in the input"),
		encodedBits:       gauge("encoded_bits", "The number of bits in the encoded output"),
		alphabetSize:      gauge("alphabet_size", "The number of distinct symbols in the input"),
		compressionRatio:  gauge("compression_ratio", "Unencoded size divided by encoded size"),
		compressionDegree: gauge("compression_degree_percent", "Percentage by which encoding shrank the input"),
		averageCodeLength: gauge("average_code_length_bits", "Mean number of bits per encoded symbol"),
		baselineBytes:     gauge("zstd_baseline_bytes", "Size of the input compressed with zstd, if measured"),
		stageDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "stage_duration_seconds",
			Help:      "Wall time spent in each pipeline stage",
		}, []string{"stage"}),
	}
	registry.MustRegister(
		m.inputSymbols,
		m.encodedBits,
		m.alphabetSize,
		m.compressionRatio,
		m.compressionDegree,
		m.averageCodeLength,
		m.baselineBytes,
		m.stageDuration,
	)
	return m
}

func (m *runMetrics) observe(report *Report) {
	m.inputSymbols.Set(float64(report.Metrics.InputLen))
	m.encodedBits.Set(float64(report.Metrics.EncodedLen))
	m.alphabetSize.Set(float64(report.Table.Len()))
	m.compressionRatio.Set(report.Metrics.Ratio)
	m.compressionDegree.Set(report.Metrics.Degree)
	m.averageCodeLength.Set(report.Metrics.AverageCodeLength)
	if report.BaselineSize >= 0 {
		m.baselineBytes.Set(float64(report.BaselineSize))
	}
	for _, stage := range report.Timings {
		m.stageDuration.WithLabelValues(stage.Name).Set(stage.Duration.Seconds())
	}
}

// Stage is the wall time of one pipeline stage.
type Stage struct {
	Name     string
	Duration time.Duration
}
