// Package stats reduces per-run samples into cross-run summaries.
// Every function is pure and tolerates empty input: an activity no team
// reached still gets a defined, zero-valued summary.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultDecimals is the rounding used for reported means.
const DefaultDecimals = 2

// Percentiles used by ModePercentile.
const (
	LowPercentile  = 5.0
	HighPercentile = 95.0
)

// Mode selects what Low and High of a Summary mean.
type Mode int

const (
	// ModePercentile reports the 5th and 95th percentiles.
	ModePercentile Mode = iota
	// ModeMinMax reports the true minimum and maximum.
	ModeMinMax
)

// Summary is the low/high/mean triple reported for a statistic.
type Summary struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
	Mean float64 `yaml:"mean"`
}

// Average returns the arithmetic mean rounded to decimals places, or 0 for
// an empty input. Halves round to even.
func Average(values []float64, decimals int) float64 {
	if len(values) == 0 {
		return 0
	}
	return round(stat.Mean(values, nil), decimals)
}

// Percentile returns the p-th percentile (0 <= p <= 100) using linear
// interpolation between closest ranks: rank = p/100 * (n-1). This is the
// default definition of numpy.percentile. Returns 0 for an empty input;
// p is clamped into [0, 100].
func Percentile(values []float64, p float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	p = math.Min(100, math.Max(0, p))
	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))
	if lowerIdx == upperIdx {
		return sorted[lowerIdx]
	}
	lowerVal := sorted[lowerIdx]
	upperVal := sorted[upperIdx]
	return lowerVal + (upperVal-lowerVal)*(rank-float64(lowerIdx))
}

// Summarize reduces values to low/high/mean according to mode.
func Summarize(values []float64, mode Mode) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	s := Summary{Mean: Average(values, DefaultDecimals)}
	switch mode {
	case ModeMinMax:
		s.Low = floats.Min(values)
		s.High = floats.Max(values)
	default:
		s.Low = Percentile(values, LowPercentile)
		s.High = Percentile(values, HighPercentile)
	}
	return s
}

// SumThenSummarize sums every per-run list and summarizes the per-run sums.
// This is the "total wait per run" reduction.
func SumThenSummarize(lists [][]float64, mode Mode) Summary {
	sums := make([]float64, len(lists))
	for i, l := range lists {
		sums[i] = floats.Sum(l)
	}
	return Summarize(sums, mode)
}

// MeanThenSummarize averages every per-run list and summarizes the per-run
// means. This is the "average wait per run" reduction.
func MeanThenSummarize(lists [][]float64, mode Mode) Summary {
	means := make([]float64, len(lists))
	for i, l := range lists {
		means[i] = Average(l, DefaultDecimals)
	}
	return Summarize(means, mode)
}

// Flatten concatenates the per-run lists.
func Flatten(lists [][]float64) []float64 {
	var out []float64
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// IntsToFloats converts integer samples such as queue watermarks.
func IntsToFloats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.RoundToEven(v*scale) / scale
}
