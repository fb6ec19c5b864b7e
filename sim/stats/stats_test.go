package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentile_LinearInterpolation(t *testing.T) {
	data := []float64{10, 20, 30, 40, 50}
	tests := []struct {
		name string
		p    float64
		want float64
	}{
		{"median", 50, 30},
		{"5th", 5, 12},
		{"95th", 95, 48},
		{"25th", 25, 20},
		{"min", 0, 10},
		{"max", 100, 50},
		{"above range clamps", 150, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Percentile(data, tt.p), 1e-9)
		})
	}
}

func TestPercentile_UnsortedInput_NotMutated(t *testing.T) {
	// GIVEN unsorted data
	data := []float64{50, 10, 40, 20, 30}

	// WHEN the median is taken
	got := Percentile(data, 50)

	// THEN the result matches the sorted definition and the input is untouched
	assert.Equal(t, 30.0, got)
	assert.Equal(t, []float64{50, 10, 40, 20, 30}, data)
}

func TestPercentile_EmptyAndSingle(t *testing.T) {
	assert.Equal(t, 0.0, Percentile(nil, 50))
	assert.Equal(t, 7.0, Percentile([]float64{7}, 5))
	assert.Equal(t, 7.0, Percentile([]float64{7}, 95))
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average([]float64{}, 2))
	assert.Equal(t, 0.0, Average(nil, 2))
	assert.Equal(t, 2.5, Average([]float64{0, 5}, 2))
	assert.Equal(t, 0.33, Average([]float64{0, 0, 1}, 2))
	assert.Equal(t, 0.3, Average([]float64{0, 0, 1}, 1))
	// 0.125 is exact in binary: half rounds to even
	assert.Equal(t, 0.12, Average([]float64{0.125}, 2))
}

func TestSummarize_Modes(t *testing.T) {
	data := []float64{10, 20, 30, 40, 50}

	pct := Summarize(data, ModePercentile)
	assert.InDelta(t, 12, pct.Low, 1e-9)
	assert.InDelta(t, 48, pct.High, 1e-9)
	assert.Equal(t, 30.0, pct.Mean)

	mm := Summarize(data, ModeMinMax)
	assert.Equal(t, Summary{Low: 10, High: 50, Mean: 30}, mm)
}

func TestSummarize_Empty_ZeroSummary(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil, ModePercentile))
	assert.Equal(t, Summary{}, Summarize([]float64{}, ModeMinMax))
	assert.Equal(t, Summary{}, SumThenSummarize(nil, ModePercentile))
	assert.Equal(t, Summary{}, MeanThenSummarize([][]float64{}, ModeMinMax))
}

func TestTwoStageReductions_SingleRun(t *testing.T) {
	// GIVEN one run where A served a team without waiting and one after 5 minutes
	waits := [][]float64{{0, 5}}

	// THEN the per-run total is 5 and the per-run mean is 2.5
	assert.Equal(t, Summary{Low: 5, High: 5, Mean: 5}, SumThenSummarize(waits, ModePercentile))
	assert.Equal(t, Summary{Low: 2.5, High: 2.5, Mean: 2.5}, MeanThenSummarize(waits, ModePercentile))
}

func TestTwoStageReductions_RunWithoutVisits_CountsAsZero(t *testing.T) {
	// GIVEN three runs, one of which saw no visits
	waits := [][]float64{{1, 3}, {}, {4}}

	sum := SumThenSummarize(waits, ModeMinMax)
	assert.Equal(t, Summary{Low: 0, High: 4, Mean: 2.67}, sum)

	mean := MeanThenSummarize(waits, ModeMinMax)
	assert.Equal(t, Summary{Low: 0, High: 4, Mean: 2}, mean)
}

func TestFlattenAndIntsToFloats(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 3}, Flatten([][]float64{{1}, {}, {2, 3}}))
	assert.Nil(t, Flatten(nil))
	assert.Equal(t, []float64{0, 3}, IntsToFloats([]int{0, 3}))
}
