package metric

import (
	"math"
	"testing"

	"github.com/raykavin/technicals/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	nan := math.NaN()

	t.Run("ignores warm-up and infinities", func(t *testing.T) {
		summary := Summarize(core.Series[float64]{nan, nan, 2, 4, math.Inf(1), 4, 5, 7, 9})

		assert.Equal(t, 9, summary.Count)
		assert.Equal(t, 6, summary.Valid)
		assert.Equal(t, 2, summary.Warmup)
		assert.InDelta(t, 31.0/6, summary.Mean, 1e-12)
		assert.InDelta(t, math.Sqrt(185.0/30), summary.StdDev, 1e-12)
		assert.Equal(t, 2.0, summary.Min)
		assert.Equal(t, 9.0, summary.Max)
		assert.Equal(t, 9.0, summary.Last)
	})

	t.Run("undefined last position", func(t *testing.T) {
		summary := Summarize(core.Series[float64]{1, 2, nan})
		assert.True(t, math.IsNaN(summary.Last))
		assert.Equal(t, 2, summary.Valid)
		assert.Equal(t, 0, summary.Warmup)
	})

	t.Run("all NaN", func(t *testing.T) {
		summary := Summarize(core.NaNSeries(4))
		assert.Equal(t, 4, summary.Count)
		assert.Equal(t, 0, summary.Valid)
		assert.Equal(t, 4, summary.Warmup)
		assert.True(t, math.IsNaN(summary.Mean))
		assert.True(t, math.IsNaN(summary.Min))
		assert.True(t, math.IsNaN(summary.Median))
	})

	t.Run("empty", func(t *testing.T) {
		summary := Summarize(nil)
		assert.Equal(t, 0, summary.Count)
		assert.True(t, math.IsNaN(summary.Last))
	})
}

func TestSummarizeColumns(t *testing.T) {
	summaries := SummarizeColumns(core.Columns{
		"SMA2": {math.NaN(), 1, 2},
		"WR2":  {math.NaN(), -10, -30},
	})

	require.Len(t, summaries, 2)
	assert.Equal(t, 1.5, summaries["SMA2"].Mean)
	assert.Equal(t, -30.0, summaries["WR2"].Min)
}
