package indicator

import (
	"math"
	"testing"

	"github.com/raykavin/technicals/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

// frame builds a dataframe where unset price columns mirror close
func frame(open, high, low, close []float64) *core.Dataframe {
	if open == nil {
		open = close
	}
	if high == nil {
		high = close
	}
	if low == nil {
		low = close
	}
	return &core.Dataframe{
		Pair:  "TEST",
		Open:  open,
		High:  high,
		Low:   low,
		Close: close,
	}
}

// openFrame builds a dataframe where every price column is open
func openFrame(open ...float64) *core.Dataframe {
	return frame(open, open, open, open)
}

func assertSeries(t *testing.T, expected []float64, actual core.Series[float64], delta float64) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		switch {
		case math.IsNaN(expected[i]):
			assert.Truef(t, math.IsNaN(actual[i]), "position %d: expected NaN, got %v", i, actual[i])
		case math.IsInf(expected[i], 0):
			assert.Equalf(t, expected[i], actual[i], "position %d", i)
		default:
			assert.InDeltaf(t, expected[i], actual[i], delta, "position %d", i)
		}
	}
}

// sampleCandles returns a deterministic, non-degenerate price path
func sampleCandles() *core.Dataframe {
	closes := []float64{
		44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10, 45.42, 45.84, 46.08,
		45.89, 46.03, 45.61, 46.28, 46.28, 46.00, 46.03, 46.41, 46.22, 45.64,
		46.21, 46.25, 45.71, 46.45, 45.78, 45.35, 44.03, 44.18, 44.22, 44.57,
	}

	size := len(closes)
	open := make([]float64, size)
	high := make([]float64, size)
	low := make([]float64, size)
	for i, c := range closes {
		open[i] = c - 0.15*math.Sin(float64(i))
		high[i] = math.Max(open[i], c) + 0.2 + 0.05*float64(i%3)
		low[i] = math.Min(open[i], c) - 0.25 - 0.05*float64(i%4)
	}

	return frame(open, high, low, closes)
}
