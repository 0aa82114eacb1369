package indicator

import (
	"math"
	"testing"

	"github.com/markcheno/go-talib"
	"github.com/stretchr/testify/assert"
)

func TestRollingSum(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	assertSeries(t, []float64{nan, nan, 6, 9, 12}, RollingSum(values, 3), 1e-12)
	assertSeries(t, values, RollingSum(values, 1), 0)
	assertSeries(t, []float64{nan, nan, nan, nan, nan}, RollingSum(values, 6), 0)
}

func TestRollingNaNInsideWindow(t *testing.T) {
	values := []float64{1, nan, 3, 4, 5, 6}

	// Every window touching position 1 is undefined
	assertSeries(t, []float64{nan, nan, nan, 3.5, 4.5, 5.5}, RollingMean(values, 2), 1e-12)
	assertSeries(t, []float64{nan, nan, nan, 4, 5, 6}, RollingMax(values, 2), 0)
	assertSeries(t, []float64{nan, nan, nan, 3, 4, 5}, RollingMin(values, 2), 0)
}

func TestRollingStdDev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	std := RollingStdDev(values, len(values))
	assert.InDelta(t, 2.13808993529939, std[len(values)-1], 1e-12)

	// a single value has no sample deviation
	assertSeries(t, []float64{nan, nan, nan}, RollingStdDev([]float64{1, 2, 3}, 1), 0)
}

func TestRollingExtremes(t *testing.T) {
	values := []float64{5, 3, 8, 1, 7, 7, 2}

	assertSeries(t, []float64{nan, nan, 8, 8, 8, 7, 7}, RollingMax(values, 3), 0)
	assertSeries(t, []float64{nan, nan, 3, 1, 1, 1, 2}, RollingMin(values, 3), 0)
	assertSeries(t, values, RollingMax(values, 1), 0)
	assertSeries(t, values, RollingMin(values, 1), 0)
	assertSeries(t, []float64{nan, nan}, RollingMax(values[:2], 3), 0)
}

func TestRollingAgainstReference(t *testing.T) {
	df := sampleCandles()

	for _, window := range []int{2, 5, 14} {
		mean := RollingMean(df.Close, window)
		expected := talib.Sma(df.Close, window)
		for i := window - 1; i < len(mean); i++ {
			assert.InDelta(t, expected[i], mean[i], 1e-9)
		}
		for i := 0; i < window-1; i++ {
			assert.True(t, math.IsNaN(mean[i]))
		}

		highest := RollingMax(df.High, window)
		lowest := RollingMin(df.Low, window)
		for i := window - 1; i < len(highest); i++ {
			maxHigh, minLow := df.High[i], df.Low[i]
			for j := i - window + 1; j <= i; j++ {
				maxHigh = math.Max(maxHigh, df.High[j])
				minLow = math.Min(minLow, df.Low[j])
			}
			assert.Equal(t, maxHigh, highest[i])
			assert.Equal(t, minLow, lowest[i])
		}
	}
}
