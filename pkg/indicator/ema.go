package indicator

import (
	"fmt"

	"github.com/raykavin/technicals/pkg/core"
)

// Default MACD spans
const (
	DefaultMACDShort  = 12
	DefaultMACDLong   = 26
	DefaultMACDSignal = 9
)

// EMA calculates the Exponential Moving Average with alpha = 2/(span+1).
// The recurrence is seeded with the first value, so unlike the rolling
// indicators there is no warm-up: EMA[0] == values[0]. A NaN input poisons
// every later position.
func EMA(values []float64, span int) core.Series[float64] {
	out := make(core.Series[float64], len(values))
	if len(values) == 0 {
		return out
	}

	alpha := 2 / float64(span+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}

	return out
}

// MACD calculates Moving Average Convergence/Divergence
// Returns MACD, signal, and histogram
//
// The caller is expected to pass shortSpan < longSpan; the function does not
// check it and simply returns the (meaningless) difference otherwise.
func MACD(values []float64, shortSpan, longSpan, signalSpan int) (core.Series[float64], core.Series[float64], core.Series[float64]) {
	short := EMA(values, shortSpan)
	long := EMA(values, longSpan)

	macd := make(core.Series[float64], len(values))
	for i := range macd {
		macd[i] = short[i] - long[i]
	}

	signal := EMA(macd, signalSpan)

	histogram := make(core.Series[float64], len(values))
	for i := range histogram {
		histogram[i] = macd[i] - signal[i]
	}

	return macd, signal, histogram
}

// MACDColumns calculates MACD over the close prices of the dataframe
func MACDColumns(df *core.Dataframe, shortSpan, longSpan, signalSpan int) (core.Columns, error) {
	if _, err := prepare(df, []int{shortSpan, longSpan, signalSpan}); err != nil {
		return nil, fmt.Errorf("macd(%d, %d, %d): %w", shortSpan, longSpan, signalSpan, err)
	}

	macd, signal, histogram := MACD(df.Close, shortSpan, longSpan, signalSpan)
	return core.Columns{
		ColumnMACD:          macd,
		ColumnMACDSignal:    signal,
		ColumnMACDHistogram: histogram,
	}, nil
}
