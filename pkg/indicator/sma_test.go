package indicator

import (
	"math"
	"testing"

	"github.com/raykavin/technicals/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	t.Run("example", func(t *testing.T) {
		df := openFrame(10, 11, 12, 11, 10)

		columns, err := SMA(df, 3)
		require.NoError(t, err)
		assertSeries(t, []float64{nan, nan, 11.0, 34.0 / 3, 11.0}, columns["SMA3"], 1e-12)
	})

	t.Run("keyed off open", func(t *testing.T) {
		df := frame([]float64{1, 2, 3}, nil, nil, []float64{100, 200, 300})

		columns, err := SMA(df, 2)
		require.NoError(t, err)
		assertSeries(t, []float64{nan, 1.5, 2.5}, columns["SMA2"], 1e-12)
	})

	t.Run("warm-up prefix", func(t *testing.T) {
		df := sampleCandles()
		windows := []int{1, 5, 10, 30, 45}

		columns, err := SMA(df, windows...)
		require.NoError(t, err)
		require.Len(t, columns, len(windows))

		for _, window := range windows {
			values := columns[SMAColumn(window)]
			require.Len(t, values, df.Len())

			warmup := window - 1
			if window > df.Len() {
				warmup = df.Len()
			}
			assert.Equal(t, warmup, core.Warmup(values), "window %d", window)

			for i := warmup; i < df.Len(); i++ {
				sum := 0.0
				for _, v := range df.Open[i-window+1 : i+1] {
					sum += v
				}
				assert.InDelta(t, sum/float64(window), values[i], 1e-9)
			}
		}
	})

	t.Run("duplicate windows", func(t *testing.T) {
		columns, err := SMA(sampleCandles(), 3, 3, 5)
		require.NoError(t, err)
		assert.Equal(t, []string{"SMA3", "SMA5"}, columns.Names())
	})

	t.Run("idempotent", func(t *testing.T) {
		df := sampleCandles()
		first, err := SMA(df, 4, 7)
		require.NoError(t, err)
		second, err := SMA(df, 4, 7)
		require.NoError(t, err)

		for name := range first {
			for i := range first[name] {
				assert.Equal(t, math.Float64bits(first[name][i]), math.Float64bits(second[name][i]))
			}
		}
	})
}

func TestIndicatorsRejectMalformedInput(t *testing.T) {
	mismatched := frame([]float64{1, 2, 3}, []float64{1, 2}, nil, []float64{1, 2, 3})
	empty := &core.Dataframe{}

	calls := map[string]func(df *core.Dataframe, window int) error{
		"sma": func(df *core.Dataframe, window int) error { _, err := SMA(df, window); return err },
		"rsi": func(df *core.Dataframe, window int) error { _, err := RSI(df, window); return err },
		"adx": func(df *core.Dataframe, window int) error { _, err := ADX(df, window); return err },
		"wr":  func(df *core.Dataframe, window int) error { _, err := WillR(df, window); return err },
		"bb": func(df *core.Dataframe, window int) error {
			_, err := BollingerBands(df, window, 2)
			return err
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, call(mismatched, 2), core.ErrLengthMismatch)
			assert.ErrorIs(t, call(empty, 2), core.ErrEmptyDataframe)
			assert.ErrorIs(t, call(nil, 2), core.ErrEmptyDataframe)
			assert.ErrorIs(t, call(sampleCandles(), 0), core.ErrInvalidWindow)
			assert.ErrorIs(t, call(sampleCandles(), -3), core.ErrInvalidInput)
		})
	}
}

func TestInputIsNotMutated(t *testing.T) {
	df := sampleCandles()
	before := core.Dataframe{
		Open:  df.Open.Clone(),
		High:  df.High.Clone(),
		Low:   df.Low.Clone(),
		Close: df.Close.Clone(),
	}

	_, err := SMA(df, 3)
	require.NoError(t, err)
	_, err = RSI(df, 3)
	require.NoError(t, err)
	_, err = ADX(df, 3)
	require.NoError(t, err)
	_, err = WillR(df, 3)
	require.NoError(t, err)
	_, err = BollingerBands(df, 3, 2)
	require.NoError(t, err)
	MACD(df.Close, 3, 6, 2)

	assert.Equal(t, before.Open, df.Open)
	assert.Equal(t, before.High, df.High)
	assert.Equal(t, before.Low, df.Low)
	assert.Equal(t, before.Close, df.Close)
	assert.Empty(t, df.Metadata)
}
