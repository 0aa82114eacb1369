package feed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/raykavin/technicals/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "bars.csv")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	return file
}

func TestNewCSVFeed(t *testing.T) {
	t.Run("headerless default layout", func(t *testing.T) {
		file := writeFile(t, strings.Join([]string{
			"1609459200,10,11,9,12,100",
			"1609545600,11,12,10,13,200",
		}, "\n"))

		feed, err := NewCSVFeed("BTCUSDT", file)
		require.NoError(t, err)
		require.Equal(t, 2, feed.Len())

		candles, err := feed.Candles("BTCUSDT")
		require.NoError(t, err)

		first := candles[0]
		assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), first.Time)
		assert.Equal(t, 10.0, first.Open)
		assert.Equal(t, 11.0, first.Close)
		assert.Equal(t, 9.0, first.Low)
		assert.Equal(t, 12.0, first.High)
		assert.Equal(t, 100.0, first.Volume)
		assert.Nil(t, first.Metadata)
	})

	t.Run("custom header order and extra columns", func(t *testing.T) {
		file := writeFile(t, strings.Join([]string{
			"time,high,low,open,close,trades",
			"2021-01-01T00:00:00Z,12,9,10,11,7",
			"2021-01-02T00:00:00Z,13,10,11,12,8",
		}, "\n"))

		feed, err := NewCSVFeed("ETHUSDT", file)
		require.NoError(t, err)

		df := feed.Dataframe()
		assert.Equal(t, "ETHUSDT", df.Pair)
		assert.Equal(t, []float64{10, 11}, df.Open.Values())
		assert.Equal(t, []float64{12, 13}, df.High.Values())
		assert.Equal(t, []float64{9, 10}, df.Low.Values())
		assert.Equal(t, []float64{11, 12}, df.Close.Values())
		assert.Equal(t, []float64{0, 0}, df.Volume.Values())
		assert.Equal(t, []float64{7, 8}, df.Metadata["trades"].Values())
		require.NoError(t, df.Validate())
	})

	t.Run("unordered rows", func(t *testing.T) {
		file := writeFile(t, strings.Join([]string{
			"1609545600,11,12,10,13,200",
			"1609459200,10,11,9,12,100",
		}, "\n"))

		_, err := NewCSVFeed("BTCUSDT", file)
		require.ErrorIs(t, err, ErrUnorderedData)
	})

	t.Run("missing required column", func(t *testing.T) {
		file := writeFile(t, "time,open,close\n1609459200,1,2\n")
		_, err := NewCSVFeed("BTCUSDT", file)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "low")
	})

	t.Run("invalid number", func(t *testing.T) {
		file := writeFile(t, "1609459200,10,abc,9,12,100\n")
		_, err := NewCSVFeed("BTCUSDT", file)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "close")
	})

	t.Run("header only", func(t *testing.T) {
		file := writeFile(t, "time,open,close,low,high,volume\n")
		_, err := NewCSVFeed("BTCUSDT", file)
		require.ErrorIs(t, err, ErrNoData)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewCSVFeed("BTCUSDT", filepath.Join(t.TempDir(), "nope.csv"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestCSVFeed_Limit(t *testing.T) {
	lines := make([]string, 0, 10)
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		candle := core.Candle{Time: start.AddDate(0, 0, i), Open: 1, Close: 1.5, Low: 0.5, High: 2, Volume: 10}
		lines = append(lines, strings.Join(candle.ToSlice(2), ","))
	}
	file := writeFile(t, strings.Join(lines, "\n"))

	feed, err := NewCSVFeed("BTCUSDT", file)
	require.NoError(t, err)

	limit, err := ParseLimit("3d")
	require.NoError(t, err)

	feed.Limit(limit)
	candles, err := feed.Candles("BTCUSDT")
	require.NoError(t, err)
	require.Len(t, candles, 3)
	assert.Equal(t, start.AddDate(0, 0, 7), candles[0].Time)
	assert.Equal(t, 1.5, candles[0].Close)

	_, err = feed.Candles("ETHUSDT")
	require.ErrorIs(t, err, ErrNoData)
}

func TestParseLimit(t *testing.T) {
	duration, err := ParseLimit("1w2d")
	require.NoError(t, err)
	assert.Equal(t, 9*24*time.Hour, duration)

	_, err = ParseLimit("soon")
	require.Error(t, err)
}
