// Package feed loads OHLCV bars from files into dataframes.
package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/raykavin/technicals/pkg/core"
	"github.com/samber/lo"
	"github.com/xhit/go-str2duration/v2"
)

var (
	// ErrUnorderedData is returned when bar timestamps go backwards
	ErrUnorderedData = errors.New("bars are not in ascending time order")
	// ErrNoData is returned for files without any bar
	ErrNoData = errors.New("no bars found")

	// defaultHeaderMap is the column layout of headerless files
	defaultHeaderMap = map[string]int{
		"time": 0, "open": 1, "close": 2, "low": 3, "high": 4, "volume": 5,
	}
	requiredHeaders = []string{"time", "open", "close", "low", "high"}
)

var _ core.Feeder = (*CSVFeed)(nil)

// CSVFeed holds the bars of a single pair read from a CSV file
type CSVFeed struct {
	Pair    string
	File    string
	candles []core.Candle
}

// NewCSVFeed reads every bar of file and assigns them to pair
func NewCSVFeed(pair, file string) (*CSVFeed, error) {
	csvFile, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer csvFile.Close()

	candles, err := ReadCandles(pair, csvFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	return &CSVFeed{Pair: pair, File: file, candles: candles}, nil
}

// ReadCandles parses bars from r. The first row is treated as a header unless
// it starts with a number, in which case the default layout
// time,open,close,low,high,volume applies. Unknown header columns are kept
// in Candle.Metadata.
func ReadCandles(pair string, r io.Reader) ([]core.Candle, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	lines, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrNoData
	}

	headerMap, additional, hasHeader, err := parseHeaders(lines[0])
	if err != nil {
		return nil, err
	}
	if hasHeader {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return nil, ErrNoData
	}

	candles := make([]core.Candle, 0, len(lines))
	for i, line := range lines {
		candle, err := parseCandle(line, headerMap, additional, pair)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		if i > 0 && candle.Time.Before(candles[i-1].Time) {
			return nil, fmt.Errorf("%w: row %d at %s", ErrUnorderedData, i+1, candle.Time.Format(time.RFC3339))
		}

		candles = append(candles, candle)
	}

	return candles, nil
}

// parseHeaders returns the column positions and the non standard columns
func parseHeaders(headers []string) (map[string]int, []string, bool, error) {
	if _, err := strconv.ParseInt(headers[0], 10, 64); err == nil {
		return defaultHeaderMap, nil, false, nil
	}

	headerMap := make(map[string]int, len(headers))
	additional := make([]string, 0)
	for index, header := range headers {
		header = strings.ToLower(strings.TrimSpace(header))
		headerMap[header] = index

		if _, exists := defaultHeaderMap[header]; !exists {
			additional = append(additional, header)
		}
	}

	missing := lo.Filter(requiredHeaders, func(header string, _ int) bool {
		_, ok := headerMap[header]
		return !ok
	})
	if len(missing) > 0 {
		return nil, nil, true, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	return headerMap, additional, true, nil
}

// parseTime accepts unix seconds or RFC 3339
func parseTime(value string) (time.Time, error) {
	if timestamp, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(timestamp, 0).UTC(), nil
	}
	return time.Parse(time.RFC3339, value)
}

func parseCandle(line []string, headerMap map[string]int, additional []string, pair string) (core.Candle, error) {
	field := func(name string) (float64, error) {
		index, ok := headerMap[name]
		if !ok || index >= len(line) {
			return 0, fmt.Errorf("missing %s", name)
		}
		value, err := strconv.ParseFloat(line[index], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", name, err)
		}
		return value, nil
	}

	if headerMap["time"] >= len(line) {
		return core.Candle{}, errors.New("missing time")
	}

	timestamp, err := parseTime(line[headerMap["time"]])
	if err != nil {
		return core.Candle{}, fmt.Errorf("invalid time: %w", err)
	}

	candle := core.Candle{Pair: pair, Time: timestamp}

	if candle.Open, err = field("open"); err != nil {
		return core.Candle{}, err
	}
	if candle.Close, err = field("close"); err != nil {
		return core.Candle{}, err
	}
	if candle.Low, err = field("low"); err != nil {
		return core.Candle{}, err
	}
	if candle.High, err = field("high"); err != nil {
		return core.Candle{}, err
	}

	// volume is optional in headed files
	if _, ok := headerMap["volume"]; ok {
		if candle.Volume, err = field("volume"); err != nil {
			return core.Candle{}, err
		}
	}

	if len(additional) > 0 {
		candle.Metadata = make(map[string]float64, len(additional))
		for _, header := range additional {
			if candle.Metadata[header], err = field(header); err != nil {
				return core.Candle{}, err
			}
		}
	}

	return candle, nil
}

// Candles returns the bars of pair, implementing core.Feeder
func (c *CSVFeed) Candles(pair string) ([]core.Candle, error) {
	if pair != c.Pair {
		return nil, fmt.Errorf("%w for pair %s", ErrNoData, pair)
	}
	return c.candles, nil
}

// Len returns the number of loaded bars
func (c *CSVFeed) Len() int {
	return len(c.candles)
}

// Dataframe converts the loaded bars into a dataframe. Extra CSV columns
// become Metadata series.
func (c *CSVFeed) Dataframe() *core.Dataframe {
	df := core.NewDataframe(c.Pair, c.candles)

	for _, candle := range c.candles {
		for name := range candle.Metadata {
			if _, ok := df.Metadata[name]; !ok {
				df.Metadata[name] = make(core.Series[float64], 0, len(c.candles))
			}
		}
	}
	for name := range df.Metadata {
		for _, candle := range c.candles {
			df.Metadata[name] = append(df.Metadata[name], candle.Metadata[name])
		}
	}

	return df
}

// Limit keeps only the bars within duration of the last bar
func (c *CSVFeed) Limit(duration time.Duration) *CSVFeed {
	if len(c.candles) == 0 || duration <= 0 {
		return c
	}

	start := c.candles[len(c.candles)-1].Time.Add(-duration)
	c.candles = lo.Filter(c.candles, func(candle core.Candle, _ int) bool {
		return candle.Time.After(start)
	})

	return c
}

// ParseLimit parses durations with day and week units such as "30d" or "2w"
func ParseLimit(value string) (time.Duration, error) {
	duration, err := str2duration.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid limit %q: %w", value, err)
	}
	return duration, nil
}
