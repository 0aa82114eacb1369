package core

import (
	"fmt"
	"time"
)

// Dataframe is a time series container for OHLCV bars and derived indicator columns.
// Rows are ordered by ascending time; position is the only key the indicators rely on.
type Dataframe struct {
	Pair string

	Close  Series[float64]
	Open   Series[float64]
	High   Series[float64]
	Low    Series[float64]
	Volume Series[float64]

	Time []time.Time

	// Indicator columns merged by the caller, see WithColumns
	Metadata map[string]Series[float64]
}

// NewDataframe builds a dataframe from time-ordered candles
func NewDataframe(pair string, candles []Candle) *Dataframe {
	df := &Dataframe{
		Pair:     pair,
		Close:    make(Series[float64], 0, len(candles)),
		Open:     make(Series[float64], 0, len(candles)),
		High:     make(Series[float64], 0, len(candles)),
		Low:      make(Series[float64], 0, len(candles)),
		Volume:   make(Series[float64], 0, len(candles)),
		Time:     make([]time.Time, 0, len(candles)),
		Metadata: make(map[string]Series[float64]),
	}

	for _, candle := range candles {
		df.Close = append(df.Close, candle.Close)
		df.Open = append(df.Open, candle.Open)
		df.High = append(df.High, candle.High)
		df.Low = append(df.Low, candle.Low)
		df.Volume = append(df.Volume, candle.Volume)
		df.Time = append(df.Time, candle.Time)
	}

	return df
}

// Len returns the number of bars in the dataframe
func (df Dataframe) Len() int {
	return len(df.Close)
}

// Validate checks the input contract shared by every indicator: the price
// columns are non-empty and all have the same length. Time and Volume are
// optional but, when present, must be aligned too.
func (df Dataframe) Validate() error {
	size := len(df.Close)
	if size == 0 {
		return ErrEmptyDataframe
	}

	columns := map[string]int{
		"open": len(df.Open),
		"high": len(df.High),
		"low":  len(df.Low),
	}
	if len(df.Volume) > 0 {
		columns["volume"] = len(df.Volume)
	}
	if len(df.Time) > 0 {
		columns["time"] = len(df.Time)
	}

	for name, length := range columns {
		if length != size {
			return fmt.Errorf("%w: %s has %d rows, close has %d", ErrLengthMismatch, name, length, size)
		}
	}

	return nil
}

// WithColumns returns a copy of the dataframe whose Metadata also holds the
// given columns. The receiver is left untouched.
func (df Dataframe) WithColumns(columns Columns) (*Dataframe, error) {
	if err := columns.Aligned(df.Len()); err != nil {
		return nil, err
	}

	merged := df
	merged.Metadata = make(map[string]Series[float64], len(df.Metadata)+len(columns))
	for name, values := range df.Metadata {
		merged.Metadata[name] = values
	}
	for name, values := range columns {
		merged.Metadata[name] = values.Clone()
	}

	return &merged, nil
}

// Sample returns a subset of the dataframe with the last 'positions' elements
// Used for windowing operations on a dataframe
func (df Dataframe) Sample(positions int) Dataframe {
	size := len(df.Close)
	start := size - positions

	// Return the entire dataframe if requested sample is larger than dataframe
	if start <= 0 {
		return df
	}

	sample := Dataframe{
		Pair:     df.Pair,
		Close:    df.Close.LastValues(positions),
		Open:     df.Open.LastValues(positions),
		High:     df.High.LastValues(positions),
		Low:      df.Low.LastValues(positions),
		Volume:   df.Volume.LastValues(positions),
		Metadata: make(map[string]Series[float64]),
	}
	if len(df.Time) == size {
		sample.Time = df.Time[start:]
	}

	// Also copy metadata series
	for key := range df.Metadata {
		sample.Metadata[key] = df.Metadata[key].LastValues(positions)
	}

	return sample
}
