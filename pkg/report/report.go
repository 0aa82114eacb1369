// Package report renders dataframes and their indicator columns.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/technicals/pkg/core"
	"github.com/raykavin/technicals/pkg/metric"
	"github.com/samber/lo"
)

// ErrNoFiniteValues is returned when a histogram has nothing to plot
var ErrNoFiniteValues = errors.New("series has no finite values")

var priceHeader = []string{"Open", "High", "Low", "Close"}

func formatTime(df *core.Dataframe, i int) string {
	if i < len(df.Time) {
		return df.Time[i].UTC().Format(time.RFC3339)
	}
	return strconv.Itoa(i)
}

func formatValue(value float64) string {
	return fmt.Sprintf("%.4f", value)
}

func prices(df *core.Dataframe, i int) []float64 {
	return []float64{df.Open[i], df.High[i], df.Low[i], df.Close[i]}
}

func check(df *core.Dataframe, columns core.Columns) error {
	if df == nil {
		return core.ErrEmptyDataframe
	}
	if err := df.Validate(); err != nil {
		return err
	}
	return columns.Aligned(df.Len())
}

// WriteTable renders the price columns and indicator columns of the last
// rows of df as a text table. last <= 0 prints every row.
func WriteTable(w io.Writer, df *core.Dataframe, columns core.Columns, last int) error {
	if err := check(df, columns); err != nil {
		return err
	}

	merged, err := df.WithColumns(columns)
	if err != nil {
		return err
	}

	view := *merged
	if last > 0 {
		view = merged.Sample(last)
	}

	names := columns.Names()

	table := tablewriter.NewWriter(w)
	table.SetHeader(append(append([]string{"Time"}, priceHeader...), names...))
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetAutoFormatHeaders(false)

	for i := 0; i < view.Len(); i++ {
		row := []string{formatTime(&view, i)}
		row = append(row, lo.Map(prices(&view, i), func(v float64, _ int) string { return formatValue(v) })...)
		for _, name := range names {
			row = append(row, formatValue(view.Metadata[name][i]))
		}
		table.Append(row)
	}

	table.Render()
	return nil
}

// WriteCSV writes every row of df with its indicator columns. Values use the
// shortest representation that parses back to the same float; undefined
// positions are written as NaN.
func WriteCSV(w io.Writer, df *core.Dataframe, columns core.Columns) error {
	if err := check(df, columns); err != nil {
		return err
	}

	names := columns.Names()
	writer := csv.NewWriter(w)

	header := append([]string{"time", "open", "high", "low", "close"}, names...)
	if err := writer.Write(header); err != nil {
		return err
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for i := 0; i < df.Len(); i++ {
		record := []string{formatTime(df, i)}
		record = append(record, lo.Map(prices(df, i), func(v float64, _ int) string { return format(v) })...)
		for _, name := range names {
			record = append(record, format(columns[name][i]))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteSummary renders one row of statistics per column
func WriteSummary(w io.Writer, columns core.Columns) {
	summaries := metric.SummarizeColumns(columns)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Column", "Count", "Valid", "Warm-up", "Mean", "Std Dev", "Min", "Median", "Max", "Last"})
	table.SetAutoFormatHeaders(false)
	table.SetFooterAlignment(tablewriter.ALIGN_RIGHT)

	for _, name := range columns.Names() {
		summary := summaries[name]
		table.Append([]string{
			name,
			strconv.Itoa(summary.Count),
			strconv.Itoa(summary.Valid),
			strconv.Itoa(summary.Warmup),
			formatValue(summary.Mean),
			formatValue(summary.StdDev),
			formatValue(summary.Min),
			formatValue(summary.Median),
			formatValue(summary.Max),
			formatValue(summary.Last),
		})
	}

	table.Render()
}

// WriteHistogram plots the distribution of the finite values of series
func WriteHistogram(w io.Writer, series core.Series[float64], bins int) error {
	if bins <= 0 {
		return fmt.Errorf("%w: %d bins", core.ErrInvalidInput, bins)
	}

	data := lo.Filter(series.Values(), func(v float64, _ int) bool {
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	})
	if len(data) == 0 {
		return ErrNoFiniteValues
	}

	hist := histogram.Hist(bins, data)
	return histogram.Fprint(w, hist, histogram.Linear(10))
}
