package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/raykavin/technicals"
	"github.com/raykavin/technicals/pkg/config"
	"github.com/raykavin/technicals/pkg/core"
	"github.com/raykavin/technicals/pkg/feed"
	"github.com/raykavin/technicals/pkg/logger"
	"github.com/raykavin/technicals/pkg/report"
	"github.com/raykavin/technicals/pkg/storage"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

const (
	formatTable = "table"
	formatCSV   = "csv"

	histogramBins = 15
)

// Command line flags
var (
	inputFile  string
	configFile string
	pair       string
	last       string
	format     string
	outputFile string
	rows       int
	storeFile  string
	summary    bool
	histColumn string
	progress   bool
	verbose    bool
)

// columnStore is a column storage that holds an open database
type columnStore interface {
	core.ColumnStorage
	Close() error
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "technicals",
		Short:   "Technical indicators for OHLC price series",
		Version: "1.0.0",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verbose {
				technicals.DefaultLog.SetLevel(logger.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(buildComputeCmd(), buildKeysCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildComputeCmd() *cobra.Command {
	computeCmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the configured indicators over a CSV file of bars",
		RunE:  runCompute,
	}

	flags := computeCmd.Flags()
	flags.StringVarP(&inputFile, "input", "i", "", "CSV file with time,open,close,low,high,volume bars")
	flags.StringVarP(&configFile, "config", "c", config.DefaultConfigPath, "Indicator configuration, created when missing")
	flags.StringVarP(&pair, "pair", "p", "", "Pair name (default: input file name)")
	flags.StringVar(&last, "last", "", "Keep only bars within this trailing period (e.g. 30d)")
	flags.StringVarP(&format, "format", "f", formatTable, "Output format: table or csv")
	flags.StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	flags.IntVar(&rows, "rows", 20, "Rows printed in table format, 0 prints all")
	flags.StringVar(&storeFile, "store", "", "Persist the columns into a BuntDB (.db) or SQLite (.sqlite) file")
	flags.BoolVar(&summary, "summary", false, "Print per column statistics")
	flags.StringVar(&histColumn, "hist", "", "Print the histogram of a column")
	flags.BoolVar(&progress, "progress", false, "Show a progress bar")

	computeCmd.MarkFlagRequired("input")

	return computeCmd
}

func buildKeysCmd() *cobra.Command {
	keysCmd := &cobra.Command{
		Use:   "keys",
		Short: "List the keys held by a column store",
		RunE:  runKeys,
	}

	keysCmd.Flags().StringVar(&storeFile, "store", "", "BuntDB (.db) or SQLite (.sqlite) file")
	keysCmd.MarkFlagRequired("store")

	return keysCmd
}

func runCompute(cmd *cobra.Command, _ []string) error {
	if format != formatTable && format != formatCSV {
		return fmt.Errorf("invalid format %q, use %s or %s", format, formatTable, formatCSV)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	if pair == "" {
		pair = strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
	}

	csvFeed, err := feed.NewCSVFeed(pair, inputFile)
	if err != nil {
		return err
	}

	if last != "" {
		duration, err := feed.ParseLimit(last)
		if err != nil {
			return err
		}
		csvFeed.Limit(duration)
	}

	options := make([]technicals.Option, 0)
	if progress {
		options = append(options, technicals.WithProgress(progressBar()))
	}

	var store columnStore
	if storeFile != "" {
		if store, err = openStore(storeFile); err != nil {
			return err
		}
		defer store.Close()
		options = append(options, technicals.WithStorage(store))
	}

	calculator, err := technicals.New(cfg, options...)
	if err != nil {
		return err
	}

	df := csvFeed.Dataframe()

	var columns core.Columns
	if store != nil {
		columns, err = calculator.ComputeAndStore(cmd.Context(), pair, df)
	} else {
		columns, err = calculator.Compute(cmd.Context(), df)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputFile != "" {
		file, err := os.Create(outputFile)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	return writeOutput(out, df, columns)
}

func writeOutput(out io.Writer, df *core.Dataframe, columns core.Columns) error {
	var err error
	switch format {
	case formatCSV:
		err = report.WriteCSV(out, df, columns)
	default:
		err = report.WriteTable(out, df, columns, rows)
	}
	if err != nil {
		return err
	}

	if summary {
		fmt.Fprintln(out)
		report.WriteSummary(out, columns)
	}

	if histColumn != "" {
		series, err := columns.Get(histColumn)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "\n------ %s -------\n", histColumn)
		if err := report.WriteHistogram(out, series, histogramBins); err != nil {
			return err
		}
	}

	return nil
}

func runKeys(cmd *cobra.Command, _ []string) error {
	store, err := openStore(storeFile)
	if err != nil {
		return err
	}
	defer store.Close()

	keys, err := store.Keys()
	if err != nil {
		return err
	}

	for _, key := range keys {
		fmt.Fprintln(cmd.OutOrStdout(), key)
	}

	return nil
}

// openStore picks the backend from the file extension
func openStore(file string) (columnStore, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".sqlite", ".sqlite3":
		return storage.FromSQLite(file)
	default:
		return storage.FromFile(file)
	}
}

// progressBar returns a progress callback drawing on stderr
func progressBar() func(done, total int) {
	var bar *progressbar.ProgressBar

	return func(done, total int) {
		if bar == nil {
			bar = progressbar.Default(int64(total))
		}
		if err := bar.Set(done); err != nil {
			technicals.DefaultLog.Warnf("update progressbar fail: %v", err)
		}
	}
}
