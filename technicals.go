// Package technicals computes technical indicator columns (MACD, SMA, RSI,
// ADX, Williams %R and Bollinger Bands) over a time-ordered OHLC dataframe.
package technicals

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/raykavin/technicals/pkg/core"
	"github.com/raykavin/technicals/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// DefaultLog is the default logger instance
var DefaultLog logger.Logger

// ErrNoStorage is returned when persisting without a configured storage
var ErrNoStorage = errors.New("no column storage configured")

// Calculator runs a configured set of indicators over dataframes
type Calculator struct {
	config   Config
	logger   logger.Logger
	storage  core.ColumnStorage
	progress func(done, total int)
}

// New creates a calculator for the given configuration
func New(config Config, options ...Option) (*Calculator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	calculator := &Calculator{
		config: config,
		logger: DefaultLog,
	}

	for _, option := range options {
		option(calculator)
	}

	return calculator, nil
}

// Config returns the configuration the calculator was built with
func (c *Calculator) Config() Config {
	return c.config
}

// Compute calculates every configured indicator and returns the union of
// their columns. The dataframe is only read; the result does not depend on
// the order in which jobs are scheduled.
func (c *Calculator) Compute(ctx context.Context, df *core.Dataframe) (core.Columns, error) {
	if df == nil {
		return nil, core.ErrEmptyDataframe
	}
	if err := df.Validate(); err != nil {
		return nil, err
	}

	jobs := c.config.jobs()
	log := c.logger.WithFields(map[string]any{
		"pair": df.Pair,
		"bars": df.Len(),
		"jobs": len(jobs),
	})

	if len(jobs) == 0 {
		log.Warn("No indicator configured")
		return core.Columns{}, nil
	}

	if longest := c.config.longestWindow(); df.Len() < longest {
		log.Warnf("Only %d bars for a %d bar window, its columns stay undefined", df.Len(), longest)
	}

	start := time.Now()
	log.Debug("Computing indicators")

	var (
		mu     sync.Mutex
		done   int
		result = make(core.Columns)
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(c.config.parallelism())

	for _, j := range jobs {
		j := j
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			columns, err := j.run(df)
			if err != nil {
				return fmt.Errorf("%s: %w", j.name, err)
			}

			mu.Lock()
			defer mu.Unlock()

			if err := result.Merge(columns); err != nil {
				return fmt.Errorf("%s: %w", j.name, err)
			}

			done++
			if c.progress != nil {
				c.progress(done, len(jobs))
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		log.WithError(err).Error("Indicator computation failed")
		return nil, err
	}

	log.WithFields(map[string]any{
		"columns": len(result),
		"elapsed": time.Since(start).String(),
	}).Info("Indicators computed")

	return result, nil
}

// Attach computes the indicators and returns a copy of df with the columns
// merged into its Metadata
func (c *Calculator) Attach(ctx context.Context, df *core.Dataframe) (*core.Dataframe, error) {
	columns, err := c.Compute(ctx, df)
	if err != nil {
		return nil, err
	}
	return df.WithColumns(columns)
}

// ComputeAndStore computes the indicators and saves them under key
func (c *Calculator) ComputeAndStore(ctx context.Context, key string, df *core.Dataframe) (core.Columns, error) {
	if c.storage == nil {
		return nil, ErrNoStorage
	}

	columns, err := c.Compute(ctx, df)
	if err != nil {
		return nil, err
	}

	if err := c.storage.Save(key, columns); err != nil {
		return nil, fmt.Errorf("failed to store columns for %s: %w", key, err)
	}

	c.logger.WithField("key", key).Debugf("Stored %d columns", len(columns))

	return columns, nil
}
