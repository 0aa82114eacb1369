package technicals

import (
	"fmt"
	"runtime"

	"github.com/raykavin/technicals/pkg/core"
	"github.com/raykavin/technicals/pkg/indicator"
)

// MACDConfig holds the three EMA spans of MACD
type MACDConfig struct {
	Short  int `mapstructure:"short"`
	Long   int `mapstructure:"long"`
	Signal int `mapstructure:"signal"`
}

// BollingerConfig holds the Bollinger Bands window and standard deviation multiplier
type BollingerConfig struct {
	Window    int     `mapstructure:"window"`
	Deviation float64 `mapstructure:"deviation"`
}

// Config selects which indicators the calculator runs and with which windows.
// A nil or empty entry disables the indicator.
type Config struct {
	MACD      *MACDConfig      `mapstructure:"macd"`
	SMA       []int            `mapstructure:"sma"`
	RSI       []int            `mapstructure:"rsi"`
	ADX       []int            `mapstructure:"adx"`
	WR        []int            `mapstructure:"wr"`
	Bollinger *BollingerConfig `mapstructure:"bollinger"`

	// Parallelism bounds how many indicator jobs run at once, 0 means one per CPU
	Parallelism int `mapstructure:"parallelism"`
}

// DefaultConfig returns a configuration with only the standard 12/26/9 MACD
func DefaultConfig() Config {
	return Config{
		MACD: &MACDConfig{
			Short:  indicator.DefaultMACDShort,
			Long:   indicator.DefaultMACDLong,
			Signal: indicator.DefaultMACDSignal,
		},
	}
}

// ExampleConfig returns a configuration enabling every indicator with common windows
func ExampleConfig() Config {
	config := DefaultConfig()
	config.SMA = []int{20, 50}
	config.RSI = []int{14}
	config.ADX = []int{14}
	config.WR = []int{14}
	config.Bollinger = &BollingerConfig{Window: 20, Deviation: 2}
	return config
}

// Validate rejects non-positive windows, spans and parallelism
func (c Config) Validate() error {
	windows := map[string][]int{
		"sma": c.SMA,
		"rsi": c.RSI,
		"adx": c.ADX,
		"wr":  c.WR,
	}
	if c.MACD != nil {
		windows["macd"] = []int{c.MACD.Short, c.MACD.Long, c.MACD.Signal}
	}
	if c.Bollinger != nil {
		windows["bollinger"] = []int{c.Bollinger.Window}
	}

	for name, values := range windows {
		if _, err := core.NewWindowSet(values...); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if c.Parallelism < 0 {
		return fmt.Errorf("%w: parallelism %d", core.ErrInvalidInput, c.Parallelism)
	}

	return nil
}

// parallelism returns the effective job limit
func (c Config) parallelism() int {
	if c.Parallelism == 0 {
		return runtime.NumCPU()
	}
	return c.Parallelism
}

// longestWindow returns the largest rolling window; MACD is defined from the
// first bar and does not count
func (c Config) longestWindow() int {
	windows := append(append(append(append([]int{}, c.SMA...), c.RSI...), c.WR...), c.ADX...)
	if c.Bollinger != nil {
		windows = append(windows, c.Bollinger.Window)
	}

	set, err := core.NewWindowSet(windows...)
	if err != nil {
		return 0
	}
	return set.Max()
}

// job computes one group of columns
type job struct {
	name string
	run  func(df *core.Dataframe) (core.Columns, error)
}

// jobs expands the configuration into one job per indicator and window,
// so independent windows can run in parallel
func (c Config) jobs() []job {
	jobs := make([]job, 0)

	if c.MACD != nil {
		macd := *c.MACD
		jobs = append(jobs, job{
			name: fmt.Sprintf("macd(%d,%d,%d)", macd.Short, macd.Long, macd.Signal),
			run: func(df *core.Dataframe) (core.Columns, error) {
				return indicator.MACDColumns(df, macd.Short, macd.Long, macd.Signal)
			},
		})
	}

	perWindow := []struct {
		name    string
		windows []int
		fn      func(*core.Dataframe, ...int) (core.Columns, error)
	}{
		{"sma", c.SMA, indicator.SMA},
		{"rsi", c.RSI, indicator.RSI},
		{"adx", c.ADX, indicator.ADX},
		{"wr", c.WR, indicator.WillR},
	}

	for _, family := range perWindow {
		set, err := core.NewWindowSet(family.windows...)
		if err != nil {
			// Validate has already rejected this configuration
			continue
		}
		for _, window := range set {
			window, fn := window, family.fn
			jobs = append(jobs, job{
				name: fmt.Sprintf("%s(%d)", family.name, window),
				run: func(df *core.Dataframe) (core.Columns, error) {
					return fn(df, window)
				},
			})
		}
	}

	if c.Bollinger != nil {
		bb := *c.Bollinger
		jobs = append(jobs, job{
			name: fmt.Sprintf("bollinger(%d,%g)", bb.Window, bb.Deviation),
			run: func(df *core.Dataframe) (core.Columns, error) {
				return indicator.BollingerBands(df, bb.Window, bb.Deviation)
			},
		})
	}

	return jobs
}
