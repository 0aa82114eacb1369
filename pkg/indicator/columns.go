package indicator

import (
	"fmt"

	"github.com/raykavin/technicals/pkg/core"
)

// Fixed output column names
const (
	ColumnMACD          = "MACD"
	ColumnMACDSignal    = "MACD Signal"
	ColumnMACDHistogram = "MACD Histogram"

	ColumnBollingerMiddle = "Bollinger Middle Band"
	ColumnBollingerUpper  = "Bollinger Upper Band"
	ColumnBollingerLower  = "Bollinger Lower Band"
)

// SMAColumn returns the output column name of SMA for window
func SMAColumn(window int) string { return fmt.Sprintf("SMA%d", window) }

// RSIColumn returns the output column name of RSI for window
func RSIColumn(window int) string { return fmt.Sprintf("RSI%d", window) }

// ADXColumn returns the output column name of ADX for window
func ADXColumn(window int) string { return fmt.Sprintf("ADX%d", window) }

// DIPlusColumn returns the output column name of DI+ for window
func DIPlusColumn(window int) string { return fmt.Sprintf("DI+%d", window) }

// DIMinusColumn returns the output column name of DI- for window
func DIMinusColumn(window int) string { return fmt.Sprintf("DI-%d", window) }

// WRColumn returns the output column name of Williams %R for window
func WRColumn(window int) string { return fmt.Sprintf("WR%d", window) }

// prepare checks the dataframe contract and normalizes the window set
func prepare(df *core.Dataframe, windows []int) (core.WindowSet, error) {
	if df == nil {
		return nil, core.ErrEmptyDataframe
	}
	if err := df.Validate(); err != nil {
		return nil, err
	}
	return core.NewWindowSet(windows...)
}
