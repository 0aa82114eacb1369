package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/raykavin/technicals/pkg/core"
)

// columnRecord is the persisted form of one indicator column. Values are kept
// as text so NaN and infinities survive the round trip, which JSON numbers
// cannot represent.
type columnRecord struct {
	Key       string    `json:"key"`
	Column    string    `json:"column"`
	Values    string    `json:"values"`
	UpdatedAt time.Time `json:"updated_at"`
}

const valueSeparator = ","

func encodeValues(values core.Series[float64]) string {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = strconv.FormatFloat(value, 'g', -1, 64)
	}
	return strings.Join(parts, valueSeparator)
}

func decodeValues(text string) (core.Series[float64], error) {
	if text == "" {
		return core.Series[float64]{}, nil
	}

	parts := strings.Split(text, valueSeparator)
	values := make(core.Series[float64], len(parts))
	for i, part := range parts {
		value, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value at position %d: %w", i, err)
		}
		values[i] = value
	}

	return values, nil
}
