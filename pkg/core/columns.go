package core

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// Columns is a set of named indicator outputs, each aligned 1:1 with the
// dataframe it was computed from
type Columns map[string]Series[float64]

// Names returns the column names in lexical order
func (c Columns) Names() []string {
	names := lo.Keys(c)
	sort.Strings(names)
	return names
}

// Get returns the named column or ErrColumnNotFound
func (c Columns) Get(name string) (Series[float64], error) {
	values, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	return values, nil
}

// Merge copies every column of other into c, refusing to overwrite
func (c Columns) Merge(other Columns) error {
	for name, values := range other {
		if _, exists := c[name]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateColumn, name)
		}
		c[name] = values
	}
	return nil
}

// Aligned checks that every column has exactly size positions
func (c Columns) Aligned(size int) error {
	for _, name := range c.Names() {
		if length := len(c[name]); length != size {
			return fmt.Errorf("%w: column %s has %d rows, expected %d", ErrLengthMismatch, name, length, size)
		}
	}
	return nil
}
