package core

import (
	"fmt"

	"github.com/StudioSol/set"
	"github.com/samber/lo"
)

// WindowSet is an insertion-ordered set of lookback lengths. Each window
// yields one independent output column per indicator.
type WindowSet []int

// NewWindowSet deduplicates windows keeping the first occurrence order and
// rejects non-positive lengths
func NewWindowSet(windows ...int) (WindowSet, error) {
	unique := set.NewLinkedHashSetINT64()
	for _, window := range windows {
		if window <= 0 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, window)
		}
		unique.Add(int64(window))
	}

	result := make(WindowSet, 0, len(windows))
	for window := range unique.Iter() {
		result = append(result, int(window))
	}

	return result, nil
}

// Max returns the largest window, or 0 for an empty set
func (w WindowSet) Max() int {
	return lo.Max(w)
}
