package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is the root of every malformed-input error returned by the indicators
	ErrInvalidInput = errors.New("invalid input")

	ErrEmptyDataframe  = fmt.Errorf("%w: empty dataframe", ErrInvalidInput)
	ErrLengthMismatch  = fmt.Errorf("%w: column length mismatch", ErrInvalidInput)
	ErrInvalidWindow   = fmt.Errorf("%w: window must be positive", ErrInvalidInput)
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrColumnNotFound  = errors.New("column not found")
)
