package rows

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is matched by every *RangeError.
	ErrOutOfRange = errors.New("row index out of range")

	// ErrEmptyItem is returned when a blank label is appended.
	ErrEmptyItem = errors.New("row label is empty")

	// ErrUnsupportedEdit is returned by OnCommit for edit kinds the
	// controller cannot apply.
	ErrUnsupportedEdit = errors.New("unsupported edit")
)

// RangeError reports an index outside [Min, Max) for the named operation.
type RangeError struct {
	Op    string
	Index int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [%d,%d)", e.Op, e.Index, e.Min, e.Max)
}

// Is lets errors.Is(err, ErrOutOfRange) match any RangeError.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

func checkIndex(op string, index, limit int) error {
	if index < 0 || index >= limit {
		return &RangeError{Op: op, Index: index, Min: 0, Max: limit}
	}
	return nil
}
