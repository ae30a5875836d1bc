package normalize

import (
	"errors"
	"fmt"
)

// ErrRowSkipped marks a bank statement row that was left out of the
// transaction set. It is logged, never returned to callers.
var ErrRowSkipped = errors.New("row skipped")

// DataValidationError describes a rent row whose required field could not
// be parsed. It aborts normalization of the whole table.
type DataValidationError struct {
	Row   int // 1-based data row, header excluded
	Field string
	Value string
	Err   error
}

func (e *DataValidationError) Error() string {
	return fmt.Sprintf("row %d: invalid %s %q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *DataValidationError) Unwrap() error {
	return e.Err
}
