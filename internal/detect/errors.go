package detect

import (
	"fmt"
	"strings"
)

// MissingColumnError reports required fields that could not be located.
type MissingColumnError struct {
	Table     string   // "rent" or "bank"
	Missing   []string // semantic field names
	Available []string // column labels, or positions for the bank table
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s table: missing required columns [%s]; available columns: [%s]",
		e.Table, strings.Join(e.Missing, ", "), strings.Join(e.Available, ", "))
}
