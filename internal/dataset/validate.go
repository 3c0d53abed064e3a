package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoColumns        = errors.New("columns must not be empty")
	ErrEmptyColumnName  = errors.New("column name must not be empty")
	ErrNegativeRowCount = errors.New("row_count must not be negative")
)

// Validate checks the request shape. A zero row count is valid and yields a
// header-only dataset.
func (r Request) Validate() error {
	if len(r.Columns) == 0 {
		return ErrNoColumns
	}
	for i, c := range r.Columns {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("column %d: %w", i, ErrEmptyColumnName)
		}
	}
	if r.RowCount < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeRowCount, r.RowCount)
	}
	return nil
}
