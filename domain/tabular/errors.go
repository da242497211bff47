package tabular

import (
	"errors"
	"fmt"
	"strings"
)

// Parse-level errors
var (
	// ErrEmptyInput means the uploaded text had no non-blank lines at all.
	ErrEmptyInput = errors.New("file contains no usable lines")

	// ErrNoDataRows means a header parsed but zero data rows survived
	// blank-row filtering.
	ErrNoDataRows = errors.New("no data rows found after the header")
)

// MissingColumnsError reports required columns absent from a parsed header.
// It carries both the missing set and the headers that were actually found so
// the user can diagnose a mismatched export format.
type MissingColumnsError struct {
	Missing []string
	Found   []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s (found: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

// RowLimitError reports a parsed row count above the configured maximum. The
// count is the post-filter count, so blank lines never push a file over the
// limit.
type RowLimitError struct {
	Limit int
	Count int
}

func (e *RowLimitError) Error() string {
	return fmt.Sprintf("file has %d data rows, exceeding the maximum of %d", e.Count, e.Limit)
}

// Error checking helpers
func IsEmptyInput(err error) bool {
	return errors.Is(err, ErrEmptyInput)
}

func IsNoDataRows(err error) bool {
	return errors.Is(err, ErrNoDataRows)
}

func IsMissingColumns(err error) bool {
	var mce *MissingColumnsError
	return errors.As(err, &mce)
}

func IsRowLimit(err error) bool {
	var rle *RowLimitError
	return errors.As(err, &rle)
}
