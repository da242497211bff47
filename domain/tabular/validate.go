package tabular

// RequireColumns verifies every name in required appears among t's headers.
// On failure it returns a *MissingColumnsError listing what was missing and
// what the file actually contained.
func RequireColumns(t *Table, required []string) error {
	present := make(map[string]bool, len(t.Headers))
	for _, h := range t.Headers {
		present[h] = true
	}

	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		found := make([]string, len(t.Headers))
		copy(found, t.Headers)
		return &MissingColumnsError{Missing: missing, Found: found}
	}
	return nil
}

// CheckRowLimit fails with a *RowLimitError when t holds more than max rows.
// The check runs against the post-filter count, so blank lines in the source
// never count toward the limit. A max of zero or below disables the check.
func CheckRowLimit(t *Table, max int) error {
	if max > 0 && len(t.Rows) > max {
		return &RowLimitError{Limit: max, Count: len(t.Rows)}
	}
	return nil
}

// EnsureDataRows fails with ErrNoDataRows when the header parsed but every
// data line was filtered away.
func EnsureDataRows(t *Table) error {
	if len(t.Rows) == 0 {
		return ErrNoDataRows
	}
	return nil
}
