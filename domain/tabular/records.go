package tabular

import "strings"

// FromRecords builds a Table from cells that were already split upstream,
// e.g. spreadsheet rows. Trimming, numeric typing, trailing-field padding,
// and blank-row filtering match Normalize exactly, so every ingestion path
// agrees on what a value means.
func FromRecords(headers []string, records [][]string) (*Table, error) {
	trimmed := make([]string, len(headers))
	allBlank := true
	for i, h := range headers {
		trimmed[i] = strings.TrimSpace(h)
		if trimmed[i] != "" {
			allBlank = false
		}
	}
	if len(trimmed) == 0 || allBlank {
		return nil, ErrEmptyInput
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		fields := make([]string, len(rec))
		for i, f := range rec {
			fields[i] = strings.TrimSpace(f)
		}
		if row, ok := buildRow(trimmed, fields); ok {
			rows = append(rows, row)
		}
	}

	return &Table{Format: FormatStandard, Headers: trimmed, Rows: rows}, nil
}
