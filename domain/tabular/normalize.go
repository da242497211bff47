package tabular

import (
	"math"
	"strconv"
	"strings"
)

// Normalize parses raw CSV text into a Table, auto-detecting which of the two
// supported encodings the file used. It is pure: no I/O, no logging, no
// retained state, and the same input always produces the same output.
//
// Normalize itself enforces neither required columns nor row limits; those
// are caller checks (RequireColumns, CheckRowLimit) so the limit applies to
// the post-filter row count.
func Normalize(text string) (*Table, error) {
	lines := surviveLines(text)
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}

	format := detectFormat(lines[0])

	var headers []string
	var fieldsOf func(line string) []string
	switch format {
	case FormatQuotedRow:
		// Every line, header included, carries one redundant outer quote
		// pair. Strip the pair per line, then split naively on commas.
		fieldsOf = func(line string) []string {
			return splitPlain(stripOuterQuotes(line))
		}
	default:
		// Per field: trim, drop one surrounding quote pair when both ends
		// carry one, then trim again so typing sees the bare value even when
		// the whitespace sat inside the quotes. Commas inside quoted fields
		// are NOT protected; this is deliberately not an RFC 4180 parser.
		fieldsOf = func(line string) []string {
			fields := splitPlain(line)
			for i, f := range fields {
				fields[i] = strings.TrimSpace(stripOuterQuotes(f))
			}
			return fields
		}
	}
	headers = fieldsOf(lines[0])

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if row, ok := buildRow(headers, fieldsOf(line)); ok {
			rows = append(rows, row)
		}
	}

	return &Table{Format: format, Headers: headers, Rows: rows}, nil
}

// buildRow assembles one record against the header count only: short rows
// pad with "", fields beyond the header count are ignored. The second return
// is false for all-empty records, which callers drop.
func buildRow(headers, fields []string) (Row, bool) {
	row := make(Row, len(headers))
	blank := true
	for i, h := range headers {
		var raw string
		if i < len(fields) {
			raw = fields[i]
		}
		v := typeValue(raw)
		if s, ok := v.(string); !ok || s != "" {
			blank = false
		}
		row[h] = v
	}
	return row, !blank
}

// surviveLines splits text on line boundaries, accepting both \n and \r\n,
// and drops lines that are blank after trimming. Returned lines are trimmed.
func surviveLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, ln := range raw {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		lines = append(lines, ln)
	}
	return lines
}

// detectFormat classifies the whole file from its first surviving line: the
// quoted-row format requires the trimmed line to start and end with a double
// quote with no further quote characters between them. Files that mix formats
// line-to-line are outside the contract; there is no per-line re-detection.
func detectFormat(first string) Format {
	if len(first) >= 2 && first[0] == '"' && first[len(first)-1] == '"' &&
		!strings.Contains(first[1:len(first)-1], `"`) {
		return FormatQuotedRow
	}
	return FormatStandard
}

// splitPlain is the naive comma split shared by both paths: split, then trim
// each piece.
func splitPlain(line string) []string {
	fields := strings.Split(line, ",")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

// stripOuterQuotes removes exactly one double quote from each end when both
// are present, leaving anything else untouched.
func stripOuterQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// typeValue applies the single numeric-inference rule: an empty field stays
// "", anything that parses as a finite float64 becomes a number, and the
// original string is kept otherwise. NaN and infinities do not count as
// numbers, so fields like "NaN" survive as text.
func typeValue(s string) any {
	if s == "" {
		return ""
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	return f
}
