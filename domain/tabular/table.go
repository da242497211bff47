package tabular

// Format identifies which of the two supported CSV encodings a file used.
type Format string

const (
	// FormatStandard is conventional comma-delimited text.
	FormatStandard Format = "standard"
	// FormatQuotedRow is the degenerate export where every line, header
	// included, is wrapped in one redundant pair of double quotes.
	FormatQuotedRow Format = "quoted_row"
)

// Row maps a column name to its typed value: float64 when the raw field
// parses as a finite number, string otherwise. Empty fields hold "".
type Row map[string]any

// Table is the normalized form of one uploaded file. Headers preserve source
// order and duplicates; every row carries the same key set as Headers.
type Table struct {
	Format  Format   `json:"format"`
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// HasColumn reports whether name appears in the header list.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Number returns the float64 value of column col, or false when the field is
// absent, empty, or non-numeric.
func (r Row) Number(col string) (float64, bool) {
	v, ok := r[col]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// Text returns the string form of column col. Numeric fields are not
// formatted back; callers wanting display text should go through the UI layer.
func (r Row) Text(col string) string {
	v, ok := r[col]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
