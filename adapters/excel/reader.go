package excel

import (
	"fmt"
	"io"
	"log"

	"fraudlens/domain/core"
	"fraudlens/domain/tabular"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook extracts the first worksheet of an .xlsx upload into the
// shared tabular form. The header is the first row with any non-blank cell;
// everything below it flows through the same typing and filtering rules as
// CSV text, so both upload formats behave identically downstream.
func ReadWorkbook(r io.Reader) (*tabular.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		// A broken upload is the user's input problem, not a server fault.
		return nil, fmt.Errorf("%w: file is not a readable xlsx workbook: %v", core.ErrValidation, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("[Excel] Failed to close workbook: %v", cerr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, tabular.ErrEmptyInput
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	headerIdx := -1
	for i, row := range rows {
		if !rowBlank(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, tabular.ErrEmptyInput
	}

	table, err := tabular.FromRecords(rows[headerIdx], rows[headerIdx+1:])
	if err != nil {
		return nil, err
	}

	log.Printf("[Excel] Parsed sheet %s: %d columns, %d rows", sheets[0], len(table.Headers), len(table.Rows))
	return table, nil
}

func rowBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
