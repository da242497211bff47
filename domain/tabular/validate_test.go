package tabular

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireColumnsAllPresent(t *testing.T) {
	table := &Table{Headers: []string{"a", "b", "c"}}
	assert.NoError(t, RequireColumns(table, []string{"a", "c"}))
	assert.NoError(t, RequireColumns(table, nil))
}

func TestRequireColumnsMissing(t *testing.T) {
	table := &Table{Headers: []string{"a", "b"}}

	err := RequireColumns(table, []string{"a", "b", "c"})
	require.Error(t, err)

	mce, ok := err.(*MissingColumnsError)
	require.True(t, ok, "expected *MissingColumnsError, got %T", err)
	assert.Equal(t, []string{"c"}, mce.Missing)
	assert.Equal(t, []string{"a", "b"}, mce.Found)

	// The user-facing message has to name both sides of the mismatch.
	assert.Contains(t, err.Error(), "c")
	assert.Contains(t, err.Error(), "a, b")
	assert.True(t, IsMissingColumns(err))
}

func TestCheckRowLimit(t *testing.T) {
	rows := make([]Row, 501)
	for i := range rows {
		rows[i] = Row{"a": float64(i)}
	}
	table := &Table{Headers: []string{"a"}, Rows: rows}

	err := CheckRowLimit(table, 500)
	require.Error(t, err)

	rle, ok := err.(*RowLimitError)
	require.True(t, ok, "expected *RowLimitError, got %T", err)
	assert.Equal(t, 500, rle.Limit)
	assert.Equal(t, 501, rle.Count)
	assert.Contains(t, err.Error(), "500")
	assert.True(t, IsRowLimit(err))

	assert.NoError(t, CheckRowLimit(table, 501))
	assert.NoError(t, CheckRowLimit(table, 0), "zero max disables the check")
}

func TestCheckRowLimitCountsPostFilterRows(t *testing.T) {
	// 500 real rows plus blank lines: blank lines are filtered before the
	// limit applies, so this file is within a 500-row cap.
	var b strings.Builder
	b.WriteString("a\n")
	for i := 0; i < 500; i++ {
		b.WriteString(fmt.Sprintf("%d\n\n", i))
	}

	table, err := Normalize(b.String())
	require.NoError(t, err)
	require.Len(t, table.Rows, 500)
	assert.NoError(t, CheckRowLimit(table, 500))
}

func TestEnsureDataRows(t *testing.T) {
	empty := &Table{Headers: []string{"a"}}
	assert.ErrorIs(t, EnsureDataRows(empty), ErrNoDataRows)
	assert.True(t, IsNoDataRows(EnsureDataRows(empty)))

	full := &Table{Headers: []string{"a"}, Rows: []Row{{"a": 1.0}}}
	assert.NoError(t, EnsureDataRows(full))
}
