package transaction

import (
	"fmt"
	"strconv"

	"fraudlens/domain/core"
	"fraudlens/domain/tabular"
)

// Record is one transaction in the shape the scoring service expects. The
// JSON field names mirror the PaySim column names exactly, inconsistent
// casing included, because the model was trained against them.
type Record struct {
	Step           int      `json:"step"`
	Type           Category `json:"type"`
	Amount         float64  `json:"amount"`
	OldBalanceOrg  float64  `json:"oldbalanceOrg"`
	NewBalanceOrig float64  `json:"newbalanceOrig"`
	OldBalanceDest float64  `json:"oldbalanceDest"`
	NewBalanceDest float64  `json:"newbalanceDest"`
}

// RequiredColumns is the fixed column set every scored upload must provide.
func RequiredColumns() []string {
	return []string{
		"step",
		"type",
		"amount",
		"oldbalanceOrg",
		"newbalanceOrig",
		"oldbalanceDest",
		"newbalanceDest",
	}
}

// FromRow builds a Record from one normalized row. Numeric columns must have
// parsed as numbers; the type column is forwarded as-is so the scoring
// service stays the authority on unknown categories.
func FromRow(row tabular.Row) (Record, error) {
	step, err := numericField(row, "step")
	if err != nil {
		return Record{}, err
	}
	amount, err := numericField(row, "amount")
	if err != nil {
		return Record{}, err
	}
	oldOrg, err := numericField(row, "oldbalanceOrg")
	if err != nil {
		return Record{}, err
	}
	newOrig, err := numericField(row, "newbalanceOrig")
	if err != nil {
		return Record{}, err
	}
	oldDest, err := numericField(row, "oldbalanceDest")
	if err != nil {
		return Record{}, err
	}
	newDest, err := numericField(row, "newbalanceDest")
	if err != nil {
		return Record{}, err
	}

	return Record{
		Step:           int(step),
		Type:           Category(textField(row, "type")),
		Amount:         amount,
		OldBalanceOrg:  oldOrg,
		NewBalanceOrig: newOrig,
		OldBalanceDest: oldDest,
		NewBalanceDest: newDest,
	}, nil
}

// FromTable converts every normalized row, labeling failures with their
// 1-based data row number.
func FromTable(t *tabular.Table) ([]Record, error) {
	records := make([]Record, 0, len(t.Rows))
	for i, row := range t.Rows {
		rec, err := FromRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Validate applies the stricter checks used for hand-entered transactions:
// known category and non-negative monetary fields.
func (r Record) Validate() error {
	if !r.Type.IsValid() {
		return core.NewValidationError("type", fmt.Sprintf("unknown transaction type %q", r.Type))
	}
	if r.Step < 0 {
		return core.NewValidationError("step", "cannot be negative")
	}
	if r.Amount < 0 {
		return core.NewValidationError("amount", "cannot be negative")
	}
	for name, v := range map[string]float64{
		"oldbalanceOrg":  r.OldBalanceOrg,
		"newbalanceOrig": r.NewBalanceOrig,
		"oldbalanceDest": r.OldBalanceDest,
		"newbalanceDest": r.NewBalanceDest,
	} {
		if v < 0 {
			return core.NewValidationError(name, "cannot be negative")
		}
	}
	return nil
}

func numericField(row tabular.Row, col string) (float64, error) {
	v, ok := row.Number(col)
	if !ok {
		return 0, core.NewValidationError(col, fmt.Sprintf("value %q is not numeric", row.Text(col)))
	}
	return v, nil
}

// textField renders a field for string-typed columns. A category that
// normalized to a number still travels as its text form.
func textField(row tabular.Row, col string) string {
	switch v := row[col].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
