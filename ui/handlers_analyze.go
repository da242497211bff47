package ui

import (
	"net/http"
	"strconv"
	"strings"

	"fraudlens/domain/core"
	"fraudlens/domain/transaction"
)

// handleAnalyze scores one hand-entered transaction. HTMX callers get a
// result card; API callers get the prediction as JSON.
func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.respondError(w, r, core.NewValidationError("form", "could not parse submitted form"))
		return
	}

	rec, err := recordFromForm(r)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	pred, err := a.analyzer.AnalyzeRecord(r.Context(), rec)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	if isHTMX(r) {
		a.renderPartial(w, "result_card", map[string]interface{}{
			"Record":     rec,
			"Prediction": pred,
		})
		return
	}
	writeJSON(w, http.StatusOK, pred)
}

// recordFromForm builds a transaction from the analyze form fields.
func recordFromForm(r *http.Request) (transaction.Record, error) {
	step, err := formInt(r, "step")
	if err != nil {
		return transaction.Record{}, err
	}

	category, err := transaction.ParseCategory(r.FormValue("type"))
	if err != nil {
		return transaction.Record{}, core.NewValidationError("type", err.Error())
	}

	amount, err := formFloat(r, "amount")
	if err != nil {
		return transaction.Record{}, err
	}
	oldOrg, err := formFloat(r, "oldbalanceOrg")
	if err != nil {
		return transaction.Record{}, err
	}
	newOrig, err := formFloat(r, "newbalanceOrig")
	if err != nil {
		return transaction.Record{}, err
	}
	oldDest, err := formFloat(r, "oldbalanceDest")
	if err != nil {
		return transaction.Record{}, err
	}
	newDest, err := formFloat(r, "newbalanceDest")
	if err != nil {
		return transaction.Record{}, err
	}

	return transaction.Record{
		Step:           step,
		Type:           category,
		Amount:         amount,
		OldBalanceOrg:  oldOrg,
		NewBalanceOrig: newOrig,
		OldBalanceDest: oldDest,
		NewBalanceDest: newDest,
	}, nil
}

func formInt(r *http.Request, field string) (int, error) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return 0, core.NewValidationError(field, "is required")
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, core.NewValidationError(field, "must be a whole number")
	}
	return v, nil
}

func formFloat(r *http.Request, field string) (float64, error) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		// Balance fields default to zero so the form stays quick to fill in.
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, core.NewValidationError(field, "must be a number")
	}
	return v, nil
}
