package ui

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"fraudlens/app"
	"fraudlens/domain/core"
	"fraudlens/domain/scoring"
	"fraudlens/domain/transaction"
)

// allowedUploadExts is the extension allow-list for batch files.
var allowedUploadExts = map[string]bool{
	".csv":  true,
	".txt":  true,
	".xlsx": true,
}

// batchRow pairs one submitted record with its verdict for rendering.
type batchRow struct {
	Index      int
	Record     transaction.Record
	Prediction scoring.Prediction
}

// handleBatchUpload accepts one CSV/XLSX file, runs the full batch pipeline
// and renders the scored results.
func (a *App) handleBatchUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.uploadMaxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Printf("[UI] Batch upload without usable file: %v", err)
		a.respondError(w, r, core.NewValidationError("file", "no file uploaded or file too large"))
		return
	}
	defer file.Close()

	if header.Size > a.uploadMaxBytes {
		a.respondError(w, r, core.NewValidationError("file",
			fmt.Sprintf("file size (%.1f MB) exceeds the %d MB limit",
				float64(header.Size)/(1024*1024), a.uploadMaxBytes/(1024*1024))))
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedUploadExts[ext] {
		a.respondError(w, r, core.NewValidationError("file",
			"only .csv, .txt and .xlsx files are accepted"))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("[UI] Failed to read upload %s: %v", header.Filename, err)
		a.respondError(w, r, core.NewValidationError("file", "could not read uploaded file"))
		return
	}

	analysis, err := a.analyzer.AnalyzeUpload(r.Context(), app.UploadRequest{
		FileName: header.Filename,
		Data:     data,
	})
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	if isHTMX(r) {
		rows := make([]batchRow, len(analysis.Records))
		for i, rec := range analysis.Records {
			rows[i] = batchRow{Index: i + 1, Record: rec, Prediction: analysis.Result.Results[i]}
		}
		a.renderPartial(w, "batch_results", map[string]interface{}{
			"FileName":    analysis.FileName,
			"Fingerprint": analysis.Fingerprint.Short(),
			"Format":      analysis.Format,
			"Summary":     analysis.Result.Summary,
			"Rows":        rows,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"file_name":   analysis.FileName,
		"fingerprint": analysis.Fingerprint.Short(),
		"format":      analysis.Format,
		"summary":     analysis.Result.Summary,
		"results":     analysis.Result.Results,
	})
}
