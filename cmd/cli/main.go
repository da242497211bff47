package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fraudlens/adapters/heuristic"
	"fraudlens/adapters/memory"
	"fraudlens/adapters/scoringapi"
	"fraudlens/app"
	"fraudlens/domain/history"
	"fraudlens/domain/transaction"
	"fraudlens/ports"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fraudlens-cli",
		Short: "FraudLens CLI for scoring transaction exports from the terminal",
	}

	rootCmd.AddCommand(
		newScoreCmd(),
		newInspectCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newScoreCmd() *cobra.Command {
	var apiURL string
	var apiKey string
	var rowLimit int
	var timeoutSec int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "score [file]",
		Short: "Normalize, validate and score one CSV/XLSX export",
		Long: `Score every transaction in a CSV or XLSX export in one pass.

Without --api-url (or SCORING_API_URL in the environment) the built-in
heuristic rule engine scores locally, which is useful for smoke-testing an
export before the real service sees it.

Example: fraudlens-cli score transactions.csv --api-url http://localhost:8000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.Context(), args[0], scoreOptions{
				apiURL:   apiURL,
				apiKey:   apiKey,
				rowLimit: rowLimit,
				timeout:  time.Duration(timeoutSec) * time.Second,
				asJSON:   asJSON,
			})
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", os.Getenv("SCORING_API_URL"), "Scoring service base URL (empty scores locally)")
	cmd.Flags().StringVar(&apiKey, "api-key", os.Getenv("SCORING_API_KEY"), "Bearer token for the scoring service")
	cmd.Flags().IntVar(&rowLimit, "row-limit", app.DefaultRowLimit, "Maximum data rows accepted per file")
	cmd.Flags().IntVar(&timeoutSec, "timeout", 15, "Per-request timeout in seconds")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the full result as JSON")

	return cmd
}

func newInspectCmd() *cobra.Command {
	var rowLimit int

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Parse an export and report its format without scoring",
		Long: `Run only the parsing and validation half of the pipeline: detect the
CSV encoding, list the columns found, and check the required column set and
row cap. Nothing is sent anywhere.

Example: fraudlens-cli inspect transactions.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0], rowLimit)
		},
	}

	cmd.Flags().IntVar(&rowLimit, "row-limit", app.DefaultRowLimit, "Maximum data rows accepted per file")

	return cmd
}

type scoreOptions struct {
	apiURL   string
	apiKey   string
	rowLimit int
	timeout  time.Duration
	asJSON   bool
}

func runScore(ctx context.Context, path string, opts scoreOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var scorer ports.Scorer
	if opts.apiURL != "" {
		scorer = scoringapi.NewClient(scoringapi.Config{
			BaseURL: opts.apiURL,
			APIKey:  opts.apiKey,
			Timeout: opts.timeout,
		})
		fmt.Fprintf(os.Stderr, "Scoring via %s\n", opts.apiURL)
	} else {
		scorer = heuristic.NewScorer()
		fmt.Fprintln(os.Stderr, "No scoring service configured, scoring locally with the heuristic engine")
	}

	store := history.NewStore(memory.NewHistoryRepository(), history.DefaultMaxEntries)
	analyzer := app.NewAnalyzerService(scorer, store, opts.rowLimit)

	analysis, err := analyzer.AnalyzeUpload(ctx, app.UploadRequest{
		FileName: filepath.Base(path),
		Data:     data,
	})
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"file_name":   analysis.FileName,
			"fingerprint": analysis.Fingerprint.Short(),
			"format":      analysis.Format,
			"summary":     analysis.Result.Summary,
			"results":     analysis.Result.Results,
		})
	}

	sum := analysis.Result.Summary
	fmt.Printf("%s (%s format, fingerprint %s)\n", analysis.FileName, analysis.Format, analysis.Fingerprint.Short())
	fmt.Printf("%d transactions: %d flagged, %d legitimate (%.1f%% fraud)\n\n",
		sum.TotalTransactions, sum.FraudCount, sum.LegitCount, sum.FraudPercentage)

	fmt.Printf("%-5s %-10s %12s  %-12s %11s  %s\n", "#", "type", "amount", "verdict", "probability", "risk")
	for i, rec := range analysis.Records {
		pred := analysis.Result.Results[i]
		fmt.Printf("%-5d %-10s %12.2f  %-12s %10.1f%%  %s\n",
			i+1, rec.Type, rec.Amount, pred.Prediction, pred.FraudProbability*100, pred.RiskLevel)
	}
	return nil
}

func runInspect(path string, rowLimit int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	store := history.NewStore(memory.NewHistoryRepository(), history.DefaultMaxEntries)
	analyzer := app.NewAnalyzerService(heuristic.NewScorer(), store, rowLimit)

	table, err := analyzer.ParseUpload(filepath.Base(path), data)
	if err != nil {
		return err
	}

	fmt.Printf("Format:  %s\n", table.Format)
	fmt.Printf("Columns: %d\n", len(table.Headers))
	for _, h := range table.Headers {
		fmt.Printf("  - %s\n", h)
	}
	fmt.Printf("Rows:    %d (limit %d)\n", len(table.Rows), rowLimit)
	fmt.Printf("All %d required columns present.\n", len(transaction.RequiredColumns()))
	return nil
}
