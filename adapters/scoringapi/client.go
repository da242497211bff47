package scoringapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"fraudlens/domain/scoring"
	"fraudlens/domain/transaction"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTimeout     = 15 * time.Second
	defaultMaxParallel = 4
)

// Config holds the connection settings for the remote scoring service.
type Config struct {
	BaseURL string
	APIKey  string // optional bearer token
	Timeout time.Duration
	// MaxParallel bounds concurrent single-predict calls when the batch
	// endpoint is unavailable and records are scored one at a time.
	MaxParallel int64
}

// Client talks to the fraud-scoring service over HTTP. Calls are never
// retried automatically; failures surface once with the service's own error
// message when the response body carries one.
type Client struct {
	baseURL     string
	apiKey      string
	timeout     time.Duration
	maxParallel int64
	httpClient  *http.Client
	health      singleflight.Group
}

// NewClient creates a scoring client from cfg, applying defaults for unset
// timeout and parallelism.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxParallel := cfg.MaxParallel
	if maxParallel <= 0 {
		maxParallel = defaultMaxParallel
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		timeout:     timeout,
		maxParallel: maxParallel,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string { return c.baseURL }

// Score evaluates one transaction via POST /predict.
func (c *Client) Score(ctx context.Context, rec transaction.Record) (scoring.Prediction, error) {
	var pred scoring.Prediction
	status, err := c.postJSON(ctx, "/predict", rec, &pred)
	if err != nil {
		return scoring.Prediction{}, err
	}
	if status != http.StatusOK {
		return scoring.Prediction{}, fmt.Errorf("unexpected status %d from /predict", status)
	}
	pred.RiskLevel = scoring.NormalizeRiskLevel(string(pred.RiskLevel))
	return pred, nil
}

// batchRequest wraps records the way the service expects them.
type batchRequest struct {
	Transactions []transaction.Record `json:"transactions"`
}

// batchResponse is the flat wire shape of POST /predict/batch.
type batchResponse struct {
	TotalTransactions int                  `json:"total_transactions"`
	FraudCount        int                  `json:"fraud_count"`
	LegitCount        int                  `json:"legit_count"`
	FraudPercentage   float64              `json:"fraud_percentage"`
	Results           []scoring.Prediction `json:"results"`
}

// ScoreBatch evaluates records via POST /predict/batch. Services that only
// expose the single-predict route (404/405 on the batch path) are handled by
// scoring records individually with bounded parallelism and synthesizing the
// same summary locally; input order is preserved either way.
func (c *Client) ScoreBatch(ctx context.Context, records []transaction.Record) (scoring.BatchResult, error) {
	var wire batchResponse
	status, err := c.postJSON(ctx, "/predict/batch", batchRequest{Transactions: records}, &wire)
	if err != nil {
		if se, ok := endpointMissing(err); ok {
			log.Printf("[ScoringAPI] Batch endpoint unavailable (status %d), scoring %d records individually", se.Status, len(records))
			return c.scoreEach(ctx, records)
		}
		return scoring.BatchResult{}, err
	}
	if status != http.StatusOK {
		return scoring.BatchResult{}, fmt.Errorf("unexpected status %d from /predict/batch", status)
	}

	// Results are positionally matched back to the submitted records, so a
	// short or padded array from the service must fail here rather than
	// misattribute verdicts downstream.
	if len(wire.Results) != len(records) {
		return scoring.BatchResult{}, fmt.Errorf("scoring service returned %d results for %d transactions", len(wire.Results), len(records))
	}

	for i := range wire.Results {
		wire.Results[i].RiskLevel = scoring.NormalizeRiskLevel(string(wire.Results[i].RiskLevel))
	}
	return scoring.BatchResult{
		Summary: scoring.BatchSummary{
			TotalTransactions: wire.TotalTransactions,
			FraudCount:        wire.FraudCount,
			LegitCount:        wire.LegitCount,
			FraudPercentage:   wire.FraudPercentage,
		},
		Results: wire.Results,
	}, nil
}

// scoreEach is the per-record fallback path.
func (c *Client) scoreEach(ctx context.Context, records []transaction.Record) (scoring.BatchResult, error) {
	sem := semaphore.NewWeighted(c.maxParallel)
	results := make([]scoring.Prediction, len(records))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i, rec := range records {
		if err := sem.Acquire(ctx, 1); err != nil {
			return scoring.BatchResult{}, fmt.Errorf("acquire scoring slot: %w", err)
		}
		wg.Add(1)
		go func(i int, rec transaction.Record) {
			defer wg.Done()
			defer sem.Release(1)

			pred, err := c.Score(ctx, rec)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("record %d: %w", i+1, err)
				}
				mu.Unlock()
				return
			}
			results[i] = pred
		}(i, rec)
	}
	wg.Wait()

	if firstErr != nil {
		return scoring.BatchResult{}, firstErr
	}
	return scoring.BatchResult{
		Summary: scoring.Summarize(results),
		Results: results,
	}, nil
}

// healthResponse is the wire shape of GET /health.
type healthResponse struct {
	Status       string  `json:"status"`
	ModelLoaded  bool    `json:"model_loaded"`
	ModelVersion string  `json:"model_version"`
	Threshold    float64 `json:"threshold"`
}

// Health probes GET /health. Concurrent callers share one in-flight probe,
// and every failure mode collapses to the offline value; health checks never
// produce errors.
func (c *Client) Health(_ context.Context) scoring.Health {
	v, _, _ := c.health.Do("health", func() (interface{}, error) {
		// The result is shared with every concurrent caller, so the probe
		// must not inherit any single caller's deadline or cancellation.
		return c.probeHealth(context.Background()), nil
	})
	return v.(scoring.Health)
}

func (c *Client) probeHealth(ctx context.Context) scoring.Health {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return scoring.Offline()
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return scoring.Offline()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return scoring.Offline()
	}

	var wire healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return scoring.Offline()
	}

	return scoring.Health{
		Online:       true,
		Status:       wire.Status,
		ModelLoaded:  wire.ModelLoaded,
		ModelVersion: wire.ModelVersion,
		Threshold:    wire.Threshold,
	}
}

// postJSON sends payload to path and decodes the 200 response into out.
// Non-2xx responses become a *serviceError carrying the extracted message.
func (c *Client) postJSON(ctx context.Context, path string, payload, out any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return 0, fmt.Errorf("request timeout after %v: %w", c.timeout, err)
		}
		return 0, fmt.Errorf("failed to reach scoring service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &serviceError{
			Status:  resp.StatusCode,
			Message: extractErrorMessage(raw, resp.StatusCode),
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to parse scoring response: %w", err)
	}
	return resp.StatusCode, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
