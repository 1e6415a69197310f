// Package engines talks to the external processor service that loads a
// dataset into both engines and reports raw metrics. The benchmark harness
// itself lives behind that service; this side only submits work and decodes
// whatever comes back, leniently.
package engines

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dbm-eval/benchboard/pkg/metrics"
)

const defaultTimeout = 10 * time.Minute

// Client is an HTTP client for the processor service.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a processor client. Zero timeout means the default; the
// processor runs a full two-engine load, so the default is generous.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// processRequest is the body posted to the processor.
type processRequest struct {
	DatasetPath string `json:"dataset_path"`
	Filename    string `json:"filename"`
}

// Process submits a stored dataset to the processor and returns both engine
// reports. A transport or non-2xx failure is an error; a per-engine failure
// is not — it comes back inside the report as an error block.
func (c *Client) Process(ctx context.Context, datasetPath, filename string) (*metrics.EnginePair, error) {
	body, err := json.Marshal(processRequest{DatasetPath: datasetPath, Filename: filename})
	if err != nil {
		return nil, fmt.Errorf("encoding process request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/process", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building process request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("processor request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("processor returned %d: %s", resp.StatusCode, string(snippet))
	}

	var pair metrics.EnginePair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return nil, fmt.Errorf("decoding processor response: %w", err)
	}
	return &pair, nil
}
