// Package processor holds the HTTP client for the external ingestion
// processor. Submission happens after the local transaction has committed;
// a processor failure is logged and counted but never rolls back local
// state.
package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

type submitPayload struct {
	DocumentID int64 `json:"documentId"`
}

// Submit posts the document id to the processor's ingest endpoint. Any
// non-2xx response is an error.
func (c *Client) Submit(ctx context.Context, documentID int64) error {
	body, err := json.Marshal(submitPayload{DocumentID: documentID})
	if err != nil {
		return fmt.Errorf("marshal submit payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ingest", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("submit document %d: %w", documentID, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("submit document %d: processor returned %d", documentID, resp.StatusCode)
	}
	return nil
}
