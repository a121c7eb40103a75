// httpclient.go — shared HTTP plumbing for the provider clients.
//
// The pipeline only carries the configured timeout and retry budget
// through to this layer; backoff stays deliberately simple because
// generation calls are long and interactive.
package ai

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"
)

// postJSON sends a JSON payload, retrying wire-level failures and 5xx
// responses up to maxRetries additional attempts. The final status
// code and body are returned for the caller to interpret; 4xx bodies
// come back unretried so credential and model errors surface at once.
func postJSON(ctx context.Context, hc *http.Client, maxRetries int,
	url string, header http.Header, payload []byte) (int, []byte, error) {

	var lastErr error
	attempts := maxRetries + 1
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			case <-ctx.Done():
				return 0, nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return 0, nil, err
		}
		req.Header = header.Clone()

		resp, err := hc.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 && attempt < attempts-1 {
			lastErr = nil
			continue
		}
		return resp.StatusCode, body, nil
	}
	return 0, nil, lastErr
}

// newHTTPClient builds the per-provider client from the configured
// request timeout.
func newHTTPClient(timeoutMS int) *http.Client {
	if timeoutMS <= 0 {
		timeoutMS = 30000
	}
	return &http.Client{Timeout: time.Duration(timeoutMS) * time.Millisecond}
}
