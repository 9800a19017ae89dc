package megaverse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vk/gridmirror/internal/ctxlog"
)

// do runs one logical operation through the retry loop. Transient failures
// (no response, 5xx, 429) consume the retry budget with exponential backoff;
// anything else settles the operation immediately. The returned Result is
// the only way an outcome leaves this method.
func (c *Client) do(ctx context.Context, op, method, path string, body any) Result {
	logger := ctxlog.FromContext(ctx).With("operation", op)
	attempts := c.retry.MaxRetries + 1

	var cause string
	for attempt := 1; ; attempt++ {
		data, retryable, attemptCause := c.attempt(ctx, method, path, body)
		if attemptCause == "" {
			if attempt > 1 {
				logger.Info("Remote call recovered after retrying.", "attempt", attempt)
			}
			return succeeded(op, data)
		}
		cause = attemptCause

		if !retryable {
			logger.Warn("Remote call failed permanently.", "cause", cause)
			return failed(op, attempt, cause)
		}
		if attempt == attempts {
			break
		}

		delay := c.retry.Backoff(attempt)
		logger.Warn("Remote call failed, backing off before retry.",
			"attempt", attempt,
			"attempts_left", attempts-attempt,
			"delay", delay,
			"cause", cause,
		)
		if err := sleep(ctx, delay); err != nil {
			return failed(op, attempt, fmt.Sprintf("backoff interrupted: %v", err))
		}
	}

	logger.Error("Remote call exhausted its retry budget.", "attempts", attempts, "cause", cause)
	return failed(op, attempts, cause)
}

// attempt performs a single HTTP exchange. An empty cause means success;
// otherwise retryable classifies the failure for the retry loop.
func (c *Client) attempt(ctx context.Context, method, path string, body any) (data any, retryable bool, cause string) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, false, fmt.Sprintf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, false, fmt.Sprintf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		// Connection failure or transport timeout: no response at all.
		return nil, true, fmt.Sprintf("no response: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Sprintf("read response body: %v", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if len(raw) == 0 {
			return nil, false, ""
		}
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, false, fmt.Sprintf("decode response body: %v", err)
		}
		return data, false, ""
	}

	retryable = resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
	return nil, retryable, fmt.Sprintf("status %d: %s", resp.StatusCode, serverMessage(raw))
}

// serverMessage extracts a human-readable cause from a failure body: the
// JSON "error" or "message" field when present, the truncated raw body
// otherwise.
func serverMessage(raw []byte) string {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil {
		if msg, ok := obj["error"].(string); ok && msg != "" {
			return msg
		}
		if msg, ok := obj["message"].(string); ok && msg != "" {
			return msg
		}
	}

	const maxLen = 200
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return "empty response body"
	}
	if len(s) > maxLen {
		s = s[:maxLen] + "..."
	}
	return s
}

// sleep waits for the backoff delay, honoring context cancellation.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
