package megaverse

import (
	"net/http"
	"strings"
	"time"

	"github.com/vk/gridmirror/internal/config"
)

// Client performs logical operations against the remote megaverse API. It
// holds only immutable configuration and a pooled transport, so one instance
// is safe for any number of concurrent in-flight operations.
type Client struct {
	baseURL     string
	candidateID string
	retry       config.RetryPolicy
	httpc       *http.Client
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithHTTPClient substitutes the underlying transport, primarily for tests.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// NewClient builds a client from the run configuration.
func NewClient(cfg *config.Model, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		candidateID: cfg.CandidateID,
		retry:       cfg.Retry,
		httpc: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
