package config

import (
	"fmt"
	"os"
	"time"
)

// EnvCandidateID is the environment variable that overrides the identity
// token from the configuration file.
const EnvCandidateID = "MEGAVERSE_CANDIDATE_ID"

// Submission strategies. Both realize the same backpressure contract; the
// semaphore form keeps the pipeline saturated without idle gaps and is the
// default.
const (
	StrategySemaphore = "semaphore"
	StrategyBatch     = "batch"
)

// Model is the unified, format-agnostic representation of one run's
// configuration. It is built once by a Loader and never mutated afterwards.
type Model struct {
	// BaseURL is the root of the remote megaverse API, without a trailing slash.
	BaseURL string

	// CandidateID is the identity token accompanying every remote call.
	CandidateID string

	// Timeout is the transport timeout for each individual remote call,
	// independent of the retry policy wrapped around it.
	Timeout time.Duration

	Retry  RetryPolicy
	Submit SubmitPolicy
}

// RetryPolicy describes how the client retries transient remote failures.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// BaseDelay is the backoff before the first retry; each further retry
	// doubles it, capped at MaxDelay.
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// Backoff returns the delay to wait after the given failed attempt
// (1-based): min(BaseDelay * 2^(attempt-1), MaxDelay).
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	delay := p.BaseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= p.MaxDelay || delay <= 0 {
			return p.MaxDelay
		}
	}
	if delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}

// SubmitPolicy describes how the driver bounds its create-call fan-out.
type SubmitPolicy struct {
	Strategy string

	// Concurrency is the semaphore width K for the semaphore strategy.
	Concurrency int

	// BatchSize and BatchPause configure the batch strategy: chunks of
	// BatchSize submissions separated by a fixed pause.
	BatchSize  int
	BatchPause time.Duration
}

// Default returns a model populated with the stock policy values. The
// candidate ID has no default; it must come from the file or the environment.
func Default() *Model {
	return &Model{
		BaseURL: "https://challenge.crossmint.io/api",
		Timeout: 10 * time.Second,
		Retry: RetryPolicy{
			MaxRetries: 3,
			BaseDelay:  time.Second,
			MaxDelay:   8 * time.Second,
		},
		Submit: SubmitPolicy{
			Strategy:    StrategySemaphore,
			Concurrency: 2,
			BatchSize:   5,
			BatchPause:  2 * time.Second,
		},
	}
}

// ApplyEnvOverrides folds environment values into the model. The candidate
// ID from the environment wins over the one in the file.
func (m *Model) ApplyEnvOverrides() {
	if v := os.Getenv(EnvCandidateID); v != "" {
		m.CandidateID = v
	}
}

// Validate reports the first problem that would make the model unusable.
func (m *Model) Validate() error {
	if m.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if m.CandidateID == "" {
		return fmt.Errorf("candidate_id must be set in the config file or via %s", EnvCandidateID)
	}
	if m.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", m.Timeout)
	}
	if m.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must not be negative, got %d", m.Retry.MaxRetries)
	}
	if m.Retry.BaseDelay <= 0 {
		return fmt.Errorf("retry.base_delay must be positive, got %s", m.Retry.BaseDelay)
	}
	if m.Retry.MaxDelay < m.Retry.BaseDelay {
		return fmt.Errorf("retry.max_delay (%s) must not be below retry.base_delay (%s)", m.Retry.MaxDelay, m.Retry.BaseDelay)
	}
	switch m.Submit.Strategy {
	case StrategySemaphore, StrategyBatch:
	default:
		return fmt.Errorf("submit.strategy must be %q or %q, got %q", StrategySemaphore, StrategyBatch, m.Submit.Strategy)
	}
	if m.Submit.Concurrency < 1 {
		return fmt.Errorf("submit.concurrency must be at least 1, got %d", m.Submit.Concurrency)
	}
	if m.Submit.BatchSize < 1 {
		return fmt.Errorf("submit.batch_size must be at least 1, got %d", m.Submit.BatchSize)
	}
	if m.Submit.BatchPause < 0 {
		return fmt.Errorf("submit.batch_pause must not be negative, got %s", m.Submit.BatchPause)
	}
	return nil
}
