package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryPolicy_Backoff(t *testing.T) {
	t.Parallel()

	policy := RetryPolicy{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		MaxDelay:   8 * time.Second,
	}

	assert.Equal(t, 1*time.Second, policy.Backoff(1))
	assert.Equal(t, 2*time.Second, policy.Backoff(2))
	assert.Equal(t, 4*time.Second, policy.Backoff(3))
	assert.Equal(t, 8*time.Second, policy.Backoff(4))
	// Capped from here on.
	assert.Equal(t, 8*time.Second, policy.Backoff(5))
	assert.Equal(t, 8*time.Second, policy.Backoff(20))
}

func TestRetryPolicy_Backoff_StrictlyIncreasingUntilCap(t *testing.T) {
	t.Parallel()

	policy := Default().Retry
	prev := time.Duration(0)
	for attempt := 1; attempt <= policy.MaxRetries+1; attempt++ {
		delay := policy.Backoff(attempt)
		assert.Greater(t, delay, prev, "delay for attempt %d did not increase", attempt)
		assert.LessOrEqual(t, delay, policy.MaxDelay)
		prev = delay
	}
}

func TestModel_ApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvCandidateID, "from-env")

	m := Default()
	m.CandidateID = "from-file"
	m.ApplyEnvOverrides()

	assert.Equal(t, "from-env", m.CandidateID)
}

func TestModel_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *Model {
		m := Default()
		m.CandidateID = "abc-123"
		return m
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name    string
		mutate  func(*Model)
		wantErr string
	}{
		{"empty base url", func(m *Model) { m.BaseURL = "" }, "base_url"},
		{"missing candidate id", func(m *Model) { m.CandidateID = "" }, "candidate_id"},
		{"zero timeout", func(m *Model) { m.Timeout = 0 }, "timeout"},
		{"negative retries", func(m *Model) { m.Retry.MaxRetries = -1 }, "max_retries"},
		{"zero base delay", func(m *Model) { m.Retry.BaseDelay = 0 }, "base_delay"},
		{"cap below base", func(m *Model) { m.Retry.MaxDelay = m.Retry.BaseDelay / 2 }, "max_delay"},
		{"unknown strategy", func(m *Model) { m.Submit.Strategy = "firehose" }, "strategy"},
		{"zero concurrency", func(m *Model) { m.Submit.Concurrency = 0 }, "concurrency"},
		{"zero batch size", func(m *Model) { m.Submit.BatchSize = 0 }, "batch_size"},
		{"negative pause", func(m *Model) { m.Submit.BatchPause = -time.Second }, "batch_pause"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := valid()
			tt.mutate(m)
			err := m.Validate()
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
