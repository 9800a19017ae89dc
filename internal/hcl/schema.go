package hcl

// rootSchema is the top-level structure of a run file.
type rootSchema struct {
	Megaverse *megaverseSchema `hcl:"megaverse,block"`
}

// megaverseSchema mirrors the `megaverse` block. Every attribute is optional
// in the file; defaults are applied during translation. Durations are Go
// duration strings ("10s", "1500ms").
type megaverseSchema struct {
	BaseURL     *string       `hcl:"base_url,optional"`
	CandidateID *string       `hcl:"candidate_id,optional"`
	Timeout     *string       `hcl:"timeout,optional"`
	Retry       *retrySchema  `hcl:"retry,block"`
	Submit      *submitSchema `hcl:"submit,block"`
}

// retrySchema mirrors the `retry` block.
type retrySchema struct {
	MaxRetries *int    `hcl:"max_retries,optional"`
	BaseDelay  *string `hcl:"base_delay,optional"`
	MaxDelay   *string `hcl:"max_delay,optional"`
}

// submitSchema mirrors the `submit` block.
type submitSchema struct {
	Strategy    *string `hcl:"strategy,optional"`
	Concurrency *int    `hcl:"concurrency,optional"`
	BatchSize   *int    `hcl:"batch_size,optional"`
	BatchPause  *string `hcl:"batch_pause,optional"`
}
