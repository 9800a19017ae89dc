package hcl

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/gridmirror/internal/config"
	"github.com/vk/gridmirror/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load parses the run file at path and translates it into the validated,
// format-agnostic config model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading run configuration.", "path", path)

	file, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
	}

	var root rootSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", path, diags)
	}

	model, err := translate(root.Megaverse)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	model.ApplyEnvOverrides()
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	logger.Debug("Run configuration loaded.",
		"base_url", model.BaseURL,
		"strategy", model.Submit.Strategy,
		"max_retries", model.Retry.MaxRetries,
	)
	return model, nil
}

// translate folds the decoded schema onto the default model. A nil schema
// (file without a megaverse block) yields plain defaults, which fail
// validation later unless the environment supplies the candidate ID.
func translate(s *megaverseSchema) (*config.Model, error) {
	model := config.Default()
	if s == nil {
		return model, nil
	}

	if s.BaseURL != nil {
		model.BaseURL = *s.BaseURL
	}
	if s.CandidateID != nil {
		model.CandidateID = *s.CandidateID
	}
	if err := setDuration(&model.Timeout, s.Timeout, "timeout"); err != nil {
		return nil, err
	}

	if s.Retry != nil {
		if s.Retry.MaxRetries != nil {
			model.Retry.MaxRetries = *s.Retry.MaxRetries
		}
		if err := setDuration(&model.Retry.BaseDelay, s.Retry.BaseDelay, "retry.base_delay"); err != nil {
			return nil, err
		}
		if err := setDuration(&model.Retry.MaxDelay, s.Retry.MaxDelay, "retry.max_delay"); err != nil {
			return nil, err
		}
	}

	if s.Submit != nil {
		if s.Submit.Strategy != nil {
			model.Submit.Strategy = *s.Submit.Strategy
		}
		if s.Submit.Concurrency != nil {
			model.Submit.Concurrency = *s.Submit.Concurrency
		}
		if s.Submit.BatchSize != nil {
			model.Submit.BatchSize = *s.Submit.BatchSize
		}
		if err := setDuration(&model.Submit.BatchPause, s.Submit.BatchPause, "submit.batch_pause"); err != nil {
			return nil, err
		}
	}

	return model, nil
}

// setDuration parses an optional duration attribute into dst.
func setDuration(dst *time.Duration, raw *string, name string) error {
	if raw == nil {
		return nil
	}
	d, err := time.ParseDuration(*raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = d
	return nil
}
