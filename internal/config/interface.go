package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the run configuration from the given path, applies defaults
	// and environment overrides, validates it, and returns the immutable model.
	Load(ctx context.Context, path string) (*Model, error)
}
