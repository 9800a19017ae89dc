package app

import (
	"errors"
	"fmt"
)

// Run modes.
const (
	ModeMirror   = "mirror"   // reproduce the goal map (default)
	ModeClear    = "clear"    // delete everything the goal map names
	ModeValidate = "validate" // single validation call, report the verdict
	ModeCross    = "cross"    // place the phase-1 polyanet cross
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // path to the HCL run file
	Mode       string

	LogFormat string
	LogLevel  string
}

// NewConfig validates and returns an application configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeMirror
	}
	switch cfg.Mode {
	case ModeMirror, ModeClear, ModeValidate, ModeCross:
	default:
		return nil, fmt.Errorf("unknown mode %q", cfg.Mode)
	}
	return &cfg, nil
}
