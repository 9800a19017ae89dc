// Package config defines the format-agnostic run configuration model for the
// application, along with the Loader interface for reading it from a source
// format. The `config.Model` is the single source of truth for the megaverse
// client and the reconcile driver; the concrete HCL implementation lives in a
// separate package.
package config
