// Package hcl implements config.Loader for HCL run files. It parses the
// file, decodes it into an HCL-shaped schema, and translates that schema
// into the format-agnostic config model, applying defaults for everything
// the file leaves out.
package hcl
