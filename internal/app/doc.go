// Package app wires the application together: it owns the logger, loads the
// run configuration through a config.Loader, constructs the megaverse client
// and the reconcile driver, and dispatches the selected run mode.
package app
