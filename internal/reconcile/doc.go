// Package reconcile drives a run against the remote service: it fetches the
// goal map, flattens it into entity intents, pushes every intent through an
// admission-controlled submission pipeline with best-effort semantics, and
// finally asks the server to validate the result. Submission initiation
// follows row-major scan order; completion order is whatever the network
// yields.
package reconcile
