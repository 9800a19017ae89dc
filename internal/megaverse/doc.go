// Package megaverse wraps the remote entity-management API behind a uniform
// Result contract. Every operation returns a Result instead of an error:
// transient failures (no response, 5xx, 429) are retried internally with
// exponential backoff, permanent client errors surface immediately, and no
// failure mode ever escapes the package as a Go error. Callers branch on
// Result.Success.
package megaverse
