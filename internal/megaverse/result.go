package megaverse

import "fmt"

// Result is the uniform outcome of one logical remote operation. Data holds
// the decoded JSON response body on success (nil for empty bodies); Message
// names the operation and the underlying cause on failure.
type Result struct {
	Success bool
	Message string
	Data    any
}

// succeeded builds the success result for an operation.
func succeeded(op string, data any) Result {
	return Result{
		Success: true,
		Message: fmt.Sprintf("%s succeeded", op),
		Data:    data,
	}
}

// failed builds the failure result for an operation after the given number
// of attempts.
func failed(op string, attempts int, cause string) Result {
	return Result{
		Success: false,
		Message: fmt.Sprintf("%s failed after %d attempt(s): %s", op, attempts, cause),
	}
}

// SolvedFromData reports the server's validation verdict from a validate
// result payload. Missing or mistyped fields read as unsolved.
func SolvedFromData(data any) bool {
	obj, ok := data.(map[string]any)
	if !ok {
		return false
	}
	solved, ok := obj["solved"].(bool)
	return ok && solved
}
