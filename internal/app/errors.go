// Package app hosts the application services composed on top of the stores.
package app

// ValidationError reports request input that was rejected before any storage
// access. The HTTP layer maps it to a 400 response.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
