package entity

import (
	"errors"
	"fmt"
)

// ErrValidation marks client-caused failures: malformed dates, bad variable
// sets, missing feature configuration. Wrapped with detail at the call site
// and mapped to 400 by the handlers.
var ErrValidation = errors.New("validation error")

// ProviderError is a rejection from the messaging provider, carrying its
// HTTP-like status and error code. Distinct from unexpected local failures
// so handlers can surface it as an upstream error.
type ProviderError struct {
	Status  int
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("messaging provider rejected request: status=%d code=%s: %s", e.Status, e.Code, e.Message)
}
