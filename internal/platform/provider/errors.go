package provider

import (
	"errors"
	"fmt"
)

// ErrNoRows reports that a row lookup matched nothing. Callers that can
// degrade gracefully must check for it with errors.Is; every other error
// from this package is a transport or provider failure and must propagate.
var ErrNoRows = errors.New("provider: no rows")

// APIError is a non-2xx response from the provider with its body preserved,
// so auth failures reach the user with the provider's own message.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("provider: %s (%s, status %d)", e.Message, e.Code, e.Status)
	}
	return fmt.Sprintf("provider: %s (status %d)", e.Message, e.Status)
}

// IsNotFound reports whether err is the "no rows" condition.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNoRows)
}

// AsAPIError unwraps an APIError when present.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
