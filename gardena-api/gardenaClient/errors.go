package gardenaClient

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaStructs"
)

var (
	// ErrNotAuthenticated is returned by every call made without a valid
	// session. Call Login first.
	ErrNotAuthenticated = errors.New("gardena: not logged in")

	// ErrAuthenticationFailed is returned by Login when the API hands out
	// no usable token.
	ErrAuthenticationFailed = errors.New("gardena: authentication failed")

	ErrMalformedResponse = errors.New("gardena: malformed response")
)

// APIError is an error response of the Gardena API. PayloadErr is set when
// the response carried an error payload that could not be converted into
// Error entities; Body still holds it verbatim.
type APIError struct {
	StatusCode int
	Errors     []gardenaStructs.Error
	Body       string
	PayloadErr error
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		if e.PayloadErr != nil {
			return fmt.Sprintf("gardena: API error %d: %s (%v)", e.StatusCode, e.Body, e.PayloadErr)
		}
		return fmt.Sprintf("gardena: API error %d: %s", e.StatusCode, e.Body)
	}
	messages := make([]string, 0, len(e.Errors))
	for _, apiErr := range e.Errors {
		msg := apiErr.Title
		if apiErr.Detail != "" {
			msg += ": " + apiErr.Detail
		}
		messages = append(messages, msg)
	}
	return fmt.Sprintf("gardena: API error %d: %s", e.StatusCode, strings.Join(messages, "; "))
}

func IsNotAuthenticated(err error) bool {
	return errors.Is(err, ErrNotAuthenticated)
}

func IsAuthenticationFailed(err error) bool {
	return errors.Is(err, ErrAuthenticationFailed)
}

func IsMalformedResponse(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}

// IsUnauthorized reports whether the API rejected the session token.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == 401
}

func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
