package gardenaClient

import (
	"errors"
	"fmt"
	"testing"

	"github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaStructs"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "raw body",
			err:  &APIError{StatusCode: 502, Body: "bad gateway"},
			want: "gardena: API error 502: bad gateway",
		},
		{
			name: "error payload",
			err: &APIError{StatusCode: 400, Errors: []gardenaStructs.Error{
				{Title: "Bad Request", Detail: "unknown ability"},
				{Title: "Invalid"},
			}},
			want: "gardena: API error 400: Bad Request: unknown ability; Invalid",
		},
		{
			name: "unconvertible payload",
			err:  &APIError{StatusCode: 400, Body: `{"errors":"boom"}`, PayloadErr: errors.New("bad payload")},
			want: "gardena: API error 400: {\"errors\":\"boom\"} (bad payload)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorHelpers(t *testing.T) {
	wrapped := fmt.Errorf("collect: %w", &APIError{StatusCode: 401})
	if !IsUnauthorized(wrapped) {
		t.Error("expected IsUnauthorized for wrapped 401")
	}
	if IsUnauthorized(&APIError{StatusCode: 500}) {
		t.Error("500 reported as unauthorized")
	}
	if _, ok := AsAPIError(errors.New("other")); ok {
		t.Error("plain error reported as APIError")
	}
	if !IsNotAuthenticated(fmt.Errorf("x: %w", ErrNotAuthenticated)) {
		t.Error("expected IsNotAuthenticated")
	}
	if !IsMalformedResponse(fmt.Errorf("%w: y", ErrMalformedResponse)) {
		t.Error("expected IsMalformedResponse")
	}
	if IsAuthenticationFailed(ErrNotAuthenticated) {
		t.Error("sentinels must be distinct")
	}
}
