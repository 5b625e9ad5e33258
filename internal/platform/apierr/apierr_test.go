package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestError_MessagePrecedence(t *testing.T) {
	cases := []struct {
		name string
		err  *Error
		want string
	}{
		{"wrapped error wins", New(http.StatusBadRequest, "bad_request", errors.New("topic required")), "topic required"},
		{"code when no error", New(http.StatusBadRequest, "bad_request", nil), "bad_request"},
		{"status when nothing else", New(http.StatusBadGateway, "", nil), "api error (502)"},
		{"empty", &Error{}, "api error"},
		{"nil receiver", nil, ""},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestError_UnwrapChains(t *testing.T) {
	inner := errors.New("deck missing")
	wrapped := fmt.Errorf("load deck: %w", New(http.StatusNotFound, "not_found", inner))

	var apiErr *Error
	if !errors.As(wrapped, &apiErr) {
		t.Fatalf("errors.As failed to find *Error")
	}
	if apiErr.Status != http.StatusNotFound {
		t.Fatalf("unexpected status %d", apiErr.Status)
	}
	if !errors.Is(wrapped, inner) {
		t.Fatalf("inner error not reachable through Unwrap")
	}
	var nilErr *Error
	if nilErr.Unwrap() != nil {
		t.Fatalf("nil receiver must unwrap to nil")
	}
}
