package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code Code
		want int
	}{
		{CodeBadRequest, http.StatusBadRequest},
		{CodeEmailTaken, http.StatusConflict},
		{CodeUnsupportedImage, http.StatusUnsupportedMediaType},
		{CodeModelUnavailable, http.StatusServiceUnavailable},
		{CodeModelRejected, http.StatusBadGateway},
		{CodeMalformedAnalysis, http.StatusInternalServerError},
		{CodeStorageUnavailable, http.StatusServiceUnavailable},
		{Code("UNKNOWN_CODE"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := New(tc.code, "msg").HTTPStatus(); got != tc.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestFrom(t *testing.T) {
	t.Parallel()

	orig := New(CodeNotFound, "missing")
	wrapped := fmt.Errorf("outer: %w", orig)

	if got := From(wrapped); got.Code != CodeNotFound {
		t.Errorf("From(wrapped) code = %q, want %q", got.Code, CodeNotFound)
	}

	plain := errors.New("boom")
	got := From(plain)
	if got.Code != CodeServerError {
		t.Errorf("From(plain) code = %q, want %q", got.Code, CodeServerError)
	}
	if !errors.Is(got, plain) {
		t.Error("From(plain) lost the cause chain")
	}
}

func TestDetail(t *testing.T) {
	t.Parallel()

	cause := errors.New("pg: connection refused")
	appErr := Wrap(CodeServerError, "Something broke.", cause)

	if got := appErr.Detail(); got != cause.Error() {
		t.Errorf("Detail() = %q, want cause text", got)
	}
	if got := New(CodeBadRequest, "msg").Detail(); got != "" {
		t.Errorf("Detail() without cause = %q, want empty", got)
	}
}
