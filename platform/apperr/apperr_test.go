package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusByKind(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{NotFound("x"), http.StatusNotFound},
		{Validation("x"), http.StatusBadRequest},
		{BadRequest("x"), http.StatusBadRequest},
		{Conflict("x"), http.StatusConflict},
		{Forbidden("x"), http.StatusForbidden},
		{Unauthorized("x"), http.StatusUnauthorized},
		{Internal("x"), http.StatusInternalServerError},
		{Retryable("x", nil), http.StatusServiceUnavailable},
		{New(KindUnknown, "x"), http.StatusBadRequest},
	}

	for _, tc := range cases {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Errorf("kind %d: expected status %d, got %d", tc.err.Kind, tc.want, got)
		}
	}
}

func TestGetKindFollowsWrappedChain(t *testing.T) {
	base := Conflict("stage already exists").WithCode("duplicate_stage")
	wrapped := fmt.Errorf("create stage: %w", base)

	if got := GetKind(wrapped); got != KindConflict {
		t.Fatalf("expected KindConflict, got %d", got)
	}

	e, ok := As(wrapped)
	if !ok {
		t.Fatal("expected *Error in chain")
	}
	if e.Code != "duplicate_stage" {
		t.Fatalf("expected code duplicate_stage, got %q", e.Code)
	}
}

func TestWrapSupportsErrorsIs(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := Wrap(KindValidation, "bad", sentinel).WithOp("reorder")

	if !errors.Is(err, sentinel) {
		t.Fatal("expected errors.Is to reach the wrapped sentinel")
	}
	if err.Error() != "reorder: bad" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestGetKindOnPlainError(t *testing.T) {
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Fatal("expected KindUnknown for plain errors")
	}
}
