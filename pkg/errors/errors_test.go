package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := Wrap(CodeTransport, cause, "request did not complete")

	if err.Code() != CodeTransport {
		t.Fatalf("unexpected code %q", err.Code())
	}
	if !stdErrors.Is(err, cause) {
		t.Fatal("cause lost from chain")
	}
}

func TestAsThroughWrapping(t *testing.T) {
	inner := New(CodeBackend, "User not found").WithStatus(http.StatusNotFound)
	wrapped := fmt.Errorf("load vehicles: %w", inner)

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Message() != "User not found" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
	if typed.HTTPStatus() != http.StatusNotFound {
		t.Fatalf("unexpected status %d", typed.HTTPStatus())
	}
}

func TestAsNonTyped(t *testing.T) {
	if As(stdErrors.New("plain")) != nil {
		t.Fatal("expected nil for untyped error")
	}
	if As(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestCodeForStatus(t *testing.T) {
	cases := map[int]Code{
		http.StatusUnauthorized:        CodeUnauthorized,
		http.StatusNotFound:            CodeNotFound,
		http.StatusConflict:            CodeConflict,
		http.StatusBadRequest:          CodeBackend,
		http.StatusInternalServerError: CodeBackend,
	}
	for status, want := range cases {
		if got := CodeForStatus(status); got != want {
			t.Fatalf("status %d: got %q want %q", status, got, want)
		}
	}
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeValidation, "slot code is required"))
	if !IsCode(err, CodeValidation) {
		t.Fatal("expected validation code")
	}
	if IsCode(err, CodeBackend) {
		t.Fatal("unexpected backend code")
	}
}
