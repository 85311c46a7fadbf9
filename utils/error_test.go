package utils

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		kind ErrorKind
	}{
		{NewValidationError("bad amount"), ErrorKindValidation},
		{NewConflictError("duplicate date"), ErrorKindConflict},
		{NewNotFoundError("owner %d", 3), ErrorKindNotFound},
		{NewAuthorizationError("no token"), ErrorKindAuthorization},
		{errors.New("plain"), ErrorKind("")},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.kind {
			t.Fatalf("KindOf(%v) expected %q, got %q", tc.err, tc.kind, got)
		}
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("creating report: %w", NewConflictError("a report for 2025-01-01 already exists"))
	if KindOf(err) != ErrorKindConflict {
		t.Fatal("kind must survive wrapping")
	}
}

func TestAppErrorMessage(t *testing.T) {
	err := NewNotFoundError("owner %d not found", 42)
	if err.Message != "owner 42 not found" {
		t.Fatalf("unexpected message %q", err.Message)
	}
	if err.Error() != "NOT_FOUND: owner 42 not found" {
		t.Fatalf("unexpected Error() %q", err.Error())
	}
}
