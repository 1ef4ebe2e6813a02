package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code        Code
		userFacing  bool
		recoverable bool
		publicMsg   string
	}{
		{code: CodeValidation, userFacing: true, publicMsg: "validation failed"},
		{code: CodeNotFound, userFacing: true, publicMsg: "record not found"},
		{code: CodePrecondition, userFacing: true, publicMsg: "operation not allowed in current state"},
		{code: CodeResource, recoverable: true, publicMsg: "resource unavailable"},
		{code: CodePersistence, recoverable: true, publicMsg: "storage unavailable"},
		{code: CodeInternal, publicMsg: "internal error"},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.UserFacing != tt.userFacing {
			t.Fatalf("code %s expected user facing %v got %v", tt.code, tt.userFacing, meta.UserFacing)
		}
		if meta.Recoverable != tt.recoverable {
			t.Fatalf("code %s expected recoverable %v got %v", tt.code, tt.recoverable, meta.Recoverable)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.PublicMessage != "internal error" {
		t.Fatalf("expected internal metadata, got %+v", meta)
	}
}

func TestWrapPreservesChain(t *testing.T) {
	root := stdErrors.New("disk full")
	err := Wrap(CodePersistence, root, "saving history")

	if !stdErrors.Is(err, root) {
		t.Fatal("expected wrapped cause to survive errors.Is")
	}
	if typed := As(fmt.Errorf("outer: %w", err)); typed == nil || typed.Code() != CodePersistence {
		t.Fatalf("expected typed error through wrapping, got %v", typed)
	}
}

func TestHasCode(t *testing.T) {
	err := New(CodeValidation, "empty name")
	if !HasCode(err, CodeValidation) {
		t.Fatal("expected matching code")
	}
	if HasCode(err, CodeNotFound) {
		t.Fatal("unexpected code match")
	}
	if HasCode(nil, CodeValidation) {
		t.Fatal("nil error should not match")
	}
}
