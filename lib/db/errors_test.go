package db

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := NewError(RetCKeyNotFound, "key \"a\" does not exist")
	want := `StoreError (code KeyNotFound): key "a" does not exist`
	if err.Error() != want {
		t.Errorf("Unexpected error string: %q", err.Error())
	}

	cause := errors.New("disk full")
	wrapped := WrapError(RetCWrite, "dump to /tmp/db", cause)
	if !errors.Is(wrapped, cause) {
		t.Errorf("Expected Unwrap to expose the cause")
	}
}

func TestHasCode(t *testing.T) {
	err := NewError(RetCTypeMismatch, "list, not scalar")

	if !HasCode(err, RetCTypeMismatch) {
		t.Errorf("Expected HasCode to match the error's code")
	}
	if HasCode(err, RetCKeyNotFound) {
		t.Errorf("Expected HasCode to reject other codes")
	}
	if HasCode(nil, RetCTypeMismatch) {
		t.Errorf("Expected HasCode to reject nil")
	}
	if HasCode(errors.New("plain"), RetCTypeMismatch) {
		t.Errorf("Expected HasCode to reject untyped errors")
	}

	// codes survive fmt wrapping
	wrapped := fmt.Errorf("outer context: %w", err)
	if !HasCode(wrapped, RetCTypeMismatch) {
		t.Errorf("Expected HasCode to unwrap nested errors")
	}
}

func TestSnapshotValidate(t *testing.T) {
	snap := NewSnapshot()
	if err := snap.Validate(); err != nil {
		t.Errorf("Expected fresh snapshot to validate: %v", err)
	}

	snap.Version = SnapshotVersion + 1
	if err := snap.Validate(); err == nil {
		t.Errorf("Expected future snapshot version to be rejected")
	}

	// a zero-valued snapshot is what lenient decoders produce from
	// input no dump ever wrote
	var zero Snapshot
	if err := zero.Validate(); err == nil {
		t.Errorf("Expected zero-valued snapshot to be rejected")
	}
}
