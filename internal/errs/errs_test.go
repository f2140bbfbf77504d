package errs

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := os.ErrPermission
	err := Wrap(ErrPersistence, "write", "save", "writing track", cause)

	if !errors.Is(err, ErrPersistence) {
		t.Errorf("errors.Is(err, ErrPersistence) = false, want true")
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Errorf("wrapped cause lost: errors.Is(err, os.ErrPermission) = false")
	}
	if !strings.Contains(err.Error(), "write: save") {
		t.Errorf("error text %q missing phase/op detail", err.Error())
	}
}

func TestWrapNilMarkerFallsBackToInternal(t *testing.T) {
	err := Wrap(nil, "open", "", "", fmt.Errorf("boom"))
	if !errors.Is(err, ErrInternal) {
		t.Errorf("nil marker should tag ErrInternal, got %v", err)
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := Wrap(ErrUnsupportedAdapter, "", "select", "no such backend", nil)
	if !errors.Is(err, ErrUnsupportedAdapter) {
		t.Errorf("errors.Is(err, ErrUnsupportedAdapter) = false, want true")
	}
	if errors.Is(err, ErrInternal) {
		t.Errorf("unexpected ErrInternal tag on %v", err)
	}
}
