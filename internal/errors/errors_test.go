package errors

import (
	"errors"
	"io/fs"
	"testing"
)

func TestError(t *testing.T) {
	err := New(KindMalformed, "short line")
	if err.Error() != "short line" {
		t.Errorf("expected 'short line', got '%s'", err.Error())
	}

	wrapped := Wrap(fs.ErrNotExist, KindUnavailable, "failed to open flow log")
	if wrapped.Error() != "failed to open flow log: file does not exist" {
		t.Errorf("unexpected message '%s'", wrapped.Error())
	}
	if !errors.Is(wrapped, fs.ErrNotExist) {
		t.Errorf("expected wrapped error to match fs.ErrNotExist")
	}
}

func TestGetKind(t *testing.T) {
	err := Errorf(KindConfig, "unknown writer type '%s'", "foo")
	if GetKind(err) != KindConfig {
		t.Errorf("expected KindConfig, got %v", GetKind(err))
	}
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Errorf("expected KindUnknown for plain error")
	}
	if !IsKind(Wrap(err, KindUnavailable, "outer"), KindUnavailable) {
		t.Errorf("expected outermost kind to win")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, KindUnavailable, "nothing") != nil {
		t.Errorf("expected nil")
	}
}

func TestKindString(t *testing.T) {
	if KindUnavailable.String() != "unavailable" || Kind(42).String() != "unknown" {
		t.Errorf("unexpected kind names")
	}
}
