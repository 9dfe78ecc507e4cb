package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestFatalf_Classification(t *testing.T) {
	err := Fatalf("negative backup version: %d", -1)
	if !IsFatal(err) {
		t.Fatalf("expected fatal classification")
	}
	if IsRetriable(err) {
		t.Fatalf("fatal error must not be retriable")
	}
}

func TestRetriablef_Classification(t *testing.T) {
	err := Retriablef("failed to parse %q", "abc")
	if !IsRetriable(err) {
		t.Fatalf("expected retriable classification")
	}
	if IsFatal(err) {
		t.Fatalf("retriable error must not be fatal")
	}
}

func TestClassification_SurvivesWrapping(t *testing.T) {
	inner := Fatalf("bad input")
	wrapped := fmt.Errorf("loading settings: %w", inner)
	if !IsFatal(wrapped) {
		t.Fatalf("fatal classification lost through wrapping")
	}
}

func TestFatalf_UnwrapsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Fatalf("context: %w", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to reach the cause")
	}
}

func TestNilClassification(t *testing.T) {
	if IsFatal(nil) || IsRetriable(nil) {
		t.Fatalf("nil error must not classify")
	}
}
