package domain

import (
	"errors"
	"fmt"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestFetchErrorWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewFetchError("yahoo", "history", cause)

	if !IsFetchFailure(err) {
		t.Fatal("expected fetch failure classification")
	}
	if !IsFetchFailure(fmt.Errorf("lookup: %w", err)) {
		t.Fatal("expected classification to survive wrapping")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected Unwrap to expose the cause")
	}
	if err.Error() != "yahoo history: connection refused" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestIsFetchFailureOnPlainError(t *testing.T) {
	if IsFetchFailure(errors.New("nope")) {
		t.Fatal("plain errors must not classify as fetch failures")
	}
	if IsFetchFailure(nil) {
		t.Fatal("nil must not classify as a fetch failure")
	}
}

func TestIsTimeout(t *testing.T) {
	if !IsTimeout(timeoutErr{}) {
		t.Fatal("expected net timeout to classify")
	}
	if !IsTimeout(NewFetchError("yahoo", "history", timeoutErr{})) {
		t.Fatal("expected wrapped timeout to classify")
	}
	if IsTimeout(errors.New("boom")) {
		t.Fatal("plain error must not classify as timeout")
	}
}
