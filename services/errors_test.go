package services

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("search: %w", wrapError(KindUpstreamQuery, cause, "Failed to search flights"))

	if KindOf(err) != KindUpstreamQuery {
		t.Errorf("expected upstream query kind, got %q", KindOf(err))
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause in chain")
	}
	if !errors.Is(err, &Error{Kind: KindUpstreamQuery}) {
		t.Error("expected kind match via errors.Is")
	}
	if errors.Is(err, &Error{Kind: KindUpstreamAuth}) {
		t.Error("unexpected match on different kind")
	}
	if Message(err) != "Failed to search flights" {
		t.Errorf("unexpected message %q", Message(err))
	}
	if err.Error() != "search: Failed to search flights: connection reset" {
		t.Errorf("unexpected error string %q", err.Error())
	}
}

func TestKindOfPlainError(t *testing.T) {
	err := errors.New("plain")
	if KindOf(err) != "" {
		t.Errorf("expected no kind, got %q", KindOf(err))
	}
	if Message(err) != "plain" {
		t.Errorf("unexpected message %q", Message(err))
	}
}
