// ABOUTME: Tests for the login form
// ABOUTME: Verifies the non-empty credential requirement

package loginform

import (
	"strings"
	"testing"
)

func TestRequired(t *testing.T) {
	if err := Required(""); err == nil {
		t.Error("expected empty value to be rejected")
	}
	if err := Required("ann"); err != nil {
		t.Errorf("expected non-empty value accepted, got %v", err)
	}
}

func TestNewFormIncomplete(t *testing.T) {
	f := New()

	if f.Complete() {
		t.Error("expected a fresh form to be incomplete")
	}
}

func TestView(t *testing.T) {
	f := New()

	view := f.View()
	if !strings.Contains(view, "Sign in") {
		t.Error("expected form title")
	}
	if !strings.Contains(view, "Username") {
		t.Error("expected username field")
	}
}
