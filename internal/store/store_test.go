// ABOUTME: Tests for the token store
// ABOUTME: Validates file persistence, clearing, and the in-memory fake

package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_TokenAbsent(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	token, ok := fs.Token()
	if ok {
		t.Errorf("expected no token, got %q", token)
	}
}

func TestFileStore_SetAndGet(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	if err := fs.SetToken("abc"); err != nil {
		t.Fatalf("SetToken() error: %v", err)
	}

	token, ok := fs.Token()
	if !ok {
		t.Fatal("expected a token after SetToken")
	}
	if token != "abc" {
		t.Errorf("expected abc, got %q", token)
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	if err := NewFileStore(dir).SetToken("abc"); err != nil {
		t.Fatalf("SetToken() error: %v", err)
	}

	// A fresh instance over the same directory sees the token, as a
	// restarted process would
	token, ok := NewFileStore(dir).Token()
	if !ok || token != "abc" {
		t.Errorf("expected persisted token abc, got %q (present=%v)", token, ok)
	}
}

func TestFileStore_Clear(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	if err := fs.SetToken("abc"); err != nil {
		t.Fatalf("SetToken() error: %v", err)
	}
	if err := fs.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	if _, ok := fs.Token(); ok {
		t.Error("expected no token after Clear")
	}
}

func TestFileStore_ClearIdempotent(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	if err := fs.Clear(); err != nil {
		t.Errorf("Clear() on empty store error: %v", err)
	}
}

func TestFileStore_CorruptFileReadsAsAbsent(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "credentials.json"), []byte("not json"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, ok := NewFileStore(dir).Token(); ok {
		t.Error("expected corrupt file to read as absent")
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	got := DefaultConfigDir()
	want := filepath.Join("/tmp/xdg-test", "favshelf")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestMemStore(t *testing.T) {
	ms := NewMemStore()

	if _, ok := ms.Token(); ok {
		t.Error("expected empty store")
	}

	ms.SetToken("abc")
	token, ok := ms.Token()
	if !ok || token != "abc" {
		t.Errorf("expected abc, got %q (present=%v)", token, ok)
	}

	ms.Clear()
	if _, ok := ms.Token(); ok {
		t.Error("expected no token after Clear")
	}
}
