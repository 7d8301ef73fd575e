// ABOUTME: Tests for the favorites commands
// ABOUTME: Verifies session gating, listing, adding, and removing favorites

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mhartsell/favshelf/internal/store"
)

// newFavoritesServer serves the auth, catalog, and favorites endpoints
// for user id 7 with one existing favorite {id 9, product 42}
func newFavoritesServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/auth/me":
			json.NewEncoder(w).Encode(map[string]any{"id": 7, "username": "ann"})
		case r.URL.Path == "/api/products":
			json.NewEncoder(w).Encode([]map[string]any{
				{"id": 42, "name": "Wireless Mouse"},
				{"id": 7, "name": "Mechanical Keyboard"},
			})
		case r.URL.Path == "/api/users/7/favorites" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode([]map[string]any{{"id": 9, "product_id": 42}})
		case r.URL.Path == "/api/users/7/favorites" && r.Method == http.MethodPost:
			var body map[string]int
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("bad add body: %v", err)
			}
			json.NewEncoder(w).Encode(map[string]any{"id": 10, "product_id": body["product_id"]})
		case r.URL.Path == "/api/users/7/favorites/9" && r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func seedSession(t *testing.T, serverURL string) {
	t.Helper()
	configDir := setTestConfigDir(t)
	if err := store.NewFileStore(configDir).SetToken("abc"); err != nil {
		t.Fatalf("failed to seed token: %v", err)
	}
	apiURL = serverURL
	t.Cleanup(func() { apiURL = "" })
}

func TestFavorites_NotLoggedIn(t *testing.T) {
	setTestConfigDir(t)

	apiURL = "http://localhost:9"
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	code := resolveSessionAndRun(context.Background(), &buf, runFavoritesList)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "Not logged in") {
		t.Errorf("expected not-logged-in message, got %q", buf.String())
	}
}

func TestFavoritesList(t *testing.T) {
	server := newFavoritesServer(t)
	defer server.Close()
	seedSession(t, server.URL)

	var buf bytes.Buffer
	code := resolveSessionAndRun(context.Background(), &buf, runFavoritesList)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "42\tWireless Mouse") {
		t.Errorf("expected favorite resolved to product name, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "Keyboard") {
		t.Errorf("expected only favorited products listed, got %q", buf.String())
	}
}

func TestFavoritesAdd(t *testing.T) {
	server := newFavoritesServer(t)
	defer server.Close()
	seedSession(t, server.URL)

	var buf bytes.Buffer
	code := resolveSessionAndRun(context.Background(), &buf, func(ctx context.Context, w io.Writer, deps favoritesDeps) int {
		return runFavoritesAdd(ctx, w, deps, "7")
	})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Favorited product 7 (favorite id 10)") {
		t.Errorf("expected add confirmation with server-assigned id, got %q", buf.String())
	}
}

func TestFavoritesAdd_InvalidID(t *testing.T) {
	server := newFavoritesServer(t)
	defer server.Close()
	seedSession(t, server.URL)

	var buf bytes.Buffer
	code := resolveSessionAndRun(context.Background(), &buf, func(ctx context.Context, w io.Writer, deps favoritesDeps) int {
		return runFavoritesAdd(ctx, w, deps, "mouse")
	})
	if code != 2 {
		t.Fatalf("expected exit 2 for invalid product id, got %d", code)
	}
}

func TestFavoritesRemove(t *testing.T) {
	server := newFavoritesServer(t)
	defer server.Close()
	seedSession(t, server.URL)

	var buf bytes.Buffer
	code := resolveSessionAndRun(context.Background(), &buf, func(ctx context.Context, w io.Writer, deps favoritesDeps) int {
		return runFavoritesRemove(ctx, w, deps, "42")
	})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Removed favorite for product 42") {
		t.Errorf("expected remove confirmation, got %q", buf.String())
	}
}

func TestFavoritesRemove_NotAFavorite(t *testing.T) {
	server := newFavoritesServer(t)
	defer server.Close()
	seedSession(t, server.URL)

	var buf bytes.Buffer
	code := resolveSessionAndRun(context.Background(), &buf, func(ctx context.Context, w io.Writer, deps favoritesDeps) int {
		return runFavoritesRemove(ctx, w, deps, "7")
	})
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "Product 7 is not a favorite") {
		t.Errorf("expected not-a-favorite message, got %q", buf.String())
	}
}
