// ABOUTME: Tests for the session manager
// ABOUTME: Covers silent re-auth, stale token cleanup, login, and logout

package session

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/mhartsell/favshelf/internal/client"
	"github.com/mhartsell/favshelf/internal/store"
)

// fakeAPI is a counting AuthAPI double
type fakeAPI struct {
	loginResp   *client.LoginResponse
	loginErr    error
	meUser      *client.User
	meErr       error
	loginCalls  int
	meCalls     int
	lastMeToken string
	lastCreds   client.Credentials
}

func (f *fakeAPI) Login(ctx context.Context, creds client.Credentials) (*client.LoginResponse, error) {
	f.loginCalls++
	f.lastCreds = creds
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResp, nil
}

func (f *fakeAPI) Me(ctx context.Context, token string) (*client.User, error) {
	f.meCalls++
	f.lastMeToken = token
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.meUser, nil
}

func TestBootstrap_NoStoredToken_NoNetworkCalls(t *testing.T) {
	api := &fakeAPI{}
	m := NewManager(api, store.NewMemStore())

	for i := 0; i < 2; i++ {
		if err := m.Bootstrap(context.Background()); err != nil {
			t.Fatalf("Bootstrap() error: %v", err)
		}
		if m.State() != StateUnauthenticated {
			t.Errorf("expected unauthenticated after bootstrap %d, got %s", i, m.State())
		}
	}

	if api.meCalls != 0 {
		t.Errorf("expected no /me calls without a stored token, got %d", api.meCalls)
	}
}

func TestBootstrap_StaleTokenCleared(t *testing.T) {
	api := &fakeAPI{meErr: &client.APIError{Status: http.StatusUnauthorized}}
	tokens := store.NewMemStore()
	tokens.SetToken("stale")
	m := NewManager(api, tokens)

	// A rejected token is dropped silently, not surfaced as an error
	if err := m.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap() error: %v", err)
	}

	if _, ok := tokens.Token(); ok {
		t.Error("expected stale token to be cleared")
	}
	if m.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %s", m.State())
	}
	if m.User() != nil {
		t.Errorf("expected nil user, got %+v", m.User())
	}
}

func TestBootstrap_Success(t *testing.T) {
	api := &fakeAPI{meUser: &client.User{ID: 1, Username: "ann"}}
	tokens := store.NewMemStore()
	tokens.SetToken("abc")
	m := NewManager(api, tokens)

	if err := m.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap() error: %v", err)
	}

	if api.lastMeToken != "abc" {
		t.Errorf("expected /me called with stored token abc, got %q", api.lastMeToken)
	}
	if !m.Authenticated() {
		t.Fatalf("expected authenticated, got %s", m.State())
	}
	if m.User().Username != "ann" || m.User().ID != 1 {
		t.Errorf("expected {1 ann}, got %+v", m.User())
	}
}

func TestBootstrap_NetworkFailureKeepsToken(t *testing.T) {
	api := &fakeAPI{meErr: errors.New("cannot connect")}
	tokens := store.NewMemStore()
	tokens.SetToken("abc")
	m := NewManager(api, tokens)

	if err := m.Bootstrap(context.Background()); err == nil {
		t.Fatal("expected network error to be returned")
	}

	// Staleness can only be decided by the server; the token stays
	if token, ok := tokens.Token(); !ok || token != "abc" {
		t.Errorf("expected token retained, got %q (present=%v)", token, ok)
	}
	if m.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %s", m.State())
	}
}

func TestLogin_Success(t *testing.T) {
	api := &fakeAPI{
		loginResp: &client.LoginResponse{Token: "xyz"},
		meUser:    &client.User{ID: 1, Username: "ann"},
	}
	tokens := store.NewMemStore()
	m := NewManager(api, tokens)

	creds := client.Credentials{Username: "ann", Password: "pw"}
	if err := m.Login(context.Background(), creds); err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	if token, ok := tokens.Token(); !ok || token != "xyz" {
		t.Errorf("expected stored token xyz, got %q (present=%v)", token, ok)
	}
	// The identity is re-derived from /me with the fresh token, never
	// trusted from the login response
	if api.meCalls != 1 || api.lastMeToken != "xyz" {
		t.Errorf("expected one /me call with token xyz, got %d calls with %q", api.meCalls, api.lastMeToken)
	}
	if !m.Authenticated() || m.User().Username != "ann" {
		t.Errorf("expected authenticated as ann, got %s %+v", m.State(), m.User())
	}
}

func TestLogin_RejectedLeavesSessionUnchanged(t *testing.T) {
	api := &fakeAPI{loginErr: &client.APIError{
		Status:  http.StatusUnauthorized,
		Payload: map[string]any{"error": "bad credentials"},
	}}
	tokens := store.NewMemStore()
	m := NewManager(api, tokens)

	err := m.Login(context.Background(), client.Credentials{Username: "ann", Password: "nope"})
	if err == nil {
		t.Fatal("expected error for rejected login")
	}

	if m.State() != StateUnauthenticated {
		t.Errorf("expected state unchanged, got %s", m.State())
	}
	if m.User() != nil {
		t.Errorf("expected nil user, got %+v", m.User())
	}
	if _, ok := tokens.Token(); ok {
		t.Error("expected no token stored on rejected login")
	}
	if api.meCalls != 0 {
		t.Errorf("expected no /me call after rejection, got %d", api.meCalls)
	}
}

func TestLogout_SynchronousAndLocal(t *testing.T) {
	api := &fakeAPI{meUser: &client.User{ID: 1, Username: "ann"}}
	tokens := store.NewMemStore()
	tokens.SetToken("abc")
	m := NewManager(api, tokens)

	if err := m.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap() error: %v", err)
	}
	callsBefore := api.meCalls + api.loginCalls

	m.Logout()

	if api.meCalls+api.loginCalls != callsBefore {
		t.Error("logout must not make network calls")
	}
	if _, ok := tokens.Token(); ok {
		t.Error("expected token cleared on logout")
	}
	if m.State() != StateUnauthenticated || m.User() != nil {
		t.Errorf("expected unauthenticated with nil user, got %s %+v", m.State(), m.User())
	}
}

func TestNext_Transitions(t *testing.T) {
	cases := []struct {
		from State
		ev   Event
		want State
	}{
		{StateUnauthenticated, EventAttempt, StateAuthenticating},
		{StateUnauthenticated, EventAccepted, StateUnauthenticated},
		{StateUnauthenticated, EventLoggedOut, StateUnauthenticated},
		{StateAuthenticating, EventAccepted, StateAuthenticated},
		{StateAuthenticating, EventRejected, StateUnauthenticated},
		{StateAuthenticating, EventLoggedOut, StateUnauthenticated},
		{StateAuthenticated, EventAttempt, StateAuthenticating},
		{StateAuthenticated, EventRejected, StateUnauthenticated},
		{StateAuthenticated, EventLoggedOut, StateUnauthenticated},
	}

	for _, tc := range cases {
		if got := Next(tc.from, tc.ev); got != tc.want {
			t.Errorf("Next(%s, %d) = %s, want %s", tc.from, tc.ev, got, tc.want)
		}
	}
}
