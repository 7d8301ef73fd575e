// ABOUTME: Session manager owning authentication state
// ABOUTME: Restores sessions from the stored token and handles login/logout

package session

import (
	"context"

	"github.com/mhartsell/favshelf/internal/client"
	"github.com/mhartsell/favshelf/internal/store"
)

// State is the authentication state of the client
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticating
	StateAuthenticated
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Event drives state transitions
type Event int

const (
	EventAttempt Event = iota // a login or silent re-auth started
	EventAccepted             // /api/auth/me returned an identity
	EventRejected             // the server rejected the token or credentials
	EventLoggedOut            // the user logged out locally
)

// Next is the pure transition function over session states.
// Transitions not listed leave the state unchanged.
func Next(s State, ev Event) State {
	switch s {
	case StateUnauthenticated:
		if ev == EventAttempt {
			return StateAuthenticating
		}
	case StateAuthenticating:
		switch ev {
		case EventAccepted:
			return StateAuthenticated
		case EventRejected, EventLoggedOut:
			return StateUnauthenticated
		}
	case StateAuthenticated:
		switch ev {
		case EventAttempt:
			return StateAuthenticating
		case EventRejected, EventLoggedOut:
			return StateUnauthenticated
		}
	}
	return s
}

// AuthAPI is the slice of the backend the session manager talks to
type AuthAPI interface {
	Login(ctx context.Context, creds client.Credentials) (*client.LoginResponse, error)
	Me(ctx context.Context, token string) (*client.User, error)
}

// Manager owns the authentication state. It is the only writer of the
// token store; everything else reads auth state through it.
type Manager struct {
	api    AuthAPI
	tokens store.TokenStore
	state  State
	user   *client.User
}

// NewManager creates a session manager in the unauthenticated state
func NewManager(api AuthAPI, tokens store.TokenStore) *Manager {
	return &Manager{
		api:    api,
		tokens: tokens,
		state:  StateUnauthenticated,
	}
}

// State returns the current session state
func (m *Manager) State() State {
	return m.state
}

// User returns the authenticated identity, or nil
func (m *Manager) User() *client.User {
	return m.user
}

// Authenticated reports whether a user identity is established
func (m *Manager) Authenticated() bool {
	return m.state == StateAuthenticated && m.user != nil
}

// Bootstrap attempts silent re-authentication from the stored token.
// With no stored token it stays unauthenticated without any network call.
// A token the server rejects is dropped silently; that is the expected
// path for a stale session, not an error.
func (m *Manager) Bootstrap(ctx context.Context) error {
	token, ok := m.tokens.Token()
	if !ok {
		return nil
	}
	return m.fetchIdentity(ctx, token)
}

// Login authenticates with credentials and persists the returned token.
// The identity is always re-derived from /api/auth/me rather than trusted
// from the login response. On failure the session is left exactly as it
// was; the error is returned for diagnostics only.
func (m *Manager) Login(ctx context.Context, creds client.Credentials) error {
	prevState, prevUser := m.state, m.user
	m.state = Next(m.state, EventAttempt)

	resp, err := m.api.Login(ctx, creds)
	if err != nil {
		m.state, m.user = prevState, prevUser
		return err
	}
	if err := m.tokens.SetToken(resp.Token); err != nil {
		m.state, m.user = prevState, prevUser
		return err
	}

	return m.fetchIdentity(ctx, resp.Token)
}

// Logout clears the stored token and the session synchronously.
// No network call is made.
func (m *Manager) Logout() {
	m.tokens.Clear()
	m.user = nil
	m.state = Next(m.state, EventLoggedOut)
}

// fetchIdentity runs the /api/auth/me step shared by Bootstrap and Login
func (m *Manager) fetchIdentity(ctx context.Context, token string) error {
	m.state = Next(m.state, EventAttempt)

	user, err := m.api.Me(ctx, token)
	if err != nil {
		if client.IsRejected(err) {
			// Stale or revoked token: drop it and move on
			m.tokens.Clear()
			m.user = nil
			m.state = Next(m.state, EventRejected)
			return nil
		}
		// Network failure: the token stays put, staleness is re-checked
		// on the next bootstrap
		if m.user != nil {
			m.state = StateAuthenticated
		} else {
			m.state = StateUnauthenticated
		}
		return err
	}

	m.user = user
	m.state = Next(m.state, EventAccepted)
	return nil
}
