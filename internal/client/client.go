// ABOUTME: HTTP client for the storefront API
// ABOUTME: Wraps auth, product, and favorites endpoints with typed responses

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the API client for the storefront backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// User represents the authenticated identity from /api/auth/me
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// Product represents a catalog entry from /api/products
type Product struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Favorite links the authenticated user to a product they marked.
// ID is the server-assigned record id, required to issue a removal.
type Favorite struct {
	ID        int `json:"id"`
	ProductID int `json:"product_id"`
}

// Credentials is a username/password pair for login. Never persisted.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token returned by /api/auth/login
type LoginResponse struct {
	Token string `json:"token"`
}

// APIError is a non-2xx response with its parsed JSON error payload.
// Network-level failures are returned as plain wrapped errors, not APIError.
type APIError struct {
	Status  int
	Payload map[string]any
}

func (e *APIError) Error() string {
	if msg, ok := e.Payload["error"].(string); ok && msg != "" {
		return fmt.Sprintf("server rejected request (status %d): %s", e.Status, msg)
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}

// IsRejected reports whether err is an HTTP rejection from the server,
// as opposed to a network-level failure.
func IsRejected(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// Products calls GET /api/products
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/api/products", "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Me calls GET /api/auth/me with the given token
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login calls POST /api/auth/login with the credentials. No token is sent.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Favorites calls GET /api/users/{id}/favorites
func (c *Client) Favorites(ctx context.Context, userID int) ([]Favorite, error) {
	var favorites []Favorite
	path := fmt.Sprintf("/api/users/%d/favorites", userID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// AddFavorite calls POST /api/users/{id}/favorites and returns the
// server-assigned favorite record
func (c *Client) AddFavorite(ctx context.Context, userID, productID int) (*Favorite, error) {
	var favorite Favorite
	path := fmt.Sprintf("/api/users/%d/favorites", userID)
	body := map[string]int{"product_id": productID}
	if err := c.do(ctx, http.MethodPost, path, "", body, &favorite); err != nil {
		return nil, err
	}
	return &favorite, nil
}

// RemoveFavorite calls DELETE /api/users/{id}/favorites/{favoriteID}.
// A success response has no body.
func (c *Client) RemoveFavorite(ctx context.Context, userID, favoriteID int) error {
	path := fmt.Sprintf("/api/users/%d/favorites/%d", userID, favoriteID)
	return c.do(ctx, http.MethodDelete, path, "", nil, nil)
}

// do issues a single request and decodes the JSON response into out.
// The token is sent verbatim in the authorization header, no "Bearer " prefix;
// the backend matches on the raw value.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			// Success with an empty body, e.g. a 200 from a DELETE
			return nil
		}
		return fmt.Errorf("invalid response from server: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to server at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses a non-2xx response into an APIError
func (c *Client) handleErrorResponse(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(&apiErr.Payload); err != nil {
		apiErr.Payload = nil
	}
	return apiErr
}
