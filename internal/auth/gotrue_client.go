package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"luman/internal/domain"
	"luman/internal/domain/models"
)

// GoTrueClient talks to a GoTrue-compatible auth REST API (Supabase Auth).
// It implements the Provider interface.
type GoTrueClient struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

// NewGoTrueClient creates a new auth provider client.
func NewGoTrueClient(baseURL, anonKey string) *GoTrueClient {
	return &GoTrueClient{
		baseURL: baseURL,
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type signUpRequest struct {
	Email    string                 `json:"email"`
	Password string                 `json:"password"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp creates a new user via POST /auth/v1/signup.
func (c *GoTrueClient) SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*models.AuthUser, error) {
	payload := signUpRequest{Email: email, Password: password, Data: metadata}

	var user models.AuthUser
	if err := c.do(ctx, http.MethodPost, "/auth/v1/signup", payload, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// SignIn performs a password grant via POST /auth/v1/token?grant_type=password.
func (c *GoTrueClient) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	payload := tokenRequest{Email: email, Password: password}

	var session models.Session
	err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", payload, &session)
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// GetUser fetches a user by id via GET /auth/v1/admin/users/{id}.
func (c *GoTrueClient) GetUser(ctx context.Context, userID string) (*models.AuthUser, error) {
	var user models.AuthUser
	if err := c.do(ctx, http.MethodGet, "/auth/v1/admin/users/"+userID, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserMetadata merges metadata into the user record via the admin API.
func (c *GoTrueClient) UpdateUserMetadata(ctx context.Context, userID string, metadata map[string]interface{}) (*models.AuthUser, error) {
	payload := map[string]interface{}{"user_metadata": metadata}

	var user models.AuthUser
	if err := c.do(ctx, http.MethodPut, "/auth/v1/admin/users/"+userID, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// do performs one request against the auth API. 4xx responses with
// authentication semantics map to domain.ErrUnauthorized so callers can
// translate them to a clean 401 without leaking provider internals.
func (c *GoTrueClient) do(ctx context.Context, method, path string, payload, dest interface{}) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal auth request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create auth request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	req.Header.Set("apikey", c.anonKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read auth response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
	case resp.StatusCode == http.StatusUnprocessableEntity:
		// GoTrue uses 422 for "user already registered"
		return fmt.Errorf("auth provider rejected request: %w", domain.ErrConflict)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("auth provider rejected request (%d): %w", resp.StatusCode, domain.ErrUnauthorized)
	default:
		return fmt.Errorf("auth provider returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if dest != nil {
		if err := json.Unmarshal(respBody, dest); err != nil {
			return fmt.Errorf("decode auth response: %w", err)
		}
	}

	return nil
}
