package auth

import (
	"context"

	"luman/internal/domain/models"
)

// JWTVerifier defines the interface for JWT token verification.
// This abstraction keeps the middleware agnostic to how keys are resolved.
type JWTVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed claims.
	// Returns an error if the token is invalid, expired, or has an invalid
	// signature.
	VerifyToken(tokenString string) (*models.AuthClaims, error)

	// Close releases any resources held by the verifier.
	Close() error
}

// Provider is the external identity provider (GoTrue-compatible REST API).
// Signup and password grants are delegated to it; this service never stores
// passwords.
type Provider interface {
	// SignUp creates a new user and returns its id.
	SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*models.AuthUser, error)
	// SignIn performs a password grant. Returns domain.ErrUnauthorized on
	// bad credentials.
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	// GetUser fetches a user by id via the admin API.
	GetUser(ctx context.Context, userID string) (*models.AuthUser, error)
	// UpdateUserMetadata merges the given metadata into the user's record.
	UpdateUserMetadata(ctx context.Context, userID string, metadata map[string]interface{}) (*models.AuthUser, error)
}
