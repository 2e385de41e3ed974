package models

import "github.com/golang-jwt/jwt/v5"

// AuthClaims represents the JWT claims structure issued by the GoTrue-style
// auth provider.
type AuthClaims struct {
	jwt.RegisteredClaims
	Email        string                 `json:"email"`
	AppMetadata  map[string]interface{} `json:"app_metadata"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	Role         string                 `json:"role"` // "authenticated" or "anon"
	SessionID    string                 `json:"session_id"`
	IsAnonymous  bool                   `json:"is_anonymous"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *AuthClaims) GetUserID() string {
	return c.Subject
}

// FullName extracts the display name from user metadata, if present.
func (c *AuthClaims) FullName() string {
	if name, ok := c.UserMetadata["full_name"].(string); ok {
		return name
	}
	return ""
}

// AuthUser is the provider-side identity record for an authenticated user.
type AuthUser struct {
	ID       string                 `json:"id"`
	Email    string                 `json:"email"`
	Metadata map[string]interface{} `json:"user_metadata"`
}

// Session is the token pair returned by a successful password grant.
type Session struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int      `json:"expires_in"`
	User         AuthUser `json:"user"`
}
