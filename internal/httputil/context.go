package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	userIDKey contextKey = "userID"
	emailKey  contextKey = "userEmail"
	nameKey   contextKey = "userName"
)

// WithUser adds the authenticated user's identity to the request context
func WithUser(r *http.Request, userID, email, fullName string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	ctx = context.WithValue(ctx, emailKey, email)
	ctx = context.WithValue(ctx, nameKey, fullName)
	return r.WithContext(ctx)
}

// GetUserID retrieves userID from context, returns empty string if not found
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

// GetUserEmail retrieves the authenticated email from context
func GetUserEmail(r *http.Request) string {
	email, _ := r.Context().Value(emailKey).(string)
	return email
}

// GetUserName retrieves the authenticated display name from context
func GetUserName(r *http.Request) string {
	name, _ := r.Context().Value(nameKey).(string)
	return name
}
