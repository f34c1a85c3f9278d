package utils

import (
	"context"
)

type contextKey string

const (
	IdentityIDKey contextKey = "identity_id"
	TokenKey      contextKey = "token"
)

// SetIdentityContext stores the authenticated identity id in the context.
// Identity ids are opaque strings assigned by the identity provider.
func SetIdentityContext(ctx context.Context, identityID string) context.Context {
	return context.WithValue(ctx, IdentityIDKey, identityID)
}

func GetIdentityIDFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(IdentityIDKey)
	if val == nil {
		return "", false
	}

	identityID, ok := val.(string)
	if !ok || identityID == "" {
		return "", false
	}

	return identityID, true
}

// SetTokenContext stores the session token in the context
func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

// GetTokenFromContext reads the session token from the context
func GetTokenFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(TokenKey)
	if val == nil {
		return "", false
	}

	token, ok := val.(string)
	return token, ok
}
