// Package token decodes CommHub access tokens into the identity claims the
// client needs. Tokens are decoded without signature verification: the server
// is the only party that validates signatures, and expiry is discovered via a
// 401 on actual use, never checked locally.
package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrDecode indicates a malformed token. Callers must treat it exactly like
// "no valid session": no partial claims are ever returned alongside it.
var ErrDecode = errors.New("token decode failed")

// DefaultRole is assumed when the role claim is absent.
const DefaultRole = "member"

// Identity holds the user claims carried in an access token. It is rebuilt
// from scratch on every successful decode and never partially updated.
type Identity struct {
	ID       int64
	Username string
	Email    string
	PublicID string
	Role     string
}

// Decode extracts identity claims from the payload segment of an access token.
func Decode(raw string) (*Identity, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrDecode
	}

	id := &Identity{
		Username: claimString(claims, "username"),
		Email:    claimString(claims, "email"),
		PublicID: claimString(claims, "public_id"),
		Role:     claimString(claims, "role"),
	}
	if id.Role == "" {
		id.Role = DefaultRole
	}

	switch v := claims["user_id"].(type) {
	case float64:
		id.ID = int64(v)
	case nil:
		return nil, fmt.Errorf("%w: missing user_id claim", ErrDecode)
	default:
		return nil, fmt.Errorf("%w: unexpected user_id claim type %T", ErrDecode, v)
	}

	return id, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
