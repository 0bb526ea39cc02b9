package provider

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken      = errors.New("no access token")
	ErrInvalidToken = errors.New("invalid access token")
)

// Claims is the subset of access-token claims the session core needs for
// identity extraction and refresh scheduling.
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

// DecodeAccessToken extracts claims without verifying the signature; tokens
// are issued and verified by the provider, we only schedule around them.
func DecodeAccessToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}

	token, _, err := new(jwt.Parser).ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	if sub, ok := mapClaims["sub"].(string); ok {
		claims.Subject = sub
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}

	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Expired reports whether the token's exp claim has passed. Tokens without
// an exp claim are treated as live; the provider rejects them if not.
func (c *Claims) Expired() bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(c.ExpiresAt)
}
