package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/marketpro/internal/auth"
	"github.com/dmitrijs2005/marketpro/internal/common"
)

// sessionClaims is the JWT payload for a persisted principal.
type sessionClaims struct {
	jwt.RegisteredClaims
	Phone         string `json:"phone"`
	Role          string `json:"role"`
	Authenticated bool   `json:"isAuthenticated"`
	Name          string `json:"name"`
	LastLoginAt   int64  `json:"lastLogin"`
}

// TokenCodec serializes principals as HS256-signed tokens, so a
// tampered or truncated blob fails verification on restore instead of
// round-tripping into a session.
type TokenCodec struct {
	secret []byte
}

func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

func (c *TokenCodec) Encode(p *auth.Principal) (string, error) {
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		Phone:         p.Phone,
		Role:          string(p.Role),
		Authenticated: p.Authenticated,
		Name:          p.Name,
		LastLoginAt:   p.LastLoginAt.UnixMilli(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies and unpacks a serialized principal. Any parse or
// verification failure, and any blob whose isAuthenticated claim is not
// true, yields common.ErrMalformedSession.
func (c *TokenCodec) Decode(blob string) (*auth.Principal, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(blob, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedSession, err)
	}
	if !token.Valid || !claims.Authenticated {
		return nil, common.ErrMalformedSession
	}

	return &auth.Principal{
		Phone:         claims.Phone,
		Role:          auth.Role(claims.Role),
		Authenticated: true,
		Name:          claims.Name,
		LastLoginAt:   time.UnixMilli(claims.LastLoginAt),
	}, nil
}
