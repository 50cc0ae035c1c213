package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/authy/user-management-api/internal/core/domain"
)

// Token errors. Both map to the same unauthorized outcome at the HTTP
// boundary; the distinction exists for logs and metrics only.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// DefaultTokenTTL is the validity window of a freshly minted token.
// Tokens are never renewed; a new login mints a new token.
const DefaultTokenTTL = time.Hour

// Claims is the signed claim set carried inside a bearer token.
type Claims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Codec mints and validates HS256-signed bearer tokens. The secret is
// injected once at construction and treated as immutable for the process
// lifetime; it must never be logged.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a Codec with the given signing secret and token TTL.
// A non-positive ttl falls back to DefaultTokenTTL.
func NewCodec(secret []byte, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Codec{secret: secret, ttl: ttl}
}

// Mint signs a token for the principal with sub, email, role, iat and exp
// claims. Identical inputs at the same instant produce identical tokens.
func (c *Codec) Mint(p domain.Principal) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: p.Email,
		Role:  p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Validate verifies the token signature and expiry and reconstructs the
// Principal from the claims. The claims are the sole source of identity:
// no user record is re-fetched, so role changes made after mint time do
// not take effect until the token expires and a fresh one is minted.
//
// An expired but correctly signed token fails with ErrTokenExpired;
// anything malformed, tampered with, or signed differently fails with
// ErrInvalidToken.
func (c *Codec) Validate(tokenString string) (domain.Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Principal{}, ErrTokenExpired
		}
		return domain.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return domain.Principal{}, ErrInvalidToken
	}

	if claims.Subject == "" || !claims.Role.Valid() {
		return domain.Principal{}, fmt.Errorf("%w: missing identity claims", ErrInvalidToken)
	}

	return domain.Principal{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}
