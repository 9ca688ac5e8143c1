// Package token issues and verifies the signed identity assertion carried in
// the session cookie. Both operations are pure functions of their inputs;
// cookie placement and removal belong to the HTTP layer.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/csemotors/dealership/internal/core/domain"
)

var (
	// ErrMissingSecret means the signing secret was not configured. Issue
	// refuses to mint an effectively unsigned token in that case.
	ErrMissingSecret = errors.New("token: signing secret is not configured")

	// ErrInvalid covers every verification failure a caller should treat
	// uniformly: bad signature, malformed token, wrong algorithm.
	ErrInvalid = errors.New("token: invalid")

	// ErrExpired wraps ErrInvalid so callers can log staleness separately
	// while still branching on ErrInvalid alone.
	ErrExpired = fmt.Errorf("%w: expired", ErrInvalid)
)

// Claims is the decoded identity inside a session token. It snapshots the
// account at issuance time; a later profile edit does not alter outstanding
// tokens until a new one is issued.
type Claims struct {
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// AccountID returns the account identifier carried in the subject claim.
func (c *Claims) AccountID() string {
	return c.Subject
}

// Issue signs a token embedding the account snapshot, valid for ttl. The
// password hash is never part of the claim set.
func Issue(account *domain.Account, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}

	now := time.Now().UTC()
	claims := Claims{
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
		Role:      account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify checks signature integrity and expiry and returns the decoded
// claims. Callers must branch on the error explicitly; Verify never panics
// past this boundary.
func Verify(raw, secret string) (*Claims, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if !parsed.Valid {
		return nil, ErrInvalid
	}

	if _, err := domain.ParseRole(string(claims.Role)); err != nil {
		return nil, ErrInvalid
	}

	return claims, nil
}
