package auth

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"performanceEvaluation/models"
)

// Principal represents the authenticated caller extracted from a JWT.
type Principal struct {
	UserID   string
	Username string
	Role     models.Role
}

type sessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 session token for the user, expiring after ttl.
func IssueToken(secret string, u models.User, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	now := time.Now()
	claims := sessionClaims{
		Username: u.Username,
		Role:     string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseBearer extracts and validates a Bearer JWT from an Authorization
// header value and returns the Principal.
func ParseBearer(header, secret string) (*Principal, error) {
	if header == "" {
		return nil, errors.New("missing authorization")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errors.New("invalid authorization header")
	}
	return ParseToken(strings.TrimSpace(parts[1]), secret)
}

// ParseToken validates the token signature, algorithm, and expiry, and
// extracts the caller identity.
func ParseToken(tokenStr, secret string) (*Principal, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	tok, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}
	c, _ := tok.Claims.(*sessionClaims)
	if c == nil || c.Subject == "" || c.Username == "" || c.Role == "" {
		return nil, errors.New("invalid claims")
	}
	return &Principal{UserID: c.Subject, Username: c.Username, Role: models.Role(strings.ToLower(c.Role))}, nil
}
