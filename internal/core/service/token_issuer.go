package service

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/docstream/document-platform/internal/core/domain"
)

const tokenTTL = 2 * time.Hour

// TokenIssuer produces signed, time-bound identity tokens. It is a pure
// transform: no persistence, no state beyond the signing configuration.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
}

func NewTokenIssuer(secret, issuer, audience string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), issuer: issuer, audience: audience}
}

// Issue returns an HS256-signed JWT asserting the user's identity and role.
// Claims: sub (numeric user id), username, role, iss, aud, exp (2h), iat.
func (t *TokenIssuer) Issue(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"role":     user.Role,
		"iss":      t.issuer,
		"aud":      t.audience,
		"iat":      now.Unix(),
		"exp":      now.Add(tokenTTL).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(t.secret)
}
