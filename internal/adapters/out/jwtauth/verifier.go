// Package jwtauth verifies HS256 bearer tokens issued by the identity provider.
// The caller is identified by the email claim.
package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/ports"
	"zapshift/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload the service relies on.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

var _ ports.IdentityVerifier = (*Verifier)(nil)

func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Verify returns errs.ErrUnauthorized for any token that is malformed, expired,
// wrongly signed or missing a usable email claim.
func (v *Verifier) Verify(_ context.Context, token string) (ports.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return ports.Principal{}, fmt.Errorf("%w: empty token", errs.ErrUnauthorized)
	}

	var claims Claims
	if _, err := v.parser.ParseWithClaims(token, &claims, v.key); err != nil {
		return ports.Principal{}, fmt.Errorf("%w: %w", errs.ErrUnauthorized, err)
	}

	email, err := kernel.NewEmail(claims.Email)
	if err != nil {
		return ports.Principal{}, fmt.Errorf("%w: email claim: %w", errs.ErrUnauthorized, err)
	}

	return ports.Principal{Email: email}, nil
}

func (v *Verifier) key(*jwt.Token) (any, error) {
	if len(v.secret) == 0 {
		return nil, errors.New("signing secret is not configured")
	}
	return v.secret, nil
}
