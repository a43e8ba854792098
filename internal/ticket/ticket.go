// Package ticket issues and checks the bearer tokens that tie an HTTP
// client to the game session it created.
package ticket

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "mines"

var (
	ErrNoSecret        = errors.New("ticket secret is empty")
	ErrMalformedClaims = errors.New("malformed claims")
)

type Claims struct {
	jwt.RegisteredClaims
}

// SessionID is the id of the game session the ticket was issued for.
func (c *Claims) SessionID() string {
	return c.Subject
}

type Issuer struct {
	secret        []byte
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
	now           func() time.Time
}

func NewIssuer(secret string, lifetime time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	i := &Issuer{
		secret:        []byte(secret),
		signingMethod: jwt.SigningMethodHS256,
		tokenLifetime: lifetime,
		now:           time.Now,
	}
	return i, nil
}

func (i *Issuer) Issue(sessionID string) (string, error) {
	now := i.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Subject:  sessionID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if i.tokenLifetime > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(i.tokenLifetime))
	}
	return jwt.NewWithClaims(i.signingMethod, claims).SignedString(i.secret)
}

func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(t *jwt.Token) (interface{}, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{i.signingMethod.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, ErrMalformedClaims
	}
	return claims, nil
}
