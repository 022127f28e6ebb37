// Package token signs and verifies the opaque credential strings carried
// by the library-token header. Verification is pure: it checks integrity
// and shape only, and hands the embedded expiry back to the caller, so
// that expired and forged credentials can be reported as distinct
// conditions by the authentication stage.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"biblio/internal/domain"
)

// ErrInvalidToken is the only verification failure the codec reports.
// Malformed and forged tokens are deliberately indistinguishable.
var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	jwt.RegisteredClaims
	Role domain.Role `json:"rol"`
}

type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

type Option func(*Codec)

func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

func NewCodec(secret string, ttl time.Duration, opts ...Option) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	c := &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			// Reject non-canonical base64 so every bit of the token is
			// covered by the signature check.
			jwt.WithStrictDecoding(),
			// Expiry is evaluated by the authentication stage, not here.
			jwt.WithoutClaimsValidation(),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Codec) Sign(subject string, role domain.Role) (string, error) {
	if subject == "" {
		return "", errors.New("subject is required")
	}
	now := c.now().UTC()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Role: role,
	})
	return tok.SignedString(c.secret)
}

func (c *Codec) Verify(tokenString string) (domain.ClaimSet, error) {
	parsed, err := c.parser.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.ClaimSet{}, ErrInvalidToken
	}
	cl, ok := parsed.Claims.(*claims)
	if !ok || cl.Subject == "" || cl.ExpiresAt == nil || cl.IssuedAt == nil {
		return domain.ClaimSet{}, ErrInvalidToken
	}
	return domain.ClaimSet{
		Subject:   cl.Subject,
		Role:      cl.Role,
		IssuedAt:  cl.IssuedAt.Time,
		ExpiresAt: cl.ExpiresAt.Time,
	}, nil
}
