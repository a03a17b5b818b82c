package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers signature, expiry and claim-schema failures. The
// resolver maps it to a Forbidden outcome, distinct from a missing credential.
var ErrInvalidToken = errors.New("auth: invalid token")

// Codec issues and parses HS256 access tokens. The subject claim carries the
// account email; the jti claim feeds the logout revocation list.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec constructs a Codec.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a new token for the given subject.
func (c *Codec) Issue(subject string) (string, Claims, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", Claims{}, err
	}
	return signed, Claims{Subject: subject, TokenID: claims.ID, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Parse verifies the signature and expiry of a raw token and returns its
// claims. Any failure, including an empty subject, yields ErrInvalidToken.
func (c *Codec) Parse(raw string) (Claims, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Join(ErrInvalidToken, errors.New("unexpected signing method"))
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil || !token.Valid {
		return Claims{}, errors.Join(ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	out := Claims{Subject: claims.Subject, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
