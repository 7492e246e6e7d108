package sessions

import (
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/nearme-publisher/internal/errors"
	"golang.org/x/crypto/hkdf"
)

const (
	keyInfo   = "nearme session cookie v1"
	keyLength = 32
)

// sessionClaims is the signed payload: the session plus issue and expiry times.
type sessionClaims struct {
	Session
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens. The token is a compact HS256 JWS
// whose MAC key is derived from the process-wide cookie secret.
type Codec struct {
	key    []byte
	maxAge time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

type Option func(*Codec)

// WithClock replaces the time source used for issue and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

// NewCodec creates a codec keyed by secret. Tokens expire maxAge after signing.
func NewCodec(secret string, maxAge time.Duration, opts ...Option) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("[sessions NewCodec] empty secret")
	}
	if maxAge <= 0 {
		return nil, fmt.Errorf("[sessions NewCodec] max age must be positive, got %s", maxAge)
	}

	key := make([]byte, keyLength)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, errors.Wrapf(err, "[sessions NewCodec] derive key")
	}

	c := &Codec{
		key:    key,
		maxAge: maxAge,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(c.now),
	)
	return c, nil
}

// MaxAge is the lifetime of a freshly signed token.
func (c *Codec) MaxAge() time.Duration {
	return c.maxAge
}

// Sign serialises the session and appends its signature.
func (c *Codec) Sign(s Session) (string, error) {
	now := c.now()
	claims := sessionClaims{
		Session: s,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.maxAge)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", errors.Wrapf(err, "[sessions Sign] failed to sign session")
	}
	return signed, nil
}

// Verify checks the token's signature and expiry and returns the session it
// carries. Every failure is reported as ErrInvalidSignature.
func (c *Codec) Verify(token string) (Session, error) {
	if token == "" {
		return Session{}, fmt.Errorf("%w: empty token", errors.ErrInvalidSignature)
	}

	var claims sessionClaims
	_, err := c.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.key, nil
	})
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", errors.ErrInvalidSignature, err)
	}
	return claims.Session, nil
}

// SessionFromToken is Verify for read-only paths: an invalid token yields the
// anonymous session and false.
func (c *Codec) SessionFromToken(token string) (Session, bool) {
	s, err := c.Verify(token)
	if err != nil || s.IsAnonymous() {
		return Session{}, false
	}
	return s, true
}
