package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is how long a session token stays valid after issuance.
const TokenLifetime = time.Hour * 24

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
	ErrNoSecret     = errors.New("no signing secret provided")
)

// Claims is the payload of a session token. Nothing about a session is kept
// on the server, the token alone proves who the caller is until it expires.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 signed session tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type TokenOption func(*Tokens)

// WithClock replaces the time source, used by tests to move past expiry
func WithClock(now func() time.Time) TokenOption {
	return func(t *Tokens) {
		t.now = now
	}
}

func NewTokens(secret string, opts ...TokenOption) (*Tokens, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}

	t := &Tokens{
		secret: []byte(secret),
		ttl:    TokenLifetime,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// Issue mints a token for the given user that expires TokenLifetime from now.
func (t *Tokens) Issue(userID, email string) (string, error) {
	now := t.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token, %w", err)
	}

	return signed, nil
}

// Verify checks the signature and expiry of raw and returns its claims.
func (t *Tokens) Verify(raw string) (*Claims, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(raw, &claims, func(_ *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}

		return nil, fmt.Errorf("%w, %v", ErrTokenInvalid, err)
	}

	if claims.UserID == "" {
		return nil, fmt.Errorf("%w, no user_id claim", ErrTokenInvalid)
	}

	return &claims, nil
}
