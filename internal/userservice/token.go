package userservice

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const DefaultAccessTokenTTL = 15 * time.Minute

// TokenConfig carries the process-wide signing settings. It is loaded once
// at startup and never mutated afterwards, so it can be read from any
// request goroutine without synchronization.
type TokenConfig struct {
	Secret    string
	Algorithm string
	TTL       time.Duration
}

// signingMethod resolves the configured algorithm name. Only the HMAC
// family is accepted: the secret is a shared symmetric key.
func (c TokenConfig) signingMethod() (jwt.SigningMethod, error) {
	name := c.Algorithm
	if name == "" {
		name = "HS256"
	}

	method := jwt.GetSigningMethod(name)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", name)
	}

	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", name)
	}

	return method, nil
}

func newAccessToken(cfg TokenConfig, userID int) (*AuthToken, error) {
	method, err := cfg.signingMethod()
	if err != nil {
		return nil, err
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}

	now := time.Now()
	expiry := now.Add(ttl)

	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		ExpiresAt: jwt.NewNumericDate(expiry),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return nil, err
	}

	return &AuthToken{
		AccessToken: signed,
		TokenType:   "bearer",
		Expiry:      expiry,
	}, nil
}

// verifyAccessToken checks signature, structure and expiry and returns the
// subject user id. Every failure mode collapses into ErrInvalidToken; the
// caller never learns why a token was rejected.
func verifyAccessToken(cfg TokenConfig, token string) (int, error) {
	var claims jwt.RegisteredClaims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}

	if claims.Subject == "" {
		return 0, ErrInvalidToken
	}

	id, err := strconv.Atoi(claims.Subject)
	if err != nil || id < 1 {
		return 0, ErrInvalidToken
	}

	return id, nil
}
