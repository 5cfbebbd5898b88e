package service

import (
	"bitwise74/company-api/internal/model"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload of an issued bearer token. The subject holds the
// user ID.
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 bearer tokens
type TokenIssuer struct {
	secret   []byte
	expiry   time.Duration
	issuer   string
	audience string

	now func() time.Time
}

func NewTokenIssuer(secret string, expiry time.Duration, issuer, audience string) *TokenIssuer {
	return &TokenIssuer{
		secret:   []byte(secret),
		expiry:   expiry,
		issuer:   issuer,
		audience: audience,
		now:      time.Now,
	}
}

// Issue returns a signed token for u together with its expiry time
func (t *TokenIssuer) Issue(u *model.User) (string, time.Time, error) {
	jti, err := gonanoid.New()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token id, %w", err)
	}

	now := t.now()
	expiresAt := now.Add(t.expiry)

	claims := Claims{
		Username: u.Username,
		Email:    u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   u.ID,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	if t.audience != "" {
		claims.Audience = jwt.ClaimStrings{t.audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token, %w", err)
	}

	return signed, expiresAt, nil
}

// Parse verifies the signature, expiry, issuer and audience of a token
func (t *TokenIssuer) Parse(token string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}

	if t.issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.issuer))
	}

	if t.audience != "" {
		opts = append(opts, jwt.WithAudience(t.audience))
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w, %w", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
