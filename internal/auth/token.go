package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultSessionTTL is how long a session token stays valid.
const DefaultSessionTTL = 30 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

// SessionClaims is the payload of a session token. Subject carries the user id.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens. There is no revocation:
// a token is valid until it expires or the secret changes.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *TokenService) Issue(userID uuid.UUID) (string, error) {
	now := s.now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the user id the token was issued for.
func (s *TokenService) Verify(token string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, s.Keyfunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return s.Subject(parsed)
}

// Keyfunc resolves the verification key and rejects anything that is not HS256.
func (s *TokenService) Keyfunc(t *jwt.Token) (interface{}, error) {
	if t.Method != jwt.SigningMethodHS256 {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return s.secret, nil
}

// Subject extracts the user id from an already validated token.
func (s *TokenService) Subject(t *jwt.Token) (uuid.UUID, error) {
	if t == nil || !t.Valid {
		return uuid.Nil, ErrInvalidToken
	}
	claims, ok := t.Claims.(*SessionClaims)
	if !ok || claims.ExpiresAt == nil {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
