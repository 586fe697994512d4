package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("super-secret", DefaultSessionTTL)
	userID := uuid.New()

	tok, err := svc.Issue(userID)
	require.NoError(t, err)

	got, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenService_ThirtyDayWindow(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("secret", DefaultSessionTTL)
	issuedAt := time.Now().Add(-31 * 24 * time.Hour)
	svc.now = func() time.Time { return issuedAt }

	tok, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// still inside the window one day before expiry
	svc.now = func() time.Time { return issuedAt.Add(29 * 24 * time.Hour) }
	_, err = svc.Verify(tok)
	assert.NoError(t, err)
}

func TestTokenService_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenService("right-secret", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	_, err = NewTokenService("wrong-secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_TamperedSignature(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("secret", time.Hour)
	tok, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	// a middle character of the signature carries a full six bits
	i := len(tok) - 10
	replacement := byte('A')
	if tok[i] == 'A' {
		replacement = 'B'
	}
	_, err = svc.Verify(tok[:i] + string(replacement) + tok[i+1:])
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Malformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("k", time.Hour)
	for _, tok := range []string{"", "not.a.jwt", "abc"} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, tok)
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("k", time.Hour)
	claims := SessionClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RequiresExpiry(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("k", time.Hour)
	claims := SessionClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_SubjectMustBeUUID(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("k", time.Hour)
	claims := SessionClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
