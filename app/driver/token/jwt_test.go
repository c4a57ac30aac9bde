package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "blog-service/app/utils/errors"
)

func newTestService(ttl time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		Secret: "test-secret-key",
		Issuer: "blog-service",
		TTL:    ttl,
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestService(time.Hour)
	userID := uuid.New()

	tokenString, err := svc.IssueToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	got, err := svc.VerifyToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWTService_NoExpiry(t *testing.T) {
	svc := newTestService(0)
	userID := uuid.New()

	tokenString, err := svc.IssueToken(userID)
	require.NoError(t, err)

	// Tokens without an exp claim must still verify
	got, err := svc.VerifyToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWTService_WrongSecret(t *testing.T) {
	tokenString, err := newTestService(time.Hour).IssueToken(uuid.New())
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{Secret: "different-secret", TTL: time.Hour})
	_, err = other.VerifyToken(tokenString)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidToken))
}

func TestJWTService_Malformed(t *testing.T) {
	svc := newTestService(time.Hour)

	for _, tokenString := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.VerifyToken(tokenString)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidToken), "token %q", tokenString)
	}
}

func TestJWTService_TamperedPayload(t *testing.T) {
	svc := newTestService(time.Hour)
	tokenString, err := svc.IssueToken(uuid.New())
	require.NoError(t, err)

	tampered := tokenString[:len(tokenString)-4] + "AAAA"
	_, err = svc.VerifyToken(tampered)
	assert.Error(t, err)
}

func TestJWTService_RejectsForeignAlgorithm(t *testing.T) {
	svc := newTestService(time.Hour)

	// alg=none token signed with the same claims shape
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject: uuid.New().String(),
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.VerifyToken(tokenString)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidToken))
}

func TestJWTService_Expired(t *testing.T) {
	svc := NewJWTService(JWTConfig{Secret: "test-secret-key", TTL: -time.Minute})

	tokenString, err := svc.IssueToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.VerifyToken(tokenString)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidToken))
}

func TestJWTService_NonUUIDSubject(t *testing.T) {
	svc := newTestService(time.Hour)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "42"})
	tokenString, err := foreign.SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	_, err = svc.VerifyToken(tokenString)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidToken))
}
