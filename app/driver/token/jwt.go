package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "blog-service/app/utils/errors"
)

// JWTConfig holds JWT generation configuration.
type JWTConfig struct {
	Secret string
	Issuer string
	// TTL of zero issues tokens without an expiry claim. Verification
	// accepts both.
	TTL time.Duration
}

// JWTService issues and verifies HS256 session tokens carrying the user id
// as the subject claim. Implements port.TokenService.
type JWTService struct {
	cfg JWTConfig
}

// NewJWTService creates a new JWT token service.
func NewJWTService(cfg JWTConfig) *JWTService {
	return &JWTService{cfg: cfg}
}

// IssueToken generates a signed token for the given user id.
func (s *JWTService) IssueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:   s.cfg.Issuer,
		Subject:  userID.String(),
		IssuedAt: jwt.NewNumericDate(now),
	}
	if s.cfg.TTL != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.cfg.TTL))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a token and returns the embedded user id. All
// failure modes (bad signature, malformed structure, foreign algorithm,
// expired, non-uuid subject) collapse into ErrInvalidToken.
func (s *JWTService) VerifyToken(tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidToken.WithCause(err)
	}
	if !parsed.Valid {
		return uuid.Nil, apperrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidToken.WithCause(err)
	}
	return userID, nil
}
