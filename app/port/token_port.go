package port

//go:generate mockgen -source=token_port.go -destination=../mocks/mock_token_port.go -package=mocks

import (
	"github.com/google/uuid"
)

// TokenService issues and verifies signed session tokens. A token embeds
// the user id as its subject; verification fails on bad signatures,
// malformed structure, and unsupported algorithms.
type TokenService interface {
	IssueToken(userID uuid.UUID) (string, error)
	VerifyToken(token string) (uuid.UUID, error)
}
