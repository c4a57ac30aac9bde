package port

//go:generate mockgen -source=user_port.go -destination=../mocks/mock_user_port.go -package=mocks

import (
	"context"

	"github.com/google/uuid"

	"blog-service/app/domain"
)

// UserUsecase defines user-facing business logic
type UserUsecase interface {
	// SignUp registers a new user and returns it with a fresh token.
	SignUp(ctx context.Context, req *domain.SignUpRequest) (*domain.User, error)
	// SignIn verifies credentials and returns the user with a fresh token.
	SignIn(ctx context.Context, req *domain.SignInRequest) (*domain.User, error)
	// GetProfile loads the user behind an authenticated request.
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	// UpdateProfile applies the allow-listed profile fields.
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *domain.UpdateProfileRequest) (*domain.User, error)
	// ResolveToken maps a bearer token to an existing user.
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
}

// UserRepository defines user data access
type UserRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
