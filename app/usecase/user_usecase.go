package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"blog-service/app/domain"
	"blog-service/app/port"
	apperrors "blog-service/app/utils/errors"
	"blog-service/app/utils/security"
	"blog-service/app/utils/validator"
)

// UserUseCase implements user-facing business logic
type UserUseCase struct {
	userRepo  port.UserRepository
	tokens    port.TokenService
	validator *validator.Validator
	logger    *slog.Logger
}

// NewUserUseCase creates a new UserUseCase instance
func NewUserUseCase(userRepo port.UserRepository, tokens port.TokenService, logger *slog.Logger) *UserUseCase {
	return &UserUseCase{
		userRepo:  userRepo,
		tokens:    tokens,
		validator: validator.New(),
		logger:    logger.With("component", "user_usecase"),
	}
}

// SignUp registers a new user. The email must be free; the returned user
// carries a freshly issued token.
func (uc *UserUseCase) SignUp(ctx context.Context, req *domain.SignUpRequest) (*domain.User, error) {
	if err := uc.validator.Validate(req); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateEmail
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.ErrInternalError.WithCause(err)
	}

	user := domain.NewUser(req.Email, req.FullName, hash)
	user.Bio = req.Bio
	user.Social = req.Social

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	user.Token, err = uc.tokens.IssueToken(user.ID)
	if err != nil {
		return nil, apperrors.ErrInternalError.WithCause(err)
	}

	uc.logger.Info("user signed up", "user_id", user.ID)
	return user, nil
}

// SignIn verifies credentials. Unknown email and wrong password produce
// the same generic error so accounts cannot be enumerated.
func (uc *UserUseCase) SignIn(ctx context.Context, req *domain.SignInRequest) (*domain.User, error) {
	if err := uc.validator.Validate(req); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !security.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	user.Token, err = uc.tokens.IssueToken(user.ID)
	if err != nil {
		return nil, apperrors.ErrInternalError.WithCause(err)
	}

	uc.logger.Info("user signed in", "user_id", user.ID)
	return user, nil
}

// GetProfile loads the current user.
func (uc *UserUseCase) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// UpdateProfile applies the allow-listed profile fields and persists them.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID uuid.UUID, req *domain.UpdateProfileRequest) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.ApplyProfileUpdate(req)

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResolveToken maps a bearer token to an existing user. Both verification
// failure and a stale subject id surface as errors; the caller decides
// whether that means rejection or an anonymous request.
func (uc *UserUseCase) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	userID, err := uc.tokens.VerifyToken(token)
	if err != nil {
		return nil, err
	}
	return uc.userRepo.GetByID(ctx, userID)
}
