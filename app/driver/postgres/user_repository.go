package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"blog-service/app/domain"
	"blog-service/app/port"
	apperrors "blog-service/app/utils/errors"
)

const uniqueViolation = "23505"

// UserRepository implements port.UserRepository for PostgreSQL
type UserRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db DatabaseIface, logger *slog.Logger) port.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger.With("component", "user_repository"),
	}
}

// ExistsByEmail reports whether a user with this email is registered.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		r.logger.Error("failed to check email existence", "error", err)
		return false, apperrors.NewDatabaseError(err)
	}
	return exists, nil
}

// Create inserts a new user. A unique-constraint violation on email maps
// to ErrDuplicateEmail; the index backstops the check-then-insert race.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (
			id, email, full_name, password_hash, bio,
			social_twitter, social_facebook, social_linkedin, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)`

	social := user.Social
	if social == nil {
		social = &domain.SocialLinks{}
	}

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.FullName,
		user.PasswordHash,
		user.Bio,
		social.Twitter,
		social.Facebook,
		social.LinkedIn,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.ErrDuplicateEmail
		}
		r.logger.Error("failed to create user", "error", err)
		return apperrors.NewDatabaseError(err)
	}

	r.logger.Info("user created", "user_id", user.ID)
	return nil
}

// GetByEmail loads a user by email, including the password hash.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := userSelectColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

// GetByID loads a user by id.
func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	query := userSelectColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, userID))
}

// Update persists the mutable profile fields.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET full_name = $2, bio = $3,
		    social_twitter = $4, social_facebook = $5, social_linkedin = $6
		WHERE id = $1`

	social := user.Social
	if social == nil {
		social = &domain.SocialLinks{}
	}

	tag, err := r.db.Exec(ctx, query,
		user.ID,
		user.FullName,
		user.Bio,
		social.Twitter,
		social.Facebook,
		social.LinkedIn,
	)
	if err != nil {
		r.logger.Error("failed to update user", "user_id", user.ID, "error", err)
		return apperrors.NewDatabaseError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("user")
	}
	return nil
}

const userSelectColumns = `
	SELECT id, email, full_name, password_hash, bio,
	       social_twitter, social_facebook, social_linkedin, created_at`

// scanUser scans a single user row, folding empty social columns into a
// nil Social.
func (r *UserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	social := domain.SocialLinks{}

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		&user.Bio,
		&social.Twitter,
		&social.Facebook,
		&social.LinkedIn,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		r.logger.Error("failed to scan user", "error", err)
		return nil, apperrors.NewDatabaseError(err)
	}

	if social != (domain.SocialLinks{}) {
		user.Social = &social
	}
	return user, nil
}
