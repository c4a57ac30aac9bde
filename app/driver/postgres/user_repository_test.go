package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-service/app/domain"
	apperrors "blog-service/app/utils/errors"
	"blog-service/app/utils/logger"
)

// Helper function to create a test user repository with mocked database
func createTestUserRepository(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)

	testLogger, err := logger.New("debug")
	require.NoError(t, err)

	repo := NewUserRepository(mockDB, testLogger).(*UserRepository)

	return repo, mockDB
}

func userColumns() []string {
	return []string{
		"id", "email", "full_name", "password_hash", "bio",
		"social_twitter", "social_facebook", "social_linkedin", "created_at",
	}
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		setupDB func(pgxmock.PgxPoolIface)
		want    bool
		wantErr bool
	}{
		{
			name:  "email exists",
			email: "a@example.com",
			setupDB: func(mockDB pgxmock.PgxPoolIface) {
				mockDB.ExpectQuery("SELECT EXISTS").
					WithArgs("a@example.com").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
			},
			want: true,
		},
		{
			name:  "email does not exist",
			email: "fresh@example.com",
			setupDB: func(mockDB pgxmock.PgxPoolIface) {
				mockDB.ExpectQuery("SELECT EXISTS").
					WithArgs("fresh@example.com").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
			},
			want: false,
		},
		{
			name:  "database error",
			email: "a@example.com",
			setupDB: func(mockDB pgxmock.PgxPoolIface) {
				mockDB.ExpectQuery("SELECT EXISTS").
					WithArgs("a@example.com").
					WillReturnError(pgx.ErrTxClosed)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mockDB := createTestUserRepository(t)
			defer mockDB.Close()

			tt.setupDB(mockDB)

			got, err := repo.ExistsByEmail(context.Background(), tt.email)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mockDB.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Create(t *testing.T) {
	user := domain.NewUser("a@example.com", "User A", "hashed")
	user.Bio = "bio"
	user.Social = &domain.SocialLinks{Twitter: "@a"}

	t.Run("successful creation", func(t *testing.T) {
		repo, mockDB := createTestUserRepository(t)
		defer mockDB.Close()

		mockDB.ExpectExec("INSERT INTO users").
			WithArgs(
				user.ID, user.Email, user.FullName, user.PasswordHash, user.Bio,
				"@a", "", "", user.CreatedAt,
			).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repo.Create(context.Background(), user))
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("duplicate email maps to DuplicateEmail", func(t *testing.T) {
		repo, mockDB := createTestUserRepository(t)
		defer mockDB.Close()

		mockDB.ExpectExec("INSERT INTO users").
			WithArgs(
				user.ID, user.Email, user.FullName, user.PasswordHash, user.Bio,
				"@a", "", "", user.CreatedAt,
			).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		err := repo.Create(context.Background(), user)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDuplicateEmail))
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	userID := uuid.New()
	created := time.Now().UTC()

	t.Run("found with social links", func(t *testing.T) {
		repo, mockDB := createTestUserRepository(t)
		defer mockDB.Close()

		mockDB.ExpectQuery("SELECT id, email, full_name").
			WithArgs("a@example.com").
			WillReturnRows(pgxmock.NewRows(userColumns()).
				AddRow(userID, "a@example.com", "User A", "hashed", "bio", "@a", "", "", created))

		user, err := repo.GetByEmail(context.Background(), "a@example.com")
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "hashed", user.PasswordHash)
		require.NotNil(t, user.Social)
		assert.Equal(t, "@a", user.Social.Twitter)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("found without social links", func(t *testing.T) {
		repo, mockDB := createTestUserRepository(t)
		defer mockDB.Close()

		mockDB.ExpectQuery("SELECT id, email, full_name").
			WithArgs("b@example.com").
			WillReturnRows(pgxmock.NewRows(userColumns()).
				AddRow(userID, "b@example.com", "User B", "hashed", "", "", "", "", created))

		user, err := repo.GetByEmail(context.Background(), "b@example.com")
		require.NoError(t, err)
		assert.Nil(t, user.Social, "empty social columns fold into nil")
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mockDB := createTestUserRepository(t)
		defer mockDB.Close()

		mockDB.ExpectQuery("SELECT id, email, full_name").
			WithArgs("missing@example.com").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetByEmail(context.Background(), "missing@example.com")
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	repo, mockDB := createTestUserRepository(t)
	defer mockDB.Close()

	userID := uuid.New()
	mockDB.ExpectQuery("SELECT id, email, full_name").
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows(userColumns()).
			AddRow(userID, "a@example.com", "User A", "hashed", "", "", "", "", time.Now()))

	user, err := repo.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "User A", user.FullName)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestUserRepository_Update(t *testing.T) {
	user := domain.NewUser("a@example.com", "Renamed", "hashed")

	t.Run("successful update", func(t *testing.T) {
		repo, mockDB := createTestUserRepository(t)
		defer mockDB.Close()

		mockDB.ExpectExec("UPDATE users").
			WithArgs(user.ID, user.FullName, user.Bio, "", "", "").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, repo.Update(context.Background(), user))
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("missing user maps to NotFound", func(t *testing.T) {
		repo, mockDB := createTestUserRepository(t)
		defer mockDB.Close()

		mockDB.ExpectExec("UPDATE users").
			WithArgs(user.ID, user.FullName, user.Bio, "", "", "").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.Update(context.Background(), user)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})
}
