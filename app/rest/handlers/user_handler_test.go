package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"blog-service/app/domain"
	"blog-service/app/mocks"
	"blog-service/app/rest/middleware"
	apperrors "blog-service/app/utils/errors"
	"blog-service/app/utils/logger"
)

func newUserHandler(t *testing.T) (*UserHandler, *mocks.MockUserUsecase) {
	t.Helper()

	ctrl := gomock.NewController(t)
	userUsecase := mocks.NewMockUserUsecase(ctrl)

	testLogger, err := logger.New("error")
	require.NoError(t, err)

	return NewUserHandler(userUsecase, testLogger), userUsecase
}

func jsonContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_SignUp(t *testing.T) {
	t.Run("returns the created user with token", func(t *testing.T) {
		h, userUsecase := newUserHandler(t)

		user := domain.NewUser("a@example.com", "User A", "hash")
		user.Token = "signed-token"
		userUsecase.EXPECT().SignUp(gomock.Any(), gomock.Any()).Return(user, nil)

		c, rec := jsonContext(t, http.MethodPost, "/user/sign-up",
			`{"email":"a@example.com","fullName":"User A","password":"secret-password"}`)
		require.NoError(t, h.SignUp(c))

		assert.Equal(t, http.StatusCreated, rec.Code)

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "signed-token", got["token"])
		assert.NotContains(t, got, "passwordHash", "hash never leaves the service")
	})

	t.Run("duplicate email bubbles up", func(t *testing.T) {
		h, userUsecase := newUserHandler(t)

		userUsecase.EXPECT().SignUp(gomock.Any(), gomock.Any()).
			Return(nil, apperrors.ErrDuplicateEmail)

		c, _ := jsonContext(t, http.MethodPost, "/user/sign-up",
			`{"email":"a@example.com","fullName":"User A","password":"secret-password"}`)
		err := h.SignUp(c)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDuplicateEmail))
	})

	t.Run("malformed JSON is a validation failure", func(t *testing.T) {
		h, _ := newUserHandler(t)

		c, _ := jsonContext(t, http.MethodPost, "/user/sign-up", `{not json`)
		err := h.SignUp(c)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))
	})
}

func TestUserHandler_SignIn(t *testing.T) {
	t.Run("returns the user with token", func(t *testing.T) {
		h, userUsecase := newUserHandler(t)

		user := domain.NewUser("a@example.com", "User A", "hash")
		user.Token = "signed-token"
		userUsecase.EXPECT().SignIn(gomock.Any(), gomock.Any()).Return(user, nil)

		c, rec := jsonContext(t, http.MethodPost, "/user/sign-in",
			`{"email":"a@example.com","password":"secret-password"}`)
		require.NoError(t, h.SignIn(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad credentials bubble up", func(t *testing.T) {
		h, userUsecase := newUserHandler(t)

		userUsecase.EXPECT().SignIn(gomock.Any(), gomock.Any()).
			Return(nil, apperrors.ErrInvalidCredentials)

		c, _ := jsonContext(t, http.MethodPost, "/user/sign-in",
			`{"email":"a@example.com","password":"wrong-password"}`)
		err := h.SignIn(c)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidCredentials))
	})
}

func TestUserHandler_GetProfile(t *testing.T) {
	t.Run("returns the current user", func(t *testing.T) {
		h, userUsecase := newUserHandler(t)

		user := domain.NewUser("a@example.com", "User A", "hash")
		userUsecase.EXPECT().GetProfile(gomock.Any(), user.ID).Return(user, nil)

		c, rec := jsonContext(t, http.MethodGet, "/user/profile", "")
		middleware.SetCurrentUser(c, user)

		require.NoError(t, h.GetProfile(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "a@example.com", got["email"])
	})

	t.Run("anonymous request is rejected", func(t *testing.T) {
		h, _ := newUserHandler(t)

		c, _ := jsonContext(t, http.MethodGet, "/user/profile", "")
		err := h.GetProfile(c)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnauthenticated))
	})
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	t.Run("applies partial updates", func(t *testing.T) {
		h, userUsecase := newUserHandler(t)

		user := domain.NewUser("a@example.com", "User A", "hash")
		updated := domain.NewUser("a@example.com", "Renamed A", "hash")
		userUsecase.EXPECT().UpdateProfile(gomock.Any(), user.ID, gomock.Any()).
			DoAndReturn(func(_ interface{}, _ interface{}, req *domain.UpdateProfileRequest) (*domain.User, error) {
				require.NotNil(t, req.FullName)
				assert.Equal(t, "Renamed A", *req.FullName)
				return updated, nil
			})

		c, rec := jsonContext(t, http.MethodPatch, "/user/profile", `{"fullName":"Renamed A"}`)
		middleware.SetCurrentUser(c, user)

		require.NoError(t, h.UpdateProfile(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("anonymous request is rejected", func(t *testing.T) {
		h, _ := newUserHandler(t)

		c, _ := jsonContext(t, http.MethodPatch, "/user/profile", `{"fullName":"X"}`)
		err := h.UpdateProfile(c)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnauthenticated))
	})
}
