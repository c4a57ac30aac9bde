package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"blog-service/app/domain"
	"blog-service/app/mocks"
	apperrors "blog-service/app/utils/errors"
	"blog-service/app/utils/logger"
)

type nopPinger struct{}

func (nopPinger) HealthCheck(ctx context.Context) error { return nil }

func newTestRouter(t *testing.T) (http.Handler, *mocks.MockUserUsecase, *mocks.MockArticleUsecase) {
	t.Helper()

	ctrl := gomock.NewController(t)
	userUsecase := mocks.NewMockUserUsecase(ctrl)
	articleUsecase := mocks.NewMockArticleUsecase(ctrl)

	testLogger, err := logger.New("error")
	require.NoError(t, err)

	e := NewRouter(RouterConfig{
		Logger:         testLogger,
		UserUsecase:    userUsecase,
		ArticleUsecase: articleUsecase,
		DB:             nopPinger{},
	})
	return e, userUsecase, articleUsecase
}

func TestRouter_ErrorShapes(t *testing.T) {
	t.Run("auth failure maps to 401 with the error shape", func(t *testing.T) {
		router, _, _ := newTestRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"please provide your token via Authorization header"}`, rec.Body.String())
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		router, _, articleUsecase := newTestRouter(t)

		articleUsecase.EXPECT().GetBySlug(gomock.Any(), "missing").
			Return(nil, apperrors.NewNotFound("article"))

		req := httptest.NewRequest(http.MethodGet, "/article/missing", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"article not found"}`, rec.Body.String())
	})

	t.Run("internal errors hide their cause", func(t *testing.T) {
		router, _, articleUsecase := newTestRouter(t)

		articleUsecase.EXPECT().List(gomock.Any(), gomock.Any()).
			Return(nil, apperrors.NewDatabaseError(assert.AnError))

		req := httptest.NewRequest(http.MethodGet, "/article", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	})

	t.Run("invalid bearer token is ignored and the handler decides", func(t *testing.T) {
		router, userUsecase, _ := newTestRouter(t)

		userUsecase.EXPECT().ResolveToken(gomock.Any(), "expired-token").
			Return(nil, apperrors.ErrInvalidToken)

		req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
		req.Header.Set("Authorization", "Bearer expired-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token reaches the protected handler", func(t *testing.T) {
		router, userUsecase, _ := newTestRouter(t)

		user := domain.NewUser("a@example.com", "User A", "hash")
		userUsecase.EXPECT().ResolveToken(gomock.Any(), "good-token").Return(user, nil)
		userUsecase.EXPECT().GetProfile(gomock.Any(), user.ID).Return(user, nil)

		req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouter_Health(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)

	req = httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
