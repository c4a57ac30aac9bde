package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"blog-service/app/domain"
	"blog-service/app/port"
	"blog-service/app/rest/middleware"
	apperrors "blog-service/app/utils/errors"
)

// UserHandler handles user HTTP requests
type UserHandler struct {
	userUsecase port.UserUsecase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase port.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		logger:      logger,
	}
}

// SignUp registers a new user
// @Summary Sign up
// @Description Register a new user and return it with a fresh token
// @Tags user
// @Accept json
// @Produce json
// @Param body body domain.SignUpRequest true "Sign-up request"
// @Success 201 {object} domain.User
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /user/sign-up [post]
func (h *UserHandler) SignUp(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}

	user, err := h.userUsecase.SignUp(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

// SignIn exchanges credentials for a user with a token
// @Summary Sign in
// @Description Verify credentials and return the user with a fresh token
// @Tags user
// @Accept json
// @Produce json
// @Param body body domain.SignInRequest true "Sign-in request"
// @Success 200 {object} domain.User
// @Failure 401 {object} ErrorResponse
// @Router /user/sign-in [post]
func (h *UserHandler) SignIn(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.SignInRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}

	user, err := h.userUsecase.SignIn(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// GetProfile returns the current user
// @Summary Get profile
// @Description Return the authenticated user's profile
// @Tags user
// @Accept json
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} ErrorResponse
// @Router /user/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()

	user := middleware.CurrentUser(c)
	if user == nil {
		return apperrors.ErrUnauthenticated
	}

	profile, err := h.userUsecase.GetProfile(ctx, user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile partially updates the current user
// @Summary Update profile
// @Description Apply the provided profile fields to the authenticated user
// @Tags user
// @Accept json
// @Produce json
// @Param body body domain.UpdateProfileRequest true "Profile update request"
// @Success 200 {object} domain.User
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /user/profile [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	user := middleware.CurrentUser(c)
	if user == nil {
		return apperrors.ErrUnauthenticated
	}

	var req domain.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}

	updated, err := h.userUsecase.UpdateProfile(ctx, user.ID, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}
