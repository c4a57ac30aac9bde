package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"blog-service/app/domain"
	"blog-service/app/port"
	"blog-service/app/rest/middleware"
	apperrors "blog-service/app/utils/errors"
)

// ArticleHandler handles article and comment HTTP requests
type ArticleHandler struct {
	articleUsecase port.ArticleUsecase
	logger         *slog.Logger
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(articleUsecase port.ArticleUsecase, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{
		articleUsecase: articleUsecase,
		logger:         logger,
	}
}

// List returns the article listing
// @Summary List articles
// @Description List articles newest first with author name and comment count
// @Tags article
// @Accept json
// @Produce json
// @Param limit query int false "Maximum number of items"
// @Param offset query int false "Number of items to skip"
// @Success 200 {object} domain.ArticleList
// @Failure 400 {object} ErrorResponse
// @Router /article [get]
func (h *ArticleHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	query, err := parseListQuery(c)
	if err != nil {
		return err
	}

	list, err := h.articleUsecase.List(ctx, query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, list)
}

// GetBySlug returns one article with author and comments
// @Summary Get article
// @Description Return the full article behind a slug
// @Tags article
// @Accept json
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} domain.Article
// @Failure 404 {object} ErrorResponse
// @Router /article/{slug} [get]
func (h *ArticleHandler) GetBySlug(c echo.Context) error {
	ctx := c.Request().Context()

	article, err := h.articleUsecase.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, article)
}

// Create makes the authenticated user the author of a new article
// @Summary Create article
// @Description Create an article owned by the authenticated user
// @Tags article
// @Accept json
// @Produce json
// @Param body body domain.CreateArticleRequest true "Article creation request"
// @Success 201 {object} domain.Article
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /article [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.CreateArticleRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}

	article, err := h.articleUsecase.Create(ctx, middleware.CurrentUser(c), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, article)
}

// Update partially updates an article owned by the authenticated user
// @Summary Update article
// @Description Apply the provided fields to an article owned by the caller
// @Tags article
// @Accept json
// @Produce json
// @Param id path string true "Article ID"
// @Param body body domain.UpdateArticleRequest true "Article update request"
// @Success 200 {object} domain.Article
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /article/{id} [patch]
func (h *ArticleHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.NewNotFound("article")
	}

	var req domain.UpdateArticleRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}

	article, err := h.articleUsecase.Update(ctx, middleware.CurrentUser(c), articleID, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, article)
}

// Delete removes an article owned by the authenticated user
// @Summary Delete article
// @Description Delete an article and its comments
// @Tags article
// @Accept json
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} NotFoundResponse
// @Router /article/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, NotFoundResponse{NotFound: true})
	}

	if err := h.articleUsecase.Delete(ctx, middleware.CurrentUser(c), articleID); err != nil {
		// Deleting something that is not there answers with the notFound
		// flag instead of the generic error shape.
		if apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
			return c.JSON(http.StatusNotFound, NotFoundResponse{NotFound: true})
		}
		return err
	}

	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// CreateComment appends a comment to the article behind a slug
// @Summary Create comment
// @Description Add a comment by the authenticated user to an article
// @Tags article
// @Accept json
// @Produce json
// @Param slug path string true "Article slug"
// @Param body body domain.CreateCommentRequest true "Comment creation request"
// @Success 201 {object} domain.Comment
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /article/{slug}/comment [post]
func (h *ArticleHandler) CreateComment(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}

	comment, err := h.articleUsecase.AddComment(ctx, middleware.CurrentUser(c), c.Param("slug"), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, comment)
}

// parseListQuery reads the optional limit and offset query parameters.
// Absent parameters stay nil; anything that is not a number is rejected.
func parseListQuery(c echo.Context) (port.ListQuery, error) {
	var query port.ListQuery

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return query, apperrors.NewValidationError("limit must be a number")
		}
		query.Limit = &limit
	}

	if raw := c.QueryParam("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return query, apperrors.NewValidationError("offset must be a number")
		}
		query.Offset = &offset
	}

	return query, nil
}
