package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"blog-service/app/domain"
	"blog-service/app/port"
	apperrors "blog-service/app/utils/errors"
	"blog-service/app/utils/validator"
)

// ArticleUseCase implements article-facing business logic
type ArticleUseCase struct {
	articleRepo port.ArticleRepository
	listCache   port.ListingCache
	validator   *validator.Validator
	logger      *slog.Logger
}

// NewArticleUseCase creates a new ArticleUseCase instance
func NewArticleUseCase(articleRepo port.ArticleRepository, listCache port.ListingCache, logger *slog.Logger) *ArticleUseCase {
	return &ArticleUseCase{
		articleRepo: articleRepo,
		listCache:   listCache,
		validator:   validator.New(),
		logger:      logger.With("component", "article_usecase"),
	}
}

// List returns a listing page, served from the passive cache when a fresh
// entry exists for the exact same query.
func (uc *ArticleUseCase) List(ctx context.Context, query port.ListQuery) (*domain.ArticleList, error) {
	if query.Limit != nil && *query.Limit < 0 {
		return nil, apperrors.NewValidationError("limit must not be negative")
	}
	if query.Offset != nil && *query.Offset < 0 {
		return nil, apperrors.NewValidationError("offset must not be negative")
	}

	if cached, found := uc.listCache.Get(query); found {
		return cached, nil
	}

	list, err := uc.articleRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	uc.listCache.Set(query, list)
	return list, nil
}

// GetBySlug loads the full article with author and comments.
func (uc *ArticleUseCase) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	return uc.articleRepo.GetBySlug(ctx, slug)
}

// Create makes author the owner of a new article.
func (uc *ArticleUseCase) Create(ctx context.Context, author *domain.User, req *domain.CreateArticleRequest) (*domain.Article, error) {
	if author == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := uc.validator.Validate(req); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	article := domain.NewArticle(req.Title, req.Description, req.Body, author.ID, req.Tags)
	if article.Slug == "" {
		return nil, apperrors.NewValidationError("title must contain at least one alphanumeric character")
	}

	if err := uc.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	uc.listCache.Invalidate()
	article.Author = author
	return article, nil
}

// Update applies allow-listed fields to an article owned by caller. The
// ownership check runs before any mutating repository call.
func (uc *ArticleUseCase) Update(ctx context.Context, caller *domain.User, articleID uuid.UUID, req *domain.UpdateArticleRequest) (*domain.Article, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	article, err := uc.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !article.IsAuthoredBy(caller) {
		return nil, apperrors.ErrForbidden
	}

	article.ApplyUpdate(req)

	if err := uc.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	uc.listCache.Invalidate()
	return article, nil
}

// Delete removes an article owned by caller; its comments go with it.
func (uc *ArticleUseCase) Delete(ctx context.Context, caller *domain.User, articleID uuid.UUID) error {
	if caller == nil {
		return apperrors.ErrUnauthenticated
	}

	article, err := uc.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return err
	}
	if !article.IsAuthoredBy(caller) {
		return apperrors.ErrForbidden
	}

	if err := uc.articleRepo.Delete(ctx, articleID); err != nil {
		return err
	}

	uc.listCache.Invalidate()
	return nil
}

// AddComment appends a comment by author to the article behind slug; any
// authenticated user may comment.
func (uc *ArticleUseCase) AddComment(ctx context.Context, author *domain.User, slug string, req *domain.CreateCommentRequest) (*domain.Comment, error) {
	if author == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := uc.validator.Validate(req); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	article, err := uc.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	comment := domain.NewComment(req.Body, author.ID, article.ID)
	if err := uc.articleRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	// Listing comment counts must reflect the new comment right away
	uc.listCache.Invalidate()
	comment.Author = author
	return comment, nil
}
