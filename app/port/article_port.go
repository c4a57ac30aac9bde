package port

//go:generate mockgen -source=article_port.go -destination=../mocks/mock_article_port.go -package=mocks

import (
	"context"

	"github.com/google/uuid"

	"blog-service/app/domain"
)

// ListQuery narrows an article listing. Nil limit means all remaining
// items; nil offset means start from the top.
type ListQuery struct {
	Limit  *int
	Offset *int
}

// ArticleUsecase defines article-facing business logic
type ArticleUsecase interface {
	// List returns lightweight projections plus the unpaginated total.
	List(ctx context.Context, query ListQuery) (*domain.ArticleList, error)
	// GetBySlug loads the full article with author and comments.
	GetBySlug(ctx context.Context, slug string) (*domain.Article, error)
	// Create makes author the owner of a new article.
	Create(ctx context.Context, author *domain.User, req *domain.CreateArticleRequest) (*domain.Article, error)
	// Update applies allow-listed fields; only the author may call it.
	Update(ctx context.Context, caller *domain.User, articleID uuid.UUID, req *domain.UpdateArticleRequest) (*domain.Article, error)
	// Delete removes the article and its comments; only the author may call it.
	Delete(ctx context.Context, caller *domain.User, articleID uuid.UUID) error
	// AddComment appends a comment by author to the article behind slug.
	AddComment(ctx context.Context, author *domain.User, slug string, req *domain.CreateCommentRequest) (*domain.Comment, error)
}

// ArticleRepository defines article data access
type ArticleRepository interface {
	List(ctx context.Context, query ListQuery) (*domain.ArticleList, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Article, error)
	GetByID(ctx context.Context, articleID uuid.UUID) (*domain.Article, error)
	Create(ctx context.Context, article *domain.Article) error
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, articleID uuid.UUID) error
	AddComment(ctx context.Context, comment *domain.Comment) error
}

// ListingCache is a passive, best-effort cache for listing results.
// Losing it never changes correctness, only latency.
type ListingCache interface {
	Get(query ListQuery) (*domain.ArticleList, bool)
	Set(query ListQuery, list *domain.ArticleList)
	Invalidate()
}
