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

// slugAttempts bounds the slug disambiguation loop.
const slugAttempts = 20

// ArticleRepository implements port.ArticleRepository for PostgreSQL
type ArticleRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewArticleRepository creates a new PostgreSQL article repository
func NewArticleRepository(db DatabaseIface, logger *slog.Logger) port.ArticleRepository {
	return &ArticleRepository{
		db:     db,
		logger: logger.With("component", "article_repository"),
	}
}

// List returns listing projections ordered newest-first (id as tie-break,
// so pagination is stable) plus the unpaginated total. A nil limit means
// all remaining rows.
func (r *ArticleRepository) List(ctx context.Context, query port.ListQuery) (*domain.ArticleList, error) {
	countQuery := `SELECT COUNT(*) FROM articles`

	var total int
	if err := r.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		r.logger.Error("failed to count articles", "error", err)
		return nil, apperrors.NewDatabaseError(err)
	}

	// LIMIT NULL means no limit
	listQuery := `
		SELECT a.slug, a.title, a.description, a.tags, u.full_name,
		       (SELECT COUNT(*) FROM comments c WHERE c.article_id = a.id),
		       a.created_at
		FROM articles a
		JOIN users u ON u.id = a.author_id
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $1 OFFSET $2`

	offset := 0
	if query.Offset != nil {
		offset = *query.Offset
	}

	rows, err := r.db.Query(ctx, listQuery, query.Limit, offset)
	if err != nil {
		r.logger.Error("failed to list articles", "error", err)
		return nil, apperrors.NewDatabaseError(err)
	}
	defer rows.Close()

	items := make([]domain.ArticleListItem, 0)
	for rows.Next() {
		var item domain.ArticleListItem
		if err := rows.Scan(
			&item.Slug,
			&item.Title,
			&item.Description,
			&item.Tags,
			&item.AuthorName,
			&item.TotalComments,
			&item.CreatedAt,
		); err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		if item.Tags == nil {
			item.Tags = []string{}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	return &domain.ArticleList{Items: items, Total: total}, nil
}

// GetBySlug loads the full article with its author, comments, and each
// comment's author.
func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	query := `
		SELECT a.id, a.slug, a.title, a.description, a.body, a.author_id, a.tags, a.created_at,
		       u.email, u.full_name, u.bio, u.created_at
		FROM articles a
		JOIN users u ON u.id = a.author_id
		WHERE a.slug = $1`

	article := &domain.Article{}
	author := &domain.User{}
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&article.ID,
		&article.Slug,
		&article.Title,
		&article.Description,
		&article.Body,
		&article.AuthorID,
		&article.Tags,
		&article.CreatedAt,
		&author.Email,
		&author.FullName,
		&author.Bio,
		&author.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("article")
		}
		r.logger.Error("failed to get article by slug", "slug", slug, "error", err)
		return nil, apperrors.NewDatabaseError(err)
	}
	author.ID = article.AuthorID
	article.Author = author
	if article.Tags == nil {
		article.Tags = []string{}
	}

	comments, err := r.loadComments(ctx, article.ID)
	if err != nil {
		return nil, err
	}
	article.Comments = comments

	return article, nil
}

// GetByID loads an article without relations; enough for ownership checks
// and partial updates.
func (r *ArticleRepository) GetByID(ctx context.Context, articleID uuid.UUID) (*domain.Article, error) {
	query := `
		SELECT id, slug, title, description, body, author_id, tags, created_at
		FROM articles
		WHERE id = $1`

	article := &domain.Article{}
	err := r.db.QueryRow(ctx, query, articleID).Scan(
		&article.ID,
		&article.Slug,
		&article.Title,
		&article.Description,
		&article.Body,
		&article.AuthorID,
		&article.Tags,
		&article.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("article")
		}
		r.logger.Error("failed to get article by id", "article_id", articleID, "error", err)
		return nil, apperrors.NewDatabaseError(err)
	}
	if article.Tags == nil {
		article.Tags = []string{}
	}
	return article, nil
}

// Create inserts a new article, settling slug uniqueness inside one
// transaction: the derived slug gets a counter suffix until it is free.
func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	base := article.Slug

	err := WithTx(ctx, r.db, func(tx pgx.Tx) error {
		existsQuery := `SELECT EXISTS(SELECT 1 FROM articles WHERE slug = $1)`

		for attempt := 1; attempt <= slugAttempts; attempt++ {
			candidate := domain.DisambiguateSlug(base, attempt)

			var taken bool
			if err := tx.QueryRow(ctx, existsQuery, candidate).Scan(&taken); err != nil {
				return apperrors.NewDatabaseError(err)
			}
			if !taken {
				article.Slug = candidate
				break
			}
			if attempt == slugAttempts {
				return apperrors.ErrDuplicateSlug
			}
		}

		insertQuery := `
			INSERT INTO articles (id, slug, title, description, body, author_id, tags, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

		_, err := tx.Exec(ctx, insertQuery,
			article.ID,
			article.Slug,
			article.Title,
			article.Description,
			article.Body,
			article.AuthorID,
			article.Tags,
			article.CreatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				// lost the check-then-insert race
				return apperrors.ErrDuplicateSlug
			}
			return apperrors.NewDatabaseError(err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("failed to create article", "slug", base, "error", err)
		return err
	}

	r.logger.Info("article created", "article_id", article.ID, "slug", article.Slug)
	return nil
}

// Update persists the mutable article fields. The slug column is left
// alone on purpose.
func (r *ArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	query := `
		UPDATE articles
		SET title = $2, description = $3, body = $4, tags = $5
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		article.ID,
		article.Title,
		article.Description,
		article.Body,
		article.Tags,
	)
	if err != nil {
		r.logger.Error("failed to update article", "article_id", article.ID, "error", err)
		return apperrors.NewDatabaseError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("article")
	}
	return nil
}

// Delete removes the article; its comments cascade at the schema level.
func (r *ArticleRepository) Delete(ctx context.Context, articleID uuid.UUID) error {
	query := `DELETE FROM articles WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, articleID)
	if err != nil {
		r.logger.Error("failed to delete article", "article_id", articleID, "error", err)
		return apperrors.NewDatabaseError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("article")
	}

	r.logger.Info("article deleted", "article_id", articleID)
	return nil
}

// AddComment appends a comment to its article.
func (r *ArticleRepository) AddComment(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (id, body, author_id, article_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		comment.ID,
		comment.Body,
		comment.AuthorID,
		comment.ArticleID,
		comment.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to add comment", "article_id", comment.ArticleID, "error", err)
		return apperrors.NewDatabaseError(err)
	}

	r.logger.Info("comment added", "comment_id", comment.ID, "article_id", comment.ArticleID)
	return nil
}

// loadComments loads an article's comments, oldest first, each with its
// author's display fields.
func (r *ArticleRepository) loadComments(ctx context.Context, articleID uuid.UUID) ([]domain.Comment, error) {
	query := `
		SELECT c.id, c.body, c.author_id, c.created_at, u.email, u.full_name
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.article_id = $1
		ORDER BY c.created_at ASC, c.id ASC`

	rows, err := r.db.Query(ctx, query, articleID)
	if err != nil {
		r.logger.Error("failed to load comments", "article_id", articleID, "error", err)
		return nil, apperrors.NewDatabaseError(err)
	}
	defer rows.Close()

	comments := make([]domain.Comment, 0)
	for rows.Next() {
		comment := domain.Comment{ArticleID: articleID, Author: &domain.User{}}
		if err := rows.Scan(
			&comment.ID,
			&comment.Body,
			&comment.AuthorID,
			&comment.CreatedAt,
			&comment.Author.Email,
			&comment.Author.FullName,
		); err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		comment.Author.ID = comment.AuthorID
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return comments, nil
}
