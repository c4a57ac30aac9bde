package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Article is a blog post. Body carries the full text and is only loaded on
// detail lookups; listings use ArticleListItem projections instead.
type Article struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Body        string    `json:"text"`
	AuthorID    uuid.UUID `json:"-"`
	Author      *User     `json:"author,omitempty"`
	Tags        []string  `json:"tags"`
	Comments    []Comment `json:"comments,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewArticle creates an article owned by the given author. The slug is
// derived from the title; uniqueness is settled by the repository.
func NewArticle(title, description, body string, authorID uuid.UUID, tags []string) *Article {
	if tags == nil {
		tags = []string{}
	}
	return &Article{
		ID:          uuid.New(),
		Slug:        Slugify(title),
		Title:       title,
		Description: description,
		Body:        body,
		AuthorID:    authorID,
		Tags:        tags,
		CreatedAt:   time.Now().UTC(),
	}
}

// IsAuthoredBy reports whether the user owns this article. Update and
// delete must be gated on it before any repository call.
func (a *Article) IsAuthoredBy(user *User) bool {
	return user != nil && a.AuthorID == user.ID
}

// ApplyUpdate copies the recognized mutable fields onto the article.
// The slug is immutable after creation so article URLs stay stable even
// when the title changes.
func (a *Article) ApplyUpdate(req *UpdateArticleRequest) {
	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.Body != nil {
		a.Body = *req.Body
	}
	if req.Tags != nil {
		a.Tags = req.Tags
	}
}

// ArticleListItem is the lightweight listing projection. It never carries
// the article body.
type ArticleListItem struct {
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Tags          []string  `json:"tags"`
	AuthorName    string    `json:"authorName"`
	TotalComments int       `json:"totalComments"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ArticleList is a page of listing items plus the unpaginated total.
type ArticleList struct {
	Items []ArticleListItem `json:"items"`
	Total int               `json:"total"`
}

// CreateArticleRequest is the article creation payload.
type CreateArticleRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Body        string   `json:"text" validate:"required"`
	Tags        []string `json:"tags,omitempty"`
}

// UpdateArticleRequest carries the mutable article fields. Nil fields are
// left untouched.
type UpdateArticleRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Body        *string  `json:"text,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)
	slugDashRuns     = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a URL-safe slug from a title: lowercased, runs of
// non-alphanumerics collapsed to single hyphens, edges trimmed.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	slug = slugDashRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// DisambiguateSlug appends a counter suffix for slug collisions:
// "my-title" -> "my-title-2", "my-title-3", ...
func DisambiguateSlug(base string, attempt int) string {
	if attempt <= 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt)
}
