package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to an article and references its author. Comments have
// no independent deletion; they go away with their article.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	Body      string    `json:"text"`
	AuthorID  uuid.UUID `json:"-"`
	Author    *User     `json:"author,omitempty"`
	ArticleID uuid.UUID `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewComment creates a comment on the given article.
func NewComment(body string, authorID, articleID uuid.UUID) *Comment {
	return &Comment{
		ID:        uuid.New(),
		Body:      body,
		AuthorID:  authorID,
		ArticleID: articleID,
		CreatedAt: time.Now().UTC(),
	}
}

// CreateCommentRequest is the comment creation payload.
type CreateCommentRequest struct {
	Body string `json:"text" validate:"required"`
}
