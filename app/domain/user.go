package domain

import (
	"time"

	"github.com/google/uuid"
)

// SocialLinks holds a user's optional social profile links.
type SocialLinks struct {
	Twitter  string `json:"twitter,omitempty"`
	Facebook string `json:"facebook,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// User represents a registered account. The password hash is never
// serialized; Token is transient and only populated at sign-up/sign-in.
type User struct {
	ID           uuid.UUID    `json:"id"`
	Email        string       `json:"email"`
	FullName     string       `json:"fullName"`
	PasswordHash string       `json:"-"`
	Bio          string       `json:"bio,omitempty"`
	Social       *SocialLinks `json:"social,omitempty"`
	Token        string       `json:"token,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// NewUser creates a user with a generated ID. The caller provides an
// already-hashed password.
func NewUser(email, fullName, passwordHash string) *User {
	return &User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}

// SignUpRequest is the sign-up payload.
type SignUpRequest struct {
	Email    string       `json:"email" validate:"required,email"`
	FullName string       `json:"fullName" validate:"required"`
	Password string       `json:"password" validate:"required,min=8"`
	Bio      string       `json:"bio,omitempty"`
	Social   *SocialLinks `json:"social,omitempty"`
}

// SignInRequest is the sign-in payload.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries the mutable profile fields. Nil fields are
// left untouched. Email and password changes are deliberately not part of
// this surface.
type UpdateProfileRequest struct {
	FullName *string      `json:"fullName,omitempty"`
	Bio      *string      `json:"bio,omitempty"`
	Social   *SocialLinks `json:"social,omitempty"`
}

// ApplyProfileUpdate copies the recognized mutable fields onto the user.
// Protected fields (id, email, password hash) cannot be reached through it.
func (u *User) ApplyProfileUpdate(req *UpdateProfileRequest) {
	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.Social != nil {
		u.Social = req.Social
	}
}

// DisplayName returns the name shown on articles and comments.
func (u *User) DisplayName() string {
	return u.FullName
}
