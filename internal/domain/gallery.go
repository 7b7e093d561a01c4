package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validatorInstance is a package-level validator instance.
// Using a single instance is more efficient as it caches struct information.
var validatorInstance = validator.New()

// UserProfile is the signed-in user as known to the remote service.
type UserProfile struct {
	ID        string
	Name      string
	About     string
	AvatarURL string
}

// UserSet is a set of user ids.
type UserSet map[string]struct{}

// NewUserSet builds a set from the given ids.
func NewUserSet(ids ...string) UserSet {
	s := make(UserSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is a member. An empty id is never a member.
func (s UserSet) Has(id string) bool {
	if id == "" {
		return false
	}
	_, ok := s[id]
	return ok
}

// Len returns the number of members.
func (s UserSet) Len() int {
	return len(s)
}

// Card is an image record owned by one user and liked by any number of users.
type Card struct {
	ID       string
	Name     string
	ImageURL string
	OwnerID  string
	LikedBy  UserSet
}

// ProfileInput is the payload of the profile edit form.
type ProfileInput struct {
	Name  string `json:"name" form:"name" validate:"required,min=2,max=40"`
	About string `json:"about" form:"about" validate:"required,min=2,max=200"`
}

// CardInput is the payload of the card creation form.
type CardInput struct {
	Name     string `json:"name" form:"name" validate:"required,min=2,max=30"`
	ImageURL string `json:"link" form:"link" validate:"required,url"`
}

// AvatarInput is the payload of the avatar form.
type AvatarInput struct {
	AvatarURL string `json:"avatar" form:"avatar" validate:"required,url"`
}

// Validate runs the struct tag rules on a form payload. The remote service
// remains the authority; this only mirrors the browser-side constraints.
func Validate(input any) error {
	if err := validatorInstance.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
