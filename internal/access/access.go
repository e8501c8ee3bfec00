// Package access holds the per-request principal and the recipe ownership policy.
package access

import (
	"github.com/ikkim/foodgram-backend/internal/app/model"
	apperrors "github.com/ikkim/foodgram-backend/internal/errors"
)

var (
	ErrNotAuthenticated = apperrors.Authentication(apperrors.AuthUnauthorized, "authentication credentials were not provided")
	ErrNotAuthor        = apperrors.Permission(apperrors.AuthzAuthorOnly, "only the author or an admin can modify this recipe")
)

// Principal is the authenticated requester, computed once per request.
// The zero value is the anonymous requester.
type Principal struct {
	UserID uint
	Role   model.UserRole
	Admin  bool
}

func Anonymous() Principal {
	return Principal{}
}

// NewPrincipal builds the principal from verified token claims
func NewPrincipal(userID uint, role model.UserRole) Principal {
	return Principal{
		UserID: userID,
		Role:   role,
		Admin:  role == model.RoleAdmin,
	}
}

func (p Principal) IsAuthenticated() bool {
	return p.UserID != 0
}

// RequireAuthenticated fails for the anonymous principal
func (p Principal) RequireAuthenticated() error {
	if !p.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

// CanModifyRecipe allows the recipe author and admins. Recipes without an
// author (author account deleted) can only be modified by admins.
func CanModifyRecipe(p Principal, recipe *model.Recipe) error {
	if err := p.RequireAuthenticated(); err != nil {
		return err
	}
	if p.Admin {
		return nil
	}
	if recipe.AuthorID != nil && *recipe.AuthorID == p.UserID {
		return nil
	}
	return ErrNotAuthor
}
