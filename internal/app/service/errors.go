package service

import (
	apperrors "github.com/ikkim/foodgram-backend/internal/errors"
)

// 서비스 레이어 도메인 에러
var (
	ErrEmailAlreadyExists    = apperrors.ConflictErr(apperrors.AuthEmailAlreadyExists, "a user with this email already exists")
	ErrUsernameAlreadyExists = apperrors.ConflictErr(apperrors.AuthUsernameExists, "a user with this username already exists")
	ErrInvalidCredentials    = apperrors.Authentication(apperrors.AuthInvalidCredentials, "invalid email or password")
	ErrWrongPassword         = apperrors.ValidationField(apperrors.AuthWrongPassword, "current_password", "current password is incorrect")
	ErrUserNotFound          = apperrors.NotFoundErr(apperrors.UserNotFound, "user not found")

	ErrRecipeNotFound      = apperrors.NotFoundErr(apperrors.RecipeNotFound, "recipe not found")
	ErrIngredientNotFound  = apperrors.NotFoundErr(apperrors.IngredientNotFound, "ingredient not found")
	ErrTagNotFound         = apperrors.NotFoundErr(apperrors.TagNotFound, "tag not found")
	ErrRecipeNameRequired  = apperrors.ValidationField(apperrors.ValidationRequired, "name", "this field may not be blank")
	ErrInvalidCookTime     = apperrors.ValidationField(apperrors.RecipeInvalidCookTime, "cook_time", "cook time must be at least 1 minute")
	ErrIngredientsRequired = apperrors.ValidationField(apperrors.RecipeIngredientsRequired, "ingredients", "at least one ingredient required")
	ErrDuplicateIngredient = apperrors.ValidationField(apperrors.RecipeDuplicateIngredient, "ingredients", "ingredient must be unique")
	ErrInvalidQuantity     = apperrors.ValidationField(apperrors.RecipeInvalidQuantity, "ingredients", "minimum quantity is 1")
	ErrInvalidImage        = apperrors.ValidationField(apperrors.RecipeInvalidImage, "image", "image must be a base64 data URI")

	ErrFavoriteExists   = apperrors.ConflictErr(apperrors.FavoriteAlreadyExists, "recipe already exists in favorites")
	ErrFavoriteNotFound = apperrors.NotFoundErr(apperrors.FavoriteNotFound, "recipe is not present in favorites")
	ErrCartExists       = apperrors.ConflictErr(apperrors.CartAlreadyExists, "recipe already exists in the shopping cart")
	ErrCartNotFound     = apperrors.NotFoundErr(apperrors.CartNotFound, "recipe is not present in the shopping cart")

	ErrSelfFollow       = apperrors.Validation(apperrors.FollowSelfForbidden, "self-follow not allowed")
	ErrAlreadyFollowing = apperrors.ConflictErr(apperrors.FollowAlreadyExists, "already subscribed to this author")
	ErrNotFollowing     = apperrors.NotFoundErr(apperrors.FollowNotFound, "not subscribed to this author")
)

const (
	DefaultPageSize = 6
	MaxPageSize     = 100
)

// MaxPage caps page numbers so (page-1)*limit cannot overflow
const MaxPage = 1_000_000

// pageBounds turns a 1-based page number and page size into offset/limit
func pageBounds(page, limit int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	return (page - 1) * limit, limit
}
