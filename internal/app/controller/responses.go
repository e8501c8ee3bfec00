package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/internal/app/service"
	apperrors "github.com/ikkim/foodgram-backend/internal/errors"
)

// 응답 DTO

type UserResponse struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

type RecipeIngredientResponse struct {
	ID              uint                  `json:"id"`
	Name            string                `json:"name"`
	MeasurementUnit model.MeasurementUnit `json:"measurement_unit"`
	Quantity        int                   `json:"quantity"`
}

type RecipeResponse struct {
	ID               uint                       `json:"id"`
	Name             string                     `json:"name"`
	Description      string                     `json:"description"`
	CookTime         int                        `json:"cook_time"`
	Image            string                     `json:"image"`
	Author           *UserResponse              `json:"author"`
	Tags             []model.Tag                `json:"tags"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
}

type RecipeShortResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	CookTime int    `json:"cook_time"`
}

type SubscriptionResponse struct {
	UserResponse
	Recipes      []RecipeShortResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}

type PageResponse struct {
	Count   int64       `json:"count"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
	Results interface{} `json:"results"`
}

func newUserResponse(u *model.User, subscribed bool) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}

func newRecipeResponse(v *service.RecipeView) RecipeResponse {
	r := v.Recipe
	resp := RecipeResponse{
		ID:               r.ID,
		Name:             r.Name,
		Description:      r.Description,
		CookTime:         r.CookTime,
		Image:            r.Image,
		Author:           newUserResponse(r.Author, v.AuthorSubscribed),
		Tags:             make([]model.Tag, 0, len(r.RecipeTags)),
		Ingredients:      make([]RecipeIngredientResponse, 0, len(r.IngredientLines)),
		IsFavorited:      r.IsFavorited,
		IsInShoppingCart: r.IsInShoppingCart,
	}
	for _, rt := range r.RecipeTags {
		resp.Tags = append(resp.Tags, rt.Tag)
	}
	for _, line := range r.IngredientLines {
		resp.Ingredients = append(resp.Ingredients, RecipeIngredientResponse{
			ID:              line.IngredientID,
			Name:            line.Ingredient.Name,
			MeasurementUnit: line.Ingredient.MeasurementUnit,
			Quantity:        line.Quantity,
		})
	}
	return resp
}

func newRecipeShortResponse(r *model.Recipe) RecipeShortResponse {
	return RecipeShortResponse{
		ID:       r.ID,
		Name:     r.Name,
		Image:    r.Image,
		CookTime: r.CookTime,
	}
}

func newSubscriptionResponse(s *service.Subscription) SubscriptionResponse {
	resp := SubscriptionResponse{
		UserResponse: *newUserResponse(s.Author, s.IsSubscribed),
		Recipes:      make([]RecipeShortResponse, 0, len(s.Recipes)),
		RecipesCount: s.RecipesCount,
	}
	for i := range s.Recipes {
		resp.Recipes = append(resp.Recipes, newRecipeShortResponse(&s.Recipes[i]))
	}
	return resp
}

// parseIDParam reads a positive numeric path parameter; it responds with 400 and returns false otherwise
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// parsePage reads ?page= and ?limit=; invalid values fall back to defaults
func parsePage(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	if page > service.MaxPage {
		page = service.MaxPage
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultPageSize)))
	if err != nil || limit < 1 {
		limit = service.DefaultPageSize
	}
	if limit > service.MaxPageSize {
		limit = service.MaxPageSize
	}
	return page, limit
}

// parseRecipesLimit reads ?recipes_limit=; 0 means no limit
func parseRecipesLimit(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("recipes_limit"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
