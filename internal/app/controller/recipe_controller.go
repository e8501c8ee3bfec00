package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/foodgram-backend/internal/app/service"
	apperrors "github.com/ikkim/foodgram-backend/internal/errors"
	"github.com/ikkim/foodgram-backend/internal/middleware"
)

type RecipeController struct {
	recipeService service.RecipeService
}

func NewRecipeController(recipeService service.RecipeService) *RecipeController {
	return &RecipeController{
		recipeService: recipeService,
	}
}

type IngredientAmountRequest struct {
	ID       uint `json:"id"`
	Quantity int  `json:"quantity"`
}

// RecipeWriteRequest is the create and update payload.
// Field rules are checked by the service so errors carry the field name.
type RecipeWriteRequest struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	CookTime    int                       `json:"cook_time"`
	Image       string                    `json:"image"`
	Tags        []uint                    `json:"tags"`
	Ingredients []IngredientAmountRequest `json:"ingredients"`
}

func (r *RecipeWriteRequest) toInput() service.RecipeInput {
	input := service.RecipeInput{
		Name:        r.Name,
		Description: r.Description,
		CookTime:    r.CookTime,
		Image:       r.Image,
		TagIDs:      r.Tags,
		Ingredients: make([]service.IngredientAmount, 0, len(r.Ingredients)),
	}
	for _, ing := range r.Ingredients {
		input.Ingredients = append(input.Ingredients, service.IngredientAmount{
			IngredientID: ing.ID,
			Quantity:     ing.Quantity,
		})
	}
	return input
}

// parseFlag reads a 0/1 (or true/false) query flag; nil when absent or malformed
func parseFlag(c *gin.Context, name string) *bool {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

// ListRecipes returns a filtered page of recipes
// GET /api/recipes?author=&tags=&is_favorited=&is_in_shopping_cart=&page=&limit=
func (ctrl *RecipeController) ListRecipes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	p := middleware.GetPrincipal(c)
	page, limit := parsePage(c)

	query := service.RecipeQuery{
		TagSlugs:         c.QueryArray("tags"),
		IsFavorited:      parseFlag(c, "is_favorited"),
		IsInShoppingCart: parseFlag(c, "is_in_shopping_cart"),
		Page:             page,
		Limit:            limit,
	}
	if raw := c.Query("author"); raw != "" {
		authorID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid author")
			return
		}
		id := uint(authorID)
		query.AuthorID = &id
	}

	views, total, err := ctrl.recipeService.ListRecipes(c.Request.Context(), p, query)
	if err != nil {
		log.Error("Failed to list recipes", err, map[string]interface{}{
			"page": page,
		})
		apperrors.Respond(c, err, "list recipes")
		return
	}

	results := make([]RecipeResponse, 0, len(views))
	for i := range views {
		results = append(results, newRecipeResponse(&views[i]))
	}

	c.JSON(http.StatusOK, PageResponse{
		Count:   total,
		Page:    page,
		Limit:   limit,
		Results: results,
	})
}

// GetRecipe returns a single recipe
// GET /api/recipes/:id
func (ctrl *RecipeController) GetRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := ctrl.recipeService.GetRecipe(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		log.Warn("Failed to fetch recipe", map[string]interface{}{
			"recipe_id": id,
			"error":     err.Error(),
		})
		apperrors.Respond(c, err, "get recipe")
		return
	}

	c.JSON(http.StatusOK, newRecipeResponse(view))
}

// CreateRecipe publishes a recipe authored by the requester
// POST /api/recipes
func (ctrl *RecipeController) CreateRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	p := middleware.GetPrincipal(c)

	var req RecipeWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid recipe request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid recipe payload")
		return
	}

	view, err := ctrl.recipeService.CreateRecipe(c.Request.Context(), p, req.toInput())
	if err != nil {
		log.Warn("Failed to create recipe", map[string]interface{}{
			"user_id": p.UserID,
			"error":   err.Error(),
		})
		apperrors.Respond(c, err, "create recipe")
		return
	}

	log.Info("Recipe created", map[string]interface{}{
		"recipe_id": view.Recipe.ID,
		"user_id":   p.UserID,
	})
	c.JSON(http.StatusCreated, newRecipeResponse(view))
}

// UpdateRecipe replaces a recipe's fields, tags and ingredients
// PATCH /api/recipes/:id
func (ctrl *RecipeController) UpdateRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	p := middleware.GetPrincipal(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RecipeWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid recipe request", map[string]interface{}{
			"recipe_id": id,
			"error":     err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid recipe payload")
		return
	}

	view, err := ctrl.recipeService.UpdateRecipe(c.Request.Context(), p, id, req.toInput())
	if err != nil {
		log.Warn("Failed to update recipe", map[string]interface{}{
			"recipe_id": id,
			"user_id":   p.UserID,
			"error":     err.Error(),
		})
		apperrors.Respond(c, err, "update recipe")
		return
	}

	log.Info("Recipe updated", map[string]interface{}{
		"recipe_id": id,
		"user_id":   p.UserID,
	})
	c.JSON(http.StatusOK, newRecipeResponse(view))
}

// DeleteRecipe removes a recipe
// DELETE /api/recipes/:id
func (ctrl *RecipeController) DeleteRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	p := middleware.GetPrincipal(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.recipeService.DeleteRecipe(c.Request.Context(), p, id); err != nil {
		log.Warn("Failed to delete recipe", map[string]interface{}{
			"recipe_id": id,
			"user_id":   p.UserID,
			"error":     err.Error(),
		})
		apperrors.Respond(c, err, "delete recipe")
		return
	}

	log.Info("Recipe deleted", map[string]interface{}{
		"recipe_id": id,
		"user_id":   p.UserID,
	})
	c.Status(http.StatusNoContent)
}
