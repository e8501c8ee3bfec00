package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/foodgram-backend/internal/app/service"
	apperrors "github.com/ikkim/foodgram-backend/internal/errors"
	"github.com/ikkim/foodgram-backend/internal/middleware"
)

// CatalogController serves the read-only tag and ingredient catalogs
type CatalogController struct {
	tagService        service.TagService
	ingredientService service.IngredientService
}

func NewCatalogController(tagService service.TagService, ingredientService service.IngredientService) *CatalogController {
	return &CatalogController{
		tagService:        tagService,
		ingredientService: ingredientService,
	}
}

// ListTags returns all tags
// GET /api/tags
func (ctrl *CatalogController) ListTags(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tags, err := ctrl.tagService.ListTags(c.Request.Context())
	if err != nil {
		log.Error("Failed to list tags", err)
		apperrors.Respond(c, err, "list tags")
		return
	}

	c.JSON(http.StatusOK, tags)
}

// GetTag returns a tag
// GET /api/tags/:id
func (ctrl *CatalogController) GetTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tag, err := ctrl.tagService.GetTag(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err, "get tag")
		return
	}

	c.JSON(http.StatusOK, tag)
}

// ListIngredients returns ingredients whose name starts with ?name=
// GET /api/ingredients
func (ctrl *CatalogController) ListIngredients(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ingredients, err := ctrl.ingredientService.ListIngredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		log.Error("Failed to list ingredients", err, map[string]interface{}{
			"name": c.Query("name"),
		})
		apperrors.Respond(c, err, "list ingredients")
		return
	}

	c.JSON(http.StatusOK, ingredients)
}

// GetIngredient returns an ingredient
// GET /api/ingredients/:id
func (ctrl *CatalogController) GetIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ingredient, err := ctrl.ingredientService.GetIngredient(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err, "get ingredient")
		return
	}

	c.JSON(http.StatusOK, ingredient)
}
