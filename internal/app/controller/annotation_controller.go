package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/internal/app/service"
	apperrors "github.com/ikkim/foodgram-backend/internal/errors"
	"github.com/ikkim/foodgram-backend/internal/middleware"
	"github.com/ikkim/foodgram-backend/internal/observability"
	"github.com/ikkim/foodgram-backend/internal/report"
)

// AnnotationController serves favorites and the shopping cart
type AnnotationController struct {
	annotationService   service.AnnotationService
	shoppingListService service.ShoppingListService
}

func NewAnnotationController(annotationService service.AnnotationService, shoppingListService service.ShoppingListService) *AnnotationController {
	return &AnnotationController{
		annotationService:   annotationService,
		shoppingListService: shoppingListService,
	}
}

// AddFavorite marks a recipe as favorite
// POST /api/recipes/:id/favorite
func (ctrl *AnnotationController) AddFavorite(c *gin.Context) {
	ctrl.add(c, model.AnnotationFavorite)
}

// RemoveFavorite unmarks a favorite recipe
// DELETE /api/recipes/:id/favorite
func (ctrl *AnnotationController) RemoveFavorite(c *gin.Context) {
	ctrl.remove(c, model.AnnotationFavorite)
}

// AddToCart puts a recipe into the shopping cart
// POST /api/recipes/:id/shopping_cart
func (ctrl *AnnotationController) AddToCart(c *gin.Context) {
	ctrl.add(c, model.AnnotationCart)
}

// RemoveFromCart takes a recipe out of the shopping cart
// DELETE /api/recipes/:id/shopping_cart
func (ctrl *AnnotationController) RemoveFromCart(c *gin.Context) {
	ctrl.remove(c, model.AnnotationCart)
}

func (ctrl *AnnotationController) add(c *gin.Context, kind model.AnnotationKind) {
	log := middleware.GetLoggerFromContext(c)
	p := middleware.GetPrincipal(c)

	recipeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	recipe, err := ctrl.annotationService.Add(c.Request.Context(), p, kind, recipeID)
	if err != nil {
		log.Warn("Failed to add annotation", map[string]interface{}{
			"kind":      string(kind),
			"recipe_id": recipeID,
			"user_id":   p.UserID,
			"error":     err.Error(),
		})
		apperrors.Respond(c, err, "add "+string(kind))
		return
	}

	log.Info("Annotation added", map[string]interface{}{
		"kind":      string(kind),
		"recipe_id": recipeID,
		"user_id":   p.UserID,
	})
	c.JSON(http.StatusCreated, newRecipeShortResponse(recipe))
}

func (ctrl *AnnotationController) remove(c *gin.Context, kind model.AnnotationKind) {
	log := middleware.GetLoggerFromContext(c)
	p := middleware.GetPrincipal(c)

	recipeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.annotationService.Remove(c.Request.Context(), p, kind, recipeID); err != nil {
		log.Warn("Failed to remove annotation", map[string]interface{}{
			"kind":      string(kind),
			"recipe_id": recipeID,
			"user_id":   p.UserID,
			"error":     err.Error(),
		})
		apperrors.Respond(c, err, "remove "+string(kind))
		return
	}

	c.Status(http.StatusNoContent)
}

// DownloadShoppingCart renders the aggregated shopping list as an attachment
// GET /api/recipes/download_shopping_cart?format=txt|xlsx
func (ctrl *AnnotationController) DownloadShoppingCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	p := middleware.GetPrincipal(c)

	format := c.DefaultQuery("format", "txt")
	if format != "txt" && format != "xlsx" {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "format must be txt or xlsx")
		return
	}

	items, err := ctrl.shoppingListService.BuildShoppingList(c.Request.Context(), p)
	if err != nil {
		log.Warn("Failed to build shopping list", map[string]interface{}{
			"user_id": p.UserID,
			"error":   err.Error(),
		})
		apperrors.Respond(c, err, "download shopping cart")
		return
	}

	filename, contentType := report.TextFilename, report.TextContentType
	var body []byte
	if format == "xlsx" {
		filename, contentType = report.XLSXFilename, report.XLSXContentType
		body, err = report.RenderXLSX(items)
		if err != nil {
			log.Error("Failed to render shopping list workbook", err, map[string]interface{}{
				"user_id": p.UserID,
			})
			apperrors.InternalError(c, "")
			return
		}
	} else {
		body = report.RenderText(items)
	}

	observability.ShoppingListExports.WithLabelValues(format).Inc()
	log.Info("Shopping list downloaded", map[string]interface{}{
		"user_id": p.UserID,
		"format":  format,
		"items":   len(items),
	})

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, body)
}
