package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/foodgram-backend/internal/app/service"
	apperrors "github.com/ikkim/foodgram-backend/internal/errors"
	"github.com/ikkim/foodgram-backend/internal/middleware"
)

// AdminController serves maintenance actions restricted to administrators
type AdminController struct {
	mediaService service.MediaService
	tagService   service.TagService
}

func NewAdminController(mediaService service.MediaService, tagService service.TagService) *AdminController {
	return &AdminController{
		mediaService: mediaService,
		tagService:   tagService,
	}
}

// PurgeOrphanImages runs the orphan image cleanup immediately
// POST /api/admin/orphan_images/purge
func (ctrl *AdminController) PurgeOrphanImages(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID, _ := middleware.GetUserID(c)

	purged, err := ctrl.mediaService.PurgeOrphans(c.Request.Context())
	if err != nil {
		log.Error("Failed to purge orphan images", err, map[string]interface{}{
			"user_id": userID,
			"purged":  purged,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Orphan images purged on request", map[string]interface{}{
		"user_id": userID,
		"purged":  purged,
	})
	c.JSON(http.StatusOK, gin.H{"purged": purged})
}

// InvalidateTagCache drops the cached tag list
// DELETE /api/admin/tags/cache
func (ctrl *AdminController) InvalidateTagCache(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if err := ctrl.tagService.InvalidateCache(c.Request.Context()); err != nil {
		log.Error("Failed to invalidate tag cache", err)
		apperrors.InternalError(c, "")
		return
	}

	c.Status(http.StatusNoContent)
}
