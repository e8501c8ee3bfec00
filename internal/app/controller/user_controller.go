package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/foodgram-backend/internal/app/service"
	apperrors "github.com/ikkim/foodgram-backend/internal/errors"
	"github.com/ikkim/foodgram-backend/internal/middleware"
)

// UserController serves user profiles and subscriptions
type UserController struct {
	userService   service.UserService
	followService service.FollowService
}

func NewUserController(userService service.UserService, followService service.FollowService) *UserController {
	return &UserController{
		userService:   userService,
		followService: followService,
	}
}

// ListUsers returns a page of users
// GET /api/users
func (ctrl *UserController) ListUsers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	p := middleware.GetPrincipal(c)
	page, limit := parsePage(c)

	profiles, total, err := ctrl.userService.ListUsers(c.Request.Context(), p.UserID, page, limit)
	if err != nil {
		log.Error("Failed to list users", err)
		apperrors.Respond(c, err, "list users")
		return
	}

	results := make([]*UserResponse, 0, len(profiles))
	for i := range profiles {
		results = append(results, newUserResponse(profiles[i].User, profiles[i].IsSubscribed))
	}

	c.JSON(http.StatusOK, PageResponse{
		Count:   total,
		Page:    page,
		Limit:   limit,
		Results: results,
	})
}

// GetMe returns the requester's profile
// GET /api/users/me
func (ctrl *UserController) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	ctrl.respondProfile(c, userID, userID)
}

// GetUser returns a user profile
// GET /api/users/:id
func (ctrl *UserController) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ctrl.respondProfile(c, middleware.GetPrincipal(c).UserID, id)
}

func (ctrl *UserController) respondProfile(c *gin.Context, viewerID, userID uint) {
	log := middleware.GetLoggerFromContext(c)

	profile, err := ctrl.userService.GetProfile(c.Request.Context(), viewerID, userID)
	if err != nil {
		log.Warn("Failed to fetch user", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.Respond(c, err, "get user")
		return
	}

	c.JSON(http.StatusOK, newUserResponse(profile.User, profile.IsSubscribed))
}

// Subscribe follows an author
// POST /api/users/:id/subscribe?recipes_limit=N
func (ctrl *UserController) Subscribe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	authorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	p := middleware.GetPrincipal(c)

	sub, err := ctrl.followService.Follow(c.Request.Context(), p, authorID, parseRecipesLimit(c))
	if err != nil {
		log.Warn("Subscribe failed", map[string]interface{}{
			"user_id":   p.UserID,
			"author_id": authorID,
			"error":     err.Error(),
		})
		apperrors.Respond(c, err, "subscribe user")
		return
	}

	log.Info("Subscribed to author", map[string]interface{}{
		"user_id":   p.UserID,
		"author_id": authorID,
	})
	c.JSON(http.StatusCreated, newSubscriptionResponse(sub))
}

// Unsubscribe removes a follow edge
// DELETE /api/users/:id/subscribe
func (ctrl *UserController) Unsubscribe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	authorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	p := middleware.GetPrincipal(c)

	if err := ctrl.followService.Unfollow(c.Request.Context(), p, authorID); err != nil {
		log.Warn("Unsubscribe failed", map[string]interface{}{
			"user_id":   p.UserID,
			"author_id": authorID,
			"error":     err.Error(),
		})
		apperrors.Respond(c, err, "unsubscribe user")
		return
	}

	c.Status(http.StatusNoContent)
}

// Subscriptions lists followed authors with their recipes
// GET /api/users/subscriptions?page=&limit=&recipes_limit=
func (ctrl *UserController) Subscriptions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	p := middleware.GetPrincipal(c)
	page, limit := parsePage(c)

	subs, total, err := ctrl.followService.ListFollowed(c.Request.Context(), p, page, limit, parseRecipesLimit(c))
	if err != nil {
		log.Error("Failed to list subscriptions", err, map[string]interface{}{
			"user_id": p.UserID,
		})
		apperrors.Respond(c, err, "list subscriptions")
		return
	}

	results := make([]SubscriptionResponse, 0, len(subs))
	for i := range subs {
		results = append(results, newSubscriptionResponse(&subs[i]))
	}

	c.JSON(http.StatusOK, PageResponse{
		Count:   total,
		Page:    page,
		Limit:   limit,
		Results: results,
	})
}
