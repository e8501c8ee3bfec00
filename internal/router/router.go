package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ikkim/foodgram-backend/config"
	"github.com/ikkim/foodgram-backend/internal/app/controller"
	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/internal/middleware"
)

type Router struct {
	authController       *controller.AuthController
	userController       *controller.UserController
	recipeController     *controller.RecipeController
	annotationController *controller.AnnotationController
	catalogController    *controller.CatalogController
	adminController      *controller.AdminController
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	userController *controller.UserController,
	recipeController *controller.RecipeController,
	annotationController *controller.AnnotationController,
	catalogController *controller.CatalogController,
	adminController *controller.AdminController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		userController:       userController,
		recipeController:     recipeController,
		annotationController: annotationController,
		catalogController:    catalogController,
		adminController:      adminController,
		authMiddleware:       authMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Foodgram API is running",
		})
	})
	router.GET("/metrics", middleware.MetricsHandler())

	// 로컬 저장소 이미지 서빙
	if r.config.Storage.Driver != "s3" {
		router.Static(r.config.Storage.MediaURL, r.config.Storage.MediaRoot)
	}

	authenticate := r.authMiddleware.Authenticate()
	optional := r.authMiddleware.OptionalAuthenticate()

	api := router.Group("/api")
	{
		auth := api.Group("/auth/token")
		{
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", authenticate, r.authController.Logout)
		}

		users := api.Group("/users")
		{
			users.POST("", r.authController.Register)
			users.GET("", optional, r.userController.ListUsers)
			users.GET("/me", authenticate, r.userController.GetMe)
			users.POST("/set_password", authenticate, r.authController.SetPassword)
			users.GET("/subscriptions", authenticate, r.userController.Subscriptions)
			users.GET("/:id", optional, r.userController.GetUser)
			users.POST("/:id/subscribe", authenticate, r.userController.Subscribe)
			users.DELETE("/:id/subscribe", authenticate, r.userController.Unsubscribe)
		}

		recipes := api.Group("/recipes")
		{
			recipes.GET("", optional, r.recipeController.ListRecipes)
			recipes.POST("", authenticate, r.recipeController.CreateRecipe)
			recipes.GET("/download_shopping_cart", authenticate, r.annotationController.DownloadShoppingCart)
			recipes.GET("/:id", optional, r.recipeController.GetRecipe)
			recipes.PATCH("/:id", authenticate, r.recipeController.UpdateRecipe)
			recipes.DELETE("/:id", authenticate, r.recipeController.DeleteRecipe)

			recipes.POST("/:id/favorite", authenticate, r.annotationController.AddFavorite)
			recipes.DELETE("/:id/favorite", authenticate, r.annotationController.RemoveFavorite)
			recipes.POST("/:id/shopping_cart", authenticate, r.annotationController.AddToCart)
			recipes.DELETE("/:id/shopping_cart", authenticate, r.annotationController.RemoveFromCart)
		}

		api.GET("/tags", r.catalogController.ListTags)
		api.GET("/tags/:id", r.catalogController.GetTag)
		api.GET("/ingredients", r.catalogController.ListIngredients)
		api.GET("/ingredients/:id", r.catalogController.GetIngredient)

		admin := api.Group("/admin", authenticate, r.authMiddleware.RequireRole(string(model.RoleAdmin)))
		{
			admin.POST("/orphan_images/purge", r.adminController.PurgeOrphanImages)
			admin.DELETE("/tags/cache", r.adminController.InvalidateTagCache)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
