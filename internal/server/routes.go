package server

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"suggestion-board/internal/server/handlers"
	"suggestion-board/internal/server/middleware"
)

// SetupRoutes configures all the routes for the application. rateLimit is
// nil when no Redis is configured; public write endpoints then run
// unthrottled.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	rateLimit *middleware.RateLimitMiddleware,
	authHandler *handlers.AuthHandler,
	suggestionHandler *handlers.SuggestionHandler,
	voteHandler *handlers.VoteHandler,
	importHandler *handlers.ImportHandler,
	uiHandler *handlers.UIHandler,
) {
	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check route
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	throttled := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if rateLimit == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{rateLimit.RateLimit(10, time.Minute), h}
	}

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		public.GET("/suggestions", suggestionHandler.ListPublic)
		public.POST("/suggestions", throttled(suggestionHandler.Create)...)
		public.GET("/suggestions/similar", suggestionHandler.FindSimilar)
		public.GET("/suggestions/:id/votes", voteHandler.HasVoted)
		public.POST("/suggestions/:id/votes", throttled(voteHandler.CastVote)...)

		public.GET("/ui/statuses", uiHandler.Statuses)
		public.POST("/ui/reveal", uiHandler.RevealClick)
	}

	// Admin routes (require a valid admin session)
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.AdminAuth(jwtSecret))
	{
		admin.GET("/suggestions", suggestionHandler.ListAll)
		admin.PATCH("/suggestions/:id/status", suggestionHandler.Transition)
		admin.DELETE("/suggestions/:id", suggestionHandler.Delete)
		admin.POST("/import", importHandler.Import)
	}
}
