package server

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"suggestion-board/configs"
	"suggestion-board/internal/server/handlers"
	"suggestion-board/internal/server/middleware"
	"suggestion-board/internal/server/repository"
	"suggestion-board/internal/server/service"
	"suggestion-board/pkg/reveal"
)

// New wires repositories, services and handlers into a gin engine.
// redisClient may be nil; rate limiting is then skipped. catalog may be nil
// when no YouTube API key is configured, which disables bulk import.
func New(cfg *configs.Config, db *gorm.DB, redisClient *redis.Client, catalog service.VideoCatalog) *gin.Engine {
	suggestionRepo := repository.NewSuggestionRepository(db)
	voteRepo := repository.NewVoteRepository(db)

	suggestionService := service.NewSuggestionService(suggestionRepo)
	similarityService := service.NewSimilarityService(suggestionRepo)
	voteService := service.NewVoteService(voteRepo, suggestionRepo, service.DedupMode(cfg.VoteDedup))
	authService := service.NewAuthService(cfg.AdminEmail, cfg.AdminPasswordHash, cfg.JWTSecret, cfg.JWTExpire)
	importService := service.NewImportService(catalog, suggestionRepo, cfg.ChannelHandles)

	authHandler := handlers.NewAuthHandler(authService)
	suggestionHandler := handlers.NewSuggestionHandler(suggestionService, similarityService)
	voteHandler := handlers.NewVoteHandler(voteService)
	importHandler := handlers.NewImportHandler(importService)
	uiHandler := handlers.NewUIHandler(reveal.NewTracker(cfg.RevealClicks, cfg.RevealWindow))

	var rateLimit *middleware.RateLimitMiddleware
	if redisClient != nil {
		rateLimit = middleware.NewRateLimitMiddleware(redisClient)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LogAPI())
	router.Use(middleware.CORS())

	SetupRoutes(router, cfg.JWTSecret, rateLimit, authHandler, suggestionHandler, voteHandler, importHandler, uiHandler)

	return router
}
