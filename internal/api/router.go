// Package api exposes the authoring core over HTTP.
package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"prompt-architect-server/internal/deconstruct"
	"prompt-architect-server/internal/gallery"
	"prompt-architect-server/internal/prompt"
	"prompt-architect-server/internal/video"
)

// Server wires the services into a gin router. The video manager may be nil
// when no video credential is configured; its endpoints then answer 503.
type Server struct {
	prompts       *prompt.Service
	deconstructor *deconstruct.Service
	store         *gallery.Store
	history       *gallery.HistoryLog
	videos        *video.Manager
	logger        *zap.Logger
}

func NewServer(
	prompts *prompt.Service,
	deconstructor *deconstruct.Service,
	store *gallery.Store,
	history *gallery.HistoryLog,
	videos *video.Manager,
	logger *zap.Logger,
) *Server {
	return &Server{
		prompts:       prompts,
		deconstructor: deconstructor,
		store:         store,
		history:       history,
		videos:        videos,
		logger:        logger.Named("api"),
	}
}

// Router builds the HTTP router with logging, CORS and metrics attached.
func (s *Server) Router(allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(zapLoggingMiddleware(s.logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = allowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-Request-ID")
	router.Use(cors.New(corsConfig))

	prom := ginprometheus.NewPrometheus("gin")
	prom.Use(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")
	{
		prompts := apiGroup.Group("/prompts")
		{
			prompts.POST("/generate", s.handleGenerate)
			prompts.POST("/suggest", s.handleSuggest)
			prompts.POST("/deconstruct", s.handleDeconstruct)
		}

		galleryGroup := apiGroup.Group("/gallery")
		{
			galleryGroup.GET("", s.handleListGallery)
			galleryGroup.POST("", s.handleSave)
			galleryGroup.DELETE("/:id", s.handleDelete)
			galleryGroup.POST("/:id/visibility", s.handleToggleVisibility)
			galleryGroup.POST("/:id/remix", s.handleRemix)
		}

		videos := apiGroup.Group("/videos")
		{
			videos.POST("", s.handleStartVideo)
			videos.GET("/:id", s.handleGetVideo)
		}
	}

	return router
}
