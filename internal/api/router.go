package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ertan/cvscout/internal/api/handler"
	"github.com/ertan/cvscout/internal/api/middleware"
	"github.com/ertan/cvscout/internal/config"
)

// SetupRouter configures the HTTP routes and middleware.
// Parameters:
//   - cfg: server configuration (mode, CORS).
//   - jobHandler: job posting endpoints.
//   - screeningHandler: resume screening endpoints.
//   - emailHandler: outcome email endpoints.
//
// Returns:
//   - *gin.Engine: configured router ready to serve.
func SetupRouter(
	cfg *config.ServerConfig,
	jobHandler *handler.JobHandler,
	screeningHandler *handler.ScreeningHandler,
	emailHandler *handler.EmailHandler,
) *gin.Engine {
	gin.SetMode(ginMode(cfg.Mode))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler := handler.NewHealthHandler()
	router.GET("/health", healthHandler.Health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/jobs", jobHandler.Create)
		v1.GET("/jobs", jobHandler.List)
		v1.GET("/jobs/:id", jobHandler.Get)
		v1.GET("/jobs/:id/candidates", jobHandler.RankedCandidates)

		v1.POST("/screenings", screeningHandler.Screen)

		v1.POST("/emails/dispatch", emailHandler.Dispatch)
	}

	return router
}

func ginMode(mode string) string {
	switch mode {
	case gin.ReleaseMode, gin.TestMode:
		return mode
	default:
		return gin.DebugMode
	}
}
