package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/auroralab/auroral-backend-go/internal/handler"
	"github.com/auroralab/auroral-backend-go/internal/middleware"
)

// Handlers bundles the HTTP handlers wired into the router
type Handlers struct {
	Boundary *handler.BoundaryHandler
	Flyby    *handler.FlybyHandler
	Crossing *handler.CrossingHandler
	Process  *handler.ProcessHandler
}

// SetupRouter builds the gin engine with all routes registered
func SetupRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Auroral Backend API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		boundaries := api.Group("/boundaries")
		{
			boundaries.GET("", h.Boundary.ListBoundaries)
			boundaries.GET("/:timestamp", h.Boundary.GetBoundary)
		}

		pair := api.Group("/stations/:station/satellites/:satellite")
		{
			pair.GET("/flybys", h.Flyby.ListFlybys)
			pair.GET("/crossings", h.Crossing.ListEpisodes)
		}

		api.POST("/process", h.Process.Process)
	}

	return r
}
