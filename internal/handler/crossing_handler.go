package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/auroralab/auroral-backend-go/internal/service"
	"github.com/auroralab/auroral-backend-go/pkg/response"
)

// CrossingHandler handles HTTP requests for crossing episodes
type CrossingHandler struct {
	crossingService *service.CrossingService
}

// NewCrossingHandler creates a new crossing handler
func NewCrossingHandler(crossingService *service.CrossingService) *CrossingHandler {
	return &CrossingHandler{
		crossingService: crossingService,
	}
}

// ListEpisodes handles GET /api/v1/stations/:station/satellites/:satellite/crossings
func (h *CrossingHandler) ListEpisodes(c *gin.Context) {
	station := c.Param("station")
	satellite := c.Param("satellite")

	episodes, err := h.crossingService.ListEpisodes(station, satellite)
	if err != nil {
		response.Internal(c, err.Error())
		return
	}

	response.OK(c, episodes)
}
