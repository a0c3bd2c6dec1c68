package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/auroralab/auroral-backend-go/internal/service"
	"github.com/auroralab/auroral-backend-go/pkg/response"
)

// FlybyHandler handles HTTP requests for satellite flybys
type FlybyHandler struct {
	flybyService *service.FlybyService
}

// NewFlybyHandler creates a new flyby handler
func NewFlybyHandler(flybyService *service.FlybyService) *FlybyHandler {
	return &FlybyHandler{
		flybyService: flybyService,
	}
}

// ListFlybys handles GET /api/v1/stations/:station/satellites/:satellite/flybys
func (h *FlybyHandler) ListFlybys(c *gin.Context) {
	station := c.Param("station")
	satellite := c.Param("satellite")

	flybys, err := h.flybyService.ListFlybys(station, satellite)
	if err != nil {
		response.Internal(c, err.Error())
		return
	}

	response.OK(c, flybys)
}
