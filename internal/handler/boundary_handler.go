package handler

import (
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/auroralab/auroral-backend-go/internal/models"
	"github.com/auroralab/auroral-backend-go/internal/service"
	"github.com/auroralab/auroral-backend-go/pkg/response"
)

// BoundaryHandler handles HTTP requests for boundary results
type BoundaryHandler struct {
	boundaryService *service.BoundaryService
}

// NewBoundaryHandler creates a new boundary handler
func NewBoundaryHandler(boundaryService *service.BoundaryService) *BoundaryHandler {
	return &BoundaryHandler{
		boundaryService: boundaryService,
	}
}

// timestampedBoundary pairs a result with its map timestamp for JSON output
type timestampedBoundary struct {
	Timestamp float64                `json:"timestamp"`
	Boundary  *models.BoundaryResult `json:"boundary"`
}

// ListBoundaries handles GET /api/v1/boundaries
func (h *BoundaryHandler) ListBoundaries(c *gin.Context) {
	fromStr := c.DefaultQuery("from", "0")
	toStr := c.DefaultQuery("to", "0")

	from, err := strconv.ParseFloat(fromStr, 64)
	if err != nil {
		response.BadRequest(c, "Invalid from parameter")
		return
	}

	to, err := strconv.ParseFloat(toStr, 64)
	if err != nil {
		response.BadRequest(c, "Invalid to parameter")
		return
	}

	results, err := h.boundaryService.GetBoundaries(from, to)
	if err != nil {
		response.Internal(c, err.Error())
		return
	}

	list := make([]timestampedBoundary, 0, len(results))
	for ts, r := range results {
		list = append(list, timestampedBoundary{Timestamp: ts, Boundary: r})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Timestamp < list[j].Timestamp })

	response.OK(c, list)
}

// GetBoundary handles GET /api/v1/boundaries/:timestamp
func (h *BoundaryHandler) GetBoundary(c *gin.Context) {
	ts, err := strconv.ParseFloat(c.Param("timestamp"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid timestamp parameter")
		return
	}

	result, err := h.boundaryService.GetBoundary(ts)
	if err != nil {
		response.Internal(c, err.Error())
		return
	}
	if result == nil {
		response.NotFound(c, "No boundary for timestamp")
		return
	}

	response.OK(c, timestampedBoundary{Timestamp: ts, Boundary: result})
}
