package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/auroralab/auroral-backend-go/internal/service"
	"github.com/auroralab/auroral-backend-go/pkg/response"
)

// ProcessHandler triggers batch pipeline runs over the stored inputs
type ProcessHandler struct {
	pipelineService *service.PipelineService
}

// NewProcessHandler creates a new process handler
func NewProcessHandler(pipelineService *service.PipelineService) *ProcessHandler {
	return &ProcessHandler{
		pipelineService: pipelineService,
	}
}

// Process handles POST /api/v1/process. The run is synchronous: the request
// returns once boundaries, flybys, and crossings have all been recomputed.
func (h *ProcessHandler) Process(c *gin.Context) {
	if err := h.pipelineService.Run(c.Request.Context()); err != nil {
		response.Internal(c, err.Error())
		return
	}
	response.OK(c, gin.H{"status": "processed"})
}
