package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the JSON shape every endpoint returns. Status is "ok" or
// "error"; exactly one of Data and Error is set.
type Envelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// OK sends the payload with HTTP 200
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Status: "ok", Data: data})
}

// Fail sends an error message with the given HTTP status
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Status: "error", Error: message})
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

// Internal sends a 500 response
func Internal(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, message)
}
