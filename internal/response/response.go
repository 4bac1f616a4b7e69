// Package response writes the uniform JSON envelope every endpoint answers with.
package response

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// Envelope statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Success is the envelope of a handled request. Data is null when absent.
type Success struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Failure is the envelope of a rejected request. Code mirrors the HTTP status.
type Failure struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// OK writes a success envelope with the given HTTP status
func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Success{Status: StatusSuccess, Message: message, Data: data})
}

// Fail aborts the chain and writes an error envelope
func Fail(c *gin.Context, code int, message string) {
	if code == 0 {
		code = http.StatusBadRequest // default for validation failures
	}
	c.AbortWithStatusJSON(code, Failure{Status: StatusError, Message: message, Code: code})
}

// BadRequest is Fail with 400
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// NotFound is Fail with 404
func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

// Internal answers a generic 500 without exposing the cause
func Internal(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, "Internal server error")
}
