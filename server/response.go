package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"ok": 0, "code": status, "message": message})
}

// badRequest sends a 400 error response.
func badRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, message)
}

// unprocessable sends a 422 error response.
func unprocessable(c *gin.Context, message string) {
	abort(c, http.StatusUnprocessableEntity, message)
}

// internalError sends a 500 error response.
func internalError(c *gin.Context, err error) {
	abort(c, http.StatusInternalServerError, err.Error())
}
