package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/b3proventos/internal/domain/dto"
)

// ErrorHandler answers with a 500 JSON error body when a handler recorded
// errors through c.Error without writing a response itself.
//
// Usage:
//
//	router.Use(middleware.ErrorHandler)
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	last := c.Errors.Last()
	c.AbortWithStatusJSON(http.StatusInternalServerError,
		dto.NewErrorResponse("internal server error", last.Err))
}

// AbortWithError records err on the context, stops the chain and writes the
// standard error body with the given status.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
