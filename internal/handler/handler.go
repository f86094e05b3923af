package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/helplink/api/internal/model"
	"github.com/helplink/api/internal/service"
)

// respondError maps service errors onto HTTP responses. Unrecognized
// errors are logged and surfaced as a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredential):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrTooManyRequests):
		c.JSON(http.StatusTooManyRequests, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
	default:
		log.Printf("❌ Internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "internal server error"})
	}
}

// badRequest reports a binding/validation failure
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, model.ErrorResponse{
		Error:   "invalid request",
		Message: err.Error(),
	})
}

// uuidParam parses a UUID path parameter, responding 400 on failure
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: "invalid " + name + " parameter",
		})
		return uuid.Nil, false
	}
	return id, true
}

// pagination reads limit/offset query params with sane bounds
func pagination(c *gin.Context, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	offset = 0
	var q struct {
		Limit  *int `form:"limit" binding:"omitempty,gte=1,lte=100"`
		Offset *int `form:"offset" binding:"omitempty,gte=0"`
	}
	if err := c.ShouldBindQuery(&q); err == nil {
		if q.Limit != nil {
			limit = *q.Limit
		}
		if q.Offset != nil {
			offset = *q.Offset
		}
	}
	return limit, offset
}
