package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/helplink/api/internal/model"
)

// AdminOnly gates moderation endpoints. Must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, model.ErrorResponse{
				Error: "admin access required",
			})
			return
		}
		c.Next()
	}
}
