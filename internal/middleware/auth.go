package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/helplink/api/internal/model"
	"github.com/helplink/api/internal/repository"
	"github.com/helplink/api/pkg/auth"
)

const (
	// Context keys set by Auth for downstream handlers
	CtxUserKey  = "current_user"
	CtxTokenKey = "token"
)

// Auth validates the bearer token, rejects revoked tokens and loads the
// authenticated user into the request context
func Auth(jwtManager *auth.JWTManager, blacklist *auth.TokenBlacklist, userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
				Error: "authorization header required",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
				Error: "invalid authorization header format",
			})
			return
		}
		token := parts[1]

		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
				Error: "invalid or expired token",
			})
			return
		}

		revoked, err := blacklist.Contains(c.Request.Context(), token)
		if err == nil && revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
				Error: "token has been revoked",
			})
			return
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
				Error: "user not found",
			})
			return
		}

		c.Set(CtxUserKey, user)
		c.Set(CtxTokenKey, token)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by Auth
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(CtxUserKey); ok {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}

// Token returns the raw bearer token set by Auth
func Token(c *gin.Context) string {
	if v, ok := c.Get(CtxTokenKey); ok {
		if token, ok := v.(string); ok {
			return token
		}
	}
	return ""
}
