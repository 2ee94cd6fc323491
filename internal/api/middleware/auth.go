package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/encodergroup/portal-go/pkg/response"
	"github.com/encodergroup/portal-go/pkg/utils"
)

// Admin rejects callers without the admin role. Must run after
// JWTAuthMiddleware.
func Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := utils.GetClaimsFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "unauthorized"})
			return
		}
		if !claims.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "admin access required"})
			return
		}
		c.Next()
	}
}
