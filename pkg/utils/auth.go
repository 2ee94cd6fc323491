package utils

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/encodergroup/portal-go/pkg/types"
)

// GetClaimsFromContext returns the parsed JWT claims stored by the auth middleware.
func GetClaimsFromContext(c *gin.Context) (*types.Claims, error) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return nil, errors.New("user claims not found in context")
	}

	claims, ok := claimsVal.(*types.Claims)
	if !ok {
		return nil, errors.New("invalid user claims type")
	}

	return claims, nil
}

func GetUserIDFromContext(c *gin.Context) (string, error) {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

func IsAdminFromContext(c *gin.Context) bool {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		return false
	}
	return claims.IsAdmin
}
