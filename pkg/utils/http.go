package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ParseUUIDParam validates a path parameter as a UUID and returns it unchanged.
func ParseUUIDParam(c *gin.Context, name string) (string, error) {
	raw := c.Param(name)
	if raw == "" {
		return "", errors.New("missing " + name + " parameter")
	}
	if _, err := uuid.Parse(raw); err != nil {
		return "", errors.New("invalid " + name + " parameter")
	}
	return raw, nil
}

// ParsePagination reads skip/limit query values with the API defaults.
// Limit is capped at 100 like the upstream API.
func ParsePagination(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return skip, limit
}
