package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/encodergroup/portal-go/internal/application"
	"github.com/encodergroup/portal-go/internal/storage"
	"github.com/encodergroup/portal-go/pkg/response"
)

// writeError maps service errors onto HTTP statuses. Both storage backends
// surface missing records as gorm.ErrRecordNotFound so one mapping covers
// them.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, application.ErrAttachmentNotFound),
		errors.Is(err, application.ErrImageNotFound),
		errors.Is(err, storage.ErrObjectNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "not found"})
	case errors.Is(err, application.ErrForbidden):
		c.JSON(http.StatusForbidden, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, application.ErrInvalidStatus),
		errors.Is(err, application.ErrSameStatus),
		errors.Is(err, application.ErrTerminalStatus),
		errors.Is(err, application.ErrNotDraft),
		errors.Is(err, application.ErrInvalidColumn):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, application.ErrEmailTaken):
		c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, application.ErrBadCredentials),
		errors.Is(err, application.ErrUserInactive):
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
	default:
		log.WithError(err).WithField("path", c.Request.URL.Path).Error("Unhandled service error")
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal server error"})
	}
}
