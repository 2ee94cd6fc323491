package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/encodergroup/portal-go/internal/application"
	"github.com/encodergroup/portal-go/internal/domain/notification"
	"github.com/encodergroup/portal-go/pkg/response"
	"github.com/encodergroup/portal-go/pkg/utils"
)

type NotificationHandler struct {
	service *application.NotificationService
}

func NewNotificationHandler(service *application.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) List(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	skip, limit := utils.ParsePagination(c)
	unreadOnly := c.Query("unread") == "true"

	notifications, total, err := h.service.List(claims.UserID, unreadOnly, skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	views := make([]notification.View, 0, len(notifications))
	for i := range notifications {
		views = append(views, notifications[i].ToView())
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": views,
		"total":         total,
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.MarkRead(id, claims.UserID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Success: true, Message: "notification read"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.MarkAllRead(claims.UserID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Success: true, Message: "all notifications read"})
}
