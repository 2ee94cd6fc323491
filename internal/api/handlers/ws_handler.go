package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/encodergroup/portal-go/internal/notify"
	"github.com/encodergroup/portal-go/pkg/response"
	"github.com/encodergroup/portal-go/pkg/utils"
)

type WSHandler struct {
	hub *notify.Hub
}

func NewWSHandler(hub *notify.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Connect upgrades to a websocket that receives the caller's notifications.
func (h *WSHandler) Connect(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.hub.Serve(c.Writer, c.Request, userID); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "websocket upgrade failed"})
	}
}
