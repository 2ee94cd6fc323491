package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/encodergroup/portal-go/internal/application"
	"github.com/encodergroup/portal-go/internal/domain/meeting"
	"github.com/encodergroup/portal-go/pkg/response"
	"github.com/encodergroup/portal-go/pkg/utils"
)

type MeetingHandler struct {
	service *application.MeetingService
}

func NewMeetingHandler(service *application.MeetingService) *MeetingHandler {
	return &MeetingHandler{service: service}
}

func (h *MeetingHandler) Schedule(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	var req meeting.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	m, err := h.service.Schedule(claims, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "meeting": m.ToView()})
}

func (h *MeetingHandler) Upcoming(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	meetings, err := h.service.Upcoming(claims)
	if err != nil {
		writeError(c, err)
		return
	}

	views := make([]meeting.View, 0, len(meetings))
	for i := range meetings {
		views = append(views, meetings[i].ToView())
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "meetings": views})
}

func (h *MeetingHandler) ForRequest(c *gin.Context) {
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

	meetings, err := h.service.ForRequest(claims, id)
	if err != nil {
		writeError(c, err)
		return
	}

	views := make([]meeting.View, 0, len(meetings))
	for i := range meetings {
		views = append(views, meetings[i].ToView())
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "meetings": views})
}

func (h *MeetingHandler) Cancel(c *gin.Context) {
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

	m, err := h.service.Cancel(claims, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "meeting": m.ToView()})
}
