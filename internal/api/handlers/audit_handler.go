package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/encodergroup/portal-go/internal/application"
	"github.com/encodergroup/portal-go/internal/domain/audit"
	"github.com/encodergroup/portal-go/pkg/utils"
)

type AuditHandler struct {
	service *application.AuditService
}

func NewAuditHandler(service *application.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

func (h *AuditHandler) List(c *gin.Context) {
	skip, limit := utils.ParsePagination(c)
	entries, total, err := h.service.List(skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	views := make([]audit.View, 0, len(entries))
	for i := range entries {
		views = append(views, entries[i].ToView())
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"entries": views,
		"total":   total,
	})
}
