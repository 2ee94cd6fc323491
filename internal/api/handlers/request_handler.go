package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/encodergroup/portal-go/internal/application"
	"github.com/encodergroup/portal-go/internal/domain/request"
	"github.com/encodergroup/portal-go/internal/repository"
	"github.com/encodergroup/portal-go/pkg/response"
	"github.com/encodergroup/portal-go/pkg/utils"
)

type RequestHandler struct {
	service *application.RequestService
}

func NewRequestHandler(service *application.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

func (h *RequestHandler) Create(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	var req request.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	r, err := h.service.Create(claims, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request.SingleEnvelope{Success: true, Request: r.ToDetail()})
}

func (h *RequestHandler) List(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	skip, limit := utils.ParsePagination(c)
	filter := repository.RequestFilter{
		ClientID: c.Query("clientId"),
		Search:   c.Query("search"),
		Skip:     skip,
		Limit:    limit,
	}
	if raw := c.Query("status"); raw != "" {
		status, err := request.ParseStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
			return
		}
		filter.Status = &status
	}

	requests, total, err := h.service.List(claims, filter)
	if err != nil {
		writeError(c, err)
		return
	}

	summaries := make([]request.Summary, 0, len(requests))
	for i := range requests {
		summaries = append(summaries, requests[i].ToSummary())
	}
	c.JSON(http.StatusOK, request.ListEnvelope{
		Success:  true,
		Requests: summaries,
		Total:    total,
		Skip:     skip,
		Limit:    limit,
	})
}

func (h *RequestHandler) Get(c *gin.Context) {
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

	r, err := h.service.Get(claims, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, request.SingleEnvelope{Success: true, Request: r.ToDetail()})
}

func (h *RequestHandler) Update(c *gin.Context) {
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

	var req request.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	r, err := h.service.Update(claims, id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, request.SingleEnvelope{Success: true, Request: r.ToDetail()})
}

func (h *RequestHandler) Delete(c *gin.Context) {
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

	if err := h.service.Delete(claims, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Success: true, Message: "request deleted"})
}

func (h *RequestHandler) Submit(c *gin.Context) {
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

	r, err := h.service.Submit(claims, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, request.SingleEnvelope{Success: true, Request: r.ToDetail()})
}

func (h *RequestHandler) Advance(c *gin.Context) {
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

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)

	r, err := h.service.Advance(claims, id, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, request.SingleEnvelope{Success: true, Request: r.ToDetail()})
}

func (h *RequestHandler) SetStatus(c *gin.Context) {
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

	var req request.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	r, err := h.service.SetStatus(claims, id, req.Status, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, request.SingleEnvelope{Success: true, Request: r.ToDetail()})
}

func (h *RequestHandler) Assign(c *gin.Context) {
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

	var req struct {
		AssignedTo string `json:"assignedTo" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	r, err := h.service.Assign(claims, id, req.AssignedTo)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, request.SingleEnvelope{Success: true, Request: r.ToDetail()})
}

func (h *RequestHandler) AddComment(c *gin.Context) {
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

	var req request.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	r, err := h.service.AddComment(claims, id, req.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request.SingleEnvelope{Success: true, Request: r.ToDetail()})
}

func (h *RequestHandler) Upload(c *gin.Context) {
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

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "missing file"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	defer file.Close()

	attachment, err := h.service.Attach(c.Request.Context(), claims, id,
		fileHeader.Filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"attachment": request.AttachmentView{
			ID:        attachment.ID,
			FileName:  attachment.FileName,
			Size:      attachment.Size,
			CreatedAt: attachment.CreatedAt,
		},
	})
}

func (h *RequestHandler) Download(c *gin.Context) {
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
	attachmentID, err := utils.ParseUUIDParam(c, "attachmentId")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	attachment, body, err := h.service.OpenAttachment(c.Request.Context(), claims, id, attachmentID)
	if err != nil {
		writeError(c, err)
		return
	}
	defer body.Close()

	c.Header("Content-Disposition", `attachment; filename="`+attachment.FileName+`"`)
	c.DataFromReader(http.StatusOK, attachment.Size, "application/octet-stream", body, nil)
}

func (h *RequestHandler) Statuses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"statuses": h.service.Statuses(),
	})
}
