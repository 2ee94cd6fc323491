package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/encodergroup/portal-go/internal/application"
	"github.com/encodergroup/portal-go/internal/domain/receipt"
	"github.com/encodergroup/portal-go/pkg/response"
	"github.com/encodergroup/portal-go/pkg/utils"
)

type ReceiptHandler struct {
	service *application.ReceiptService
}

func NewReceiptHandler(service *application.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{service: service}
}

// openImagePart returns the optional image file part, or an empty name when
// the form carried none.
func openImagePart(c *gin.Context) (string, multipart.File, int64, string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return "", nil, 0, "", nil
	}
	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, 0, "", err
	}
	return fileHeader.Filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"), nil
}

func (h *ReceiptHandler) Create(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	date, err := time.Parse(time.RFC3339, c.PostForm("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid date"})
		return
	}
	amount, err := strconv.ParseFloat(c.PostForm("totalAmount"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid totalAmount"})
		return
	}
	req := receipt.CreateRequest{
		CompanyName: c.PostForm("companyName"),
		FolioNumber: c.PostForm("folioNumber"),
		Date:        date,
		Description: c.PostForm("description"),
		TotalAmount: amount,
	}
	if req.CompanyName == "" || req.FolioNumber == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "companyName and folioNumber are required"})
		return
	}

	imageName, image, size, contentType, err := openImagePart(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	if image != nil {
		defer image.Close()
	}

	r, err := h.service.Create(c.Request.Context(), claims, req, imageName, image, size, contentType)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "receipt": r.ToView()})
}

func (h *ReceiptHandler) List(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	receipts, err := h.service.List(claims)
	if err != nil {
		writeError(c, err)
		return
	}

	views := make([]receipt.View, 0, len(receipts))
	for i := range receipts {
		views = append(views, receipts[i].ToView())
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(views), "receipts": views})
}

func (h *ReceiptHandler) Stats(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	stats, err := h.service.Stats(claims)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

func (h *ReceiptHandler) Get(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"success": true, "receipt": r.ToView()})
}

func (h *ReceiptHandler) Update(c *gin.Context) {
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

	var req receipt.UpdateRequest
	if v, ok := c.GetPostForm("companyName"); ok {
		req.CompanyName = &v
	}
	if v, ok := c.GetPostForm("folioNumber"); ok {
		req.FolioNumber = &v
	}
	if v, ok := c.GetPostForm("date"); ok {
		date, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid date"})
			return
		}
		req.Date = &date
	}
	if v, ok := c.GetPostForm("description"); ok {
		req.Description = &v
	}
	if v, ok := c.GetPostForm("totalAmount"); ok {
		amount, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid totalAmount"})
			return
		}
		req.TotalAmount = &amount
	}

	imageName, image, size, contentType, err := openImagePart(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	if image != nil {
		defer image.Close()
	}

	r, err := h.service.Update(c.Request.Context(), claims, id, req, imageName, image, size, contentType)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "receipt": r.ToView()})
}

func (h *ReceiptHandler) SetStatus(c *gin.Context) {
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
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	r, err := h.service.SetStatus(claims, id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "receipt": r.ToView()})
}

func (h *ReceiptHandler) Delete(c *gin.Context) {
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

	if err := h.service.Delete(c.Request.Context(), claims, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Success: true, Message: "receipt deleted"})
}

func (h *ReceiptHandler) Image(c *gin.Context) {
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

	r, body, err := h.service.OpenImage(c.Request.Context(), claims, id)
	if err != nil {
		writeError(c, err)
		return
	}
	defer body.Close()

	c.Header("Content-Disposition", `inline; filename="`+r.ImageName+`"`)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, body)
}
