package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	printingapp "github.com/pms/backend/internal/application/printing"
)

// DocumentHandler serves printable PDF documents
type DocumentHandler struct {
	BaseHandler
	documentService *printingapp.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *printingapp.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// RegisterRoutes registers document routes
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	documents := rg.Group("/documents")
	{
		documents.GET("/receipts/:id/pdf", h.ReceiptPDF)
		documents.GET("/contracts/:id/pdf", h.ContractPDF)
	}
}

func (h *DocumentHandler) servePDF(c *gin.Context, result *printingapp.DocumentResult) {
	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// ReceiptPDF godoc
// @Summary      Download receipt PDF
// @Description  Render a receipt as a printable PDF
// @Tags         documents
// @Produce      application/pdf
// @Param        id path string true "Receipt ID" format(uuid)
// @Success      200 {file} binary
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /documents/receipts/{id}/pdf [get]
func (h *DocumentHandler) ReceiptPDF(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	result, err := h.documentService.RenderReceiptPDF(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.servePDF(c, result)
}

// ContractPDF godoc
// @Summary      Download contract PDF
// @Description  Render a rental contract as a printable PDF
// @Tags         documents
// @Produce      application/pdf
// @Param        id path string true "Contract ID" format(uuid)
// @Success      200 {file} binary
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /documents/contracts/{id}/pdf [get]
func (h *DocumentHandler) ContractPDF(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}

	result, err := h.documentService.RenderContractPDF(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.servePDF(c, result)
}
