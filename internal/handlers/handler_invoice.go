package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/books_backend/internal/core/ports/services"
	"github.com/finbooks/books_backend/internal/dto"
	"github.com/finbooks/books_backend/internal/middleware"
)

// invoiceHandler handles HTTP requests related to sales invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
	postingService portssvc.PostingSvcFacade
}

func newInvoiceHandler(is portssvc.InvoiceSvcFacade, ps portssvc.PostingSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is, postingService: ps}
}

// registerInvoiceRoutes registers routes related to sales invoices.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade, postingService portssvc.PostingSvcFacade) {
	h := newInvoiceHandler(invoiceService, postingService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.POST("/:invoiceID/lines", h.addLine)
		invoices.PUT("/:invoiceID/lines/:lineID", h.updateLine)
		invoices.DELETE("/:invoiceID/lines/:lineID", h.removeLine)
		invoices.POST("/:invoiceID/post", h.postInvoice)
	}
}

// createInvoice godoc
// @Summary Create a draft sales invoice
// @Description Creates an empty draft invoice with zero total
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Customer or journal not found"
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.ActorID(c)
	logger.Info("Received request to create invoice", slog.String("customer_id", req.CustomerID))

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "create invoice")
		return
	}

	logger.Info("Invoice created", slog.String("invoice_id", invoice.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// getInvoice godoc
// @Summary Get a sales invoice with its lines
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve invoice")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List sales invoices
// @Tags invoices
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.InvoiceResponse
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "list invoices")
		return
	}

	responses := make([]dto.InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = dto.ToInvoiceResponse(&invoices[i])
	}
	c.JSON(http.StatusOK, responses)
}

// addLine godoc
// @Summary Add a line to a draft invoice
// @Description Appends a product line and recomputes the invoice total atomically
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Param line body dto.AddLineRequest true "Line details"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input format or negative quantity/price"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice is not draft"
// @Router /invoices/{invoiceID}/lines [post]
func (h *invoiceHandler) addLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	var req dto.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.ActorID(c)
	invoice, err := h.invoiceService.AddLine(c.Request.Context(), invoiceID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "add invoice line")
		return
	}

	logger.Info("Invoice line added", slog.String("invoice_id", invoiceID), slog.String("total", invoice.Total.String()))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// updateLine godoc
// @Summary Update a line on a draft invoice
// @Description Rewrites a product line and recomputes the invoice total atomically
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Param lineID path string true "Line ID"
// @Param line body dto.AddLineRequest true "Line details"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input format or negative quantity/price"
// @Failure 404 {object} map[string]string "Invoice or line not found"
// @Failure 409 {object} map[string]string "Invoice is not draft"
// @Router /invoices/{invoiceID}/lines/{lineID} [put]
func (h *invoiceHandler) updateLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	lineID := c.Param("lineID")
	var req dto.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.ActorID(c)
	invoice, err := h.invoiceService.UpdateLine(c.Request.Context(), invoiceID, lineID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update invoice line")
		return
	}

	logger.Info("Invoice line updated", slog.String("invoice_id", invoiceID), slog.String("line_id", lineID))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// removeLine godoc
// @Summary Remove a line from a draft invoice
// @Description Deletes a product line and recomputes the invoice total atomically
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Param lineID path string true "Line ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice or line not found"
// @Failure 409 {object} map[string]string "Invoice is not draft"
// @Router /invoices/{invoiceID}/lines/{lineID} [delete]
func (h *invoiceHandler) removeLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	lineID := c.Param("lineID")
	userID := middleware.ActorID(c)

	invoice, err := h.invoiceService.RemoveLine(c.Request.Context(), invoiceID, lineID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "remove invoice line")
		return
	}

	logger.Info("Invoice line removed", slog.String("invoice_id", invoiceID), slog.String("line_id", lineID))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// postInvoice godoc
// @Summary Post a draft sales invoice
// @Description Creates a posted journal entry (debit receivable, credit sales revenue), marks the invoice posted and raises the customer's balance; posting a non-draft invoice is a no-op
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.EntryResponse
// @Success 204 "Invoice was not draft; nothing posted"
// @Failure 404 {object} map[string]string "Invoice, customer or posting account not found"
// @Router /invoices/{invoiceID}/post [post]
func (h *invoiceHandler) postInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	userID := middleware.ActorID(c)

	logger.Info("Received request to post invoice", slog.String("invoice_id", invoiceID))

	entry, err := h.postingService.PostSalesInvoice(c.Request.Context(), invoiceID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "post invoice")
		return
	}
	if entry == nil {
		// Non-draft invoice: nothing to do.
		logger.Info("Invoice already posted; skipping", slog.String("invoice_id", invoiceID))
		c.Status(http.StatusNoContent)
		return
	}

	logger.Info("Invoice posted", slog.String("invoice_id", invoiceID), slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}
