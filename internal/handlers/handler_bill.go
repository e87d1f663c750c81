package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/books_backend/internal/core/ports/services"
	"github.com/finbooks/books_backend/internal/dto"
	"github.com/finbooks/books_backend/internal/middleware"
)

// billHandler handles HTTP requests related to purchase invoices (vendor bills).
type billHandler struct {
	billService    portssvc.BillSvcFacade
	postingService portssvc.PostingSvcFacade
}

func newBillHandler(bs portssvc.BillSvcFacade, ps portssvc.PostingSvcFacade) *billHandler {
	return &billHandler{billService: bs, postingService: ps}
}

// registerBillRoutes registers routes related to purchase invoices.
func registerBillRoutes(rg *gin.RouterGroup, billService portssvc.BillSvcFacade, postingService portssvc.PostingSvcFacade) {
	h := newBillHandler(billService, postingService)

	bills := rg.Group("/bills")
	{
		bills.POST("", h.createBill)
		bills.GET("", h.listBills)
		bills.GET("/:invoiceID", h.getBill)
		bills.POST("/:invoiceID/lines", h.addLine)
		bills.PUT("/:invoiceID/lines/:lineID", h.updateLine)
		bills.DELETE("/:invoiceID/lines/:lineID", h.removeLine)
		bills.POST("/:invoiceID/post", h.postBill)
	}
}

// createBill godoc
// @Summary Create a draft purchase invoice
// @Description Creates an empty draft vendor bill with zero total
// @Tags bills
// @Accept json
// @Produce json
// @Param bill body dto.CreateBillRequest true "Bill details"
// @Success 201 {object} dto.BillResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Vendor or journal not found"
// @Router /bills [post]
func (h *billHandler) createBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.ActorID(c)
	logger.Info("Received request to create bill", slog.String("vendor_id", req.VendorID))

	bill, err := h.billService.CreateBill(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "create bill")
		return
	}

	logger.Info("Bill created", slog.String("invoice_id", bill.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToBillResponse(bill))
}

// getBill godoc
// @Summary Get a purchase invoice with its lines
// @Tags bills
// @Produce json
// @Param invoiceID path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 404 {object} map[string]string "Bill not found"
// @Router /bills/{invoiceID} [get]
func (h *billHandler) getBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	bill, err := h.billService.GetBill(c.Request.Context(), invoiceID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve bill")
		return
	}

	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// listBills godoc
// @Summary List purchase invoices
// @Tags bills
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.BillResponse
// @Router /bills [get]
func (h *billHandler) listBills(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListBills", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	bills, err := h.billService.ListBills(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "list bills")
		return
	}

	responses := make([]dto.BillResponse, len(bills))
	for i := range bills {
		responses[i] = dto.ToBillResponse(&bills[i])
	}
	c.JSON(http.StatusOK, responses)
}

// addLine godoc
// @Summary Add a line to a draft bill
// @Description Appends a product line and recomputes the bill total atomically
// @Tags bills
// @Accept json
// @Produce json
// @Param invoiceID path string true "Bill ID"
// @Param line body dto.AddLineRequest true "Line details"
// @Success 200 {object} dto.BillResponse
// @Failure 400 {object} map[string]string "Invalid input format or negative quantity/price"
// @Failure 404 {object} map[string]string "Bill not found"
// @Failure 409 {object} map[string]string "Bill is not draft"
// @Router /bills/{invoiceID}/lines [post]
func (h *billHandler) addLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	var req dto.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddBillLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.ActorID(c)
	bill, err := h.billService.AddBillLine(c.Request.Context(), invoiceID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "add bill line")
		return
	}

	logger.Info("Bill line added", slog.String("invoice_id", invoiceID), slog.String("total", bill.Total.String()))
	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// updateLine godoc
// @Summary Update a line on a draft bill
// @Description Rewrites a product line and recomputes the bill total atomically
// @Tags bills
// @Accept json
// @Produce json
// @Param invoiceID path string true "Bill ID"
// @Param lineID path string true "Line ID"
// @Param line body dto.AddLineRequest true "Line details"
// @Success 200 {object} dto.BillResponse
// @Failure 400 {object} map[string]string "Invalid input format or negative quantity/price"
// @Failure 404 {object} map[string]string "Bill or line not found"
// @Failure 409 {object} map[string]string "Bill is not draft"
// @Router /bills/{invoiceID}/lines/{lineID} [put]
func (h *billHandler) updateLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	lineID := c.Param("lineID")
	var req dto.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBillLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.ActorID(c)
	bill, err := h.billService.UpdateBillLine(c.Request.Context(), invoiceID, lineID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update bill line")
		return
	}

	logger.Info("Bill line updated", slog.String("invoice_id", invoiceID), slog.String("line_id", lineID))
	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// removeLine godoc
// @Summary Remove a line from a draft bill
// @Description Deletes a product line and recomputes the bill total atomically
// @Tags bills
// @Produce json
// @Param invoiceID path string true "Bill ID"
// @Param lineID path string true "Line ID"
// @Success 200 {object} dto.BillResponse
// @Failure 404 {object} map[string]string "Bill or line not found"
// @Failure 409 {object} map[string]string "Bill is not draft"
// @Router /bills/{invoiceID}/lines/{lineID} [delete]
func (h *billHandler) removeLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	lineID := c.Param("lineID")
	userID := middleware.ActorID(c)

	bill, err := h.billService.RemoveBillLine(c.Request.Context(), invoiceID, lineID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "remove bill line")
		return
	}

	logger.Info("Bill line removed", slog.String("invoice_id", invoiceID), slog.String("line_id", lineID))
	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// postBill godoc
// @Summary Post a draft purchase invoice
// @Description Creates a posted journal entry (debit expense, credit payable), marks the bill posted and raises the vendor's balance; posting a non-draft bill is a no-op
// @Tags bills
// @Produce json
// @Param invoiceID path string true "Bill ID"
// @Success 200 {object} dto.EntryResponse
// @Success 204 "Bill was not draft; nothing posted"
// @Failure 404 {object} map[string]string "Bill, vendor or posting account not found"
// @Router /bills/{invoiceID}/post [post]
func (h *billHandler) postBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	userID := middleware.ActorID(c)

	logger.Info("Received request to post bill", slog.String("invoice_id", invoiceID))

	entry, err := h.postingService.PostPurchaseInvoice(c.Request.Context(), invoiceID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "post bill")
		return
	}
	if entry == nil {
		logger.Info("Bill already posted; skipping", slog.String("invoice_id", invoiceID))
		c.Status(http.StatusNoContent)
		return
	}

	logger.Info("Bill posted", slog.String("invoice_id", invoiceID), slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}
