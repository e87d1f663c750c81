package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/books_backend/internal/core/ports/services"
	"github.com/finbooks/books_backend/internal/dto"
	"github.com/finbooks/books_backend/internal/middleware"
)

// paymentHandler handles HTTP requests related to customer and vendor payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
	postingService portssvc.PostingSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade, posting portssvc.PostingSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps, postingService: posting}
}

// registerPaymentRoutes registers routes related to payments.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade, postingService portssvc.PostingSvcFacade) {
	h := newPaymentHandler(paymentService, postingService)

	customerPayments := rg.Group("/customer-payments")
	{
		customerPayments.POST("", h.createCustomerPayment)
		customerPayments.GET("/:paymentID", h.getCustomerPayment)
		customerPayments.POST("/:paymentID/post", h.postCustomerPayment)
	}

	vendorPayments := rg.Group("/vendor-payments")
	{
		vendorPayments.POST("", h.createVendorPayment)
		vendorPayments.GET("/:paymentID", h.getVendorPayment)
		vendorPayments.POST("/:paymentID/post", h.postVendorPayment)
	}
}

// createCustomerPayment godoc
// @Summary Record a draft customer payment
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.CreateCustomerPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input format or non-positive amount"
// @Failure 404 {object} map[string]string "Customer, invoice or journal not found"
// @Router /customer-payments [post]
func (h *paymentHandler) createCustomerPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCustomerPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCustomerPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.ActorID(c)
	logger.Info("Received request to create customer payment", slog.String("customer_id", req.CustomerID))

	payment, err := h.paymentService.CreateCustomerPayment(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "create customer payment")
		return
	}

	logger.Info("Customer payment created", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, dto.ToCustomerPaymentResponse(payment))
}

// getCustomerPayment godoc
// @Summary Get a customer payment by ID
// @Tags payments
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Router /customer-payments/{paymentID} [get]
func (h *paymentHandler) getCustomerPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	payment, err := h.paymentService.GetCustomerPayment(c.Request.Context(), paymentID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve customer payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerPaymentResponse(payment))
}

// postCustomerPayment godoc
// @Summary Post a draft customer payment
// @Description Creates a posted journal entry (debit cash/bank, credit receivable), marks the payment paid and lowers the customer's balance; posting a non-draft payment is a no-op
// @Tags payments
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Success 200 {object} dto.EntryResponse
// @Success 204 "Payment was not draft; nothing posted"
// @Failure 404 {object} map[string]string "Payment, customer or posting account not found"
// @Router /customer-payments/{paymentID}/post [post]
func (h *paymentHandler) postCustomerPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")
	userID := middleware.ActorID(c)

	logger.Info("Received request to post customer payment", slog.String("payment_id", paymentID))

	entry, err := h.postingService.PostCustomerPayment(c.Request.Context(), paymentID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "post customer payment")
		return
	}
	if entry == nil {
		logger.Info("Customer payment already paid; skipping", slog.String("payment_id", paymentID))
		c.Status(http.StatusNoContent)
		return
	}

	logger.Info("Customer payment posted", slog.String("payment_id", paymentID), slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// createVendorPayment godoc
// @Summary Record a draft vendor payment
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.CreateVendorPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input format or non-positive amount"
// @Failure 404 {object} map[string]string "Vendor, bill or journal not found"
// @Router /vendor-payments [post]
func (h *paymentHandler) createVendorPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateVendorPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateVendorPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.ActorID(c)
	logger.Info("Received request to create vendor payment", slog.String("vendor_id", req.VendorID))

	payment, err := h.paymentService.CreateVendorPayment(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "create vendor payment")
		return
	}

	logger.Info("Vendor payment created", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, dto.ToVendorPaymentResponse(payment))
}

// getVendorPayment godoc
// @Summary Get a vendor payment by ID
// @Tags payments
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Router /vendor-payments/{paymentID} [get]
func (h *paymentHandler) getVendorPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	payment, err := h.paymentService.GetVendorPayment(c.Request.Context(), paymentID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve vendor payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToVendorPaymentResponse(payment))
}

// postVendorPayment godoc
// @Summary Post a draft vendor payment
// @Description Creates a posted journal entry (debit payable, credit cash/bank), marks the payment paid and lowers the vendor's balance; posting a non-draft payment is a no-op
// @Tags payments
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Success 200 {object} dto.EntryResponse
// @Success 204 "Payment was not draft; nothing posted"
// @Failure 404 {object} map[string]string "Payment, vendor or posting account not found"
// @Router /vendor-payments/{paymentID}/post [post]
func (h *paymentHandler) postVendorPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")
	userID := middleware.ActorID(c)

	logger.Info("Received request to post vendor payment", slog.String("payment_id", paymentID))

	entry, err := h.postingService.PostVendorPayment(c.Request.Context(), paymentID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "post vendor payment")
		return
	}
	if entry == nil {
		logger.Info("Vendor payment already paid; skipping", slog.String("payment_id", paymentID))
		c.Status(http.StatusNoContent)
		return
	}

	logger.Info("Vendor payment posted", slog.String("payment_id", paymentID), slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}
