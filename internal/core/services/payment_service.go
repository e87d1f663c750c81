package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/books_backend/internal/apperrors"
	"github.com/finbooks/books_backend/internal/core/domain"
	portsrepo "github.com/finbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/books_backend/internal/core/ports/services"
	"github.com/finbooks/books_backend/internal/dto"
	"github.com/finbooks/books_backend/internal/middleware"
)

var ErrNonPositiveAmount = errors.New("payment amount must be positive")

// paymentService records draft payments. Their ledger effect only happens
// when the posting service posts them.
type paymentService struct {
	paymentRepo portsrepo.PaymentRepositoryWithTx
	invoiceRepo portsrepo.SalesInvoiceReader
	billRepo    portsrepo.PurchaseInvoiceReader
	partyRepo   portsrepo.PartyRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepositoryWithTx,
	invoiceRepo portsrepo.SalesInvoiceReader,
	billRepo portsrepo.PurchaseInvoiceReader,
	partyRepo portsrepo.PartyRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		billRepo:    billRepo,
		partyRepo:   partyRepo,
		journalRepo: journalRepo,
	}
}

// Ensure paymentService implements the portssvc.PaymentSvcFacade interface
var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) CreateCustomerPayment(ctx context.Context, req dto.CreateCustomerPaymentRequest, userID string) (*domain.CustomerPayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNonPositiveAmount)
	}
	if _, err := s.partyRepo.FindCustomerByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("customer %s: %w", req.CustomerID, err)
		}
		logger.Error("Failed to resolve customer for payment", slog.String("customer_id", req.CustomerID), slog.String("error", err.Error()))
		return nil, err
	}
	if _, err := s.invoiceRepo.FindInvoiceByID(ctx, req.InvoiceID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("invoice %s: %w", req.InvoiceID, err)
		}
		logger.Error("Failed to resolve invoice for payment", slog.String("invoice_id", req.InvoiceID), slog.String("error", err.Error()))
		return nil, err
	}
	if _, err := s.journalRepo.FindJournalByID(ctx, req.JournalID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("journal %s: %w", req.JournalID, err)
		}
		logger.Error("Failed to resolve journal for payment", slog.String("journal_id", req.JournalID), slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	paymentDate := now
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	payment := domain.CustomerPayment{
		PaymentID:   uuid.NewString(),
		CustomerID:  req.CustomerID,
		InvoiceID:   req.InvoiceID,
		PaymentDate: paymentDate,
		Amount:      req.Amount,
		JournalID:   req.JournalID,
		Reference:   req.Reference,
		Status:      domain.PaymentDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.paymentRepo.SaveCustomerPayment(ctx, payment); err != nil {
		logger.Error("Failed to save customer payment", slog.String("payment_id", payment.PaymentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save customer payment: %w", err)
	}

	logger.Info("Customer payment created", slog.String("payment_id", payment.PaymentID), slog.String("amount", payment.Amount.String()))
	return &payment, nil
}

func (s *paymentService) GetCustomerPayment(ctx context.Context, paymentID string) (*domain.CustomerPayment, error) {
	payment, err := s.paymentRepo.FindCustomerPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find customer payment", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) CreateVendorPayment(ctx context.Context, req dto.CreateVendorPaymentRequest, userID string) (*domain.VendorPayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNonPositiveAmount)
	}
	if _, err := s.partyRepo.FindVendorByID(ctx, req.VendorID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("vendor %s: %w", req.VendorID, err)
		}
		logger.Error("Failed to resolve vendor for payment", slog.String("vendor_id", req.VendorID), slog.String("error", err.Error()))
		return nil, err
	}
	if _, err := s.billRepo.FindBillByID(ctx, req.InvoiceID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("bill %s: %w", req.InvoiceID, err)
		}
		logger.Error("Failed to resolve bill for payment", slog.String("invoice_id", req.InvoiceID), slog.String("error", err.Error()))
		return nil, err
	}
	if _, err := s.journalRepo.FindJournalByID(ctx, req.JournalID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("journal %s: %w", req.JournalID, err)
		}
		logger.Error("Failed to resolve journal for payment", slog.String("journal_id", req.JournalID), slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	paymentDate := now
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	payment := domain.VendorPayment{
		PaymentID:   uuid.NewString(),
		VendorID:    req.VendorID,
		InvoiceID:   req.InvoiceID,
		PaymentDate: paymentDate,
		Amount:      req.Amount,
		JournalID:   req.JournalID,
		Reference:   req.Reference,
		Status:      domain.PaymentDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.paymentRepo.SaveVendorPayment(ctx, payment); err != nil {
		logger.Error("Failed to save vendor payment", slog.String("payment_id", payment.PaymentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save vendor payment: %w", err)
	}

	logger.Info("Vendor payment created", slog.String("payment_id", payment.PaymentID), slog.String("amount", payment.Amount.String()))
	return &payment, nil
}

func (s *paymentService) GetVendorPayment(ctx context.Context, paymentID string) (*domain.VendorPayment, error) {
	payment, err := s.paymentRepo.FindVendorPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find vendor payment", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return payment, nil
}
