package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/finbooks/books_backend/internal/apperrors"
	"github.com/finbooks/books_backend/internal/core/domain"
	portsrepo "github.com/finbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/books_backend/internal/core/ports/services"
	"github.com/finbooks/books_backend/internal/dto"
	"github.com/finbooks/books_backend/internal/middleware"
)

var (
	ErrInvoiceNotDraft = errors.New("invoice is not in draft status")
	ErrNegativeLine    = errors.New("quantity and price must not be negative")
	ErrProductNotSold  = errors.New("product is not offered for sale")
)

// invoiceService manages draft sales invoices and their lines. The stored
// total is derived data; every line mutation recomputes it from the full
// line set inside the same transaction.
type invoiceService struct {
	invoiceRepo portsrepo.SalesInvoiceRepositoryWithTx
	partyRepo   portsrepo.PartyRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewInvoiceService creates a new sales invoice service.
func NewInvoiceService(invoiceRepo portsrepo.SalesInvoiceRepositoryWithTx, partyRepo portsrepo.PartyRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		partyRepo:   partyRepo,
		journalRepo: journalRepo,
	}
}

// Ensure invoiceService implements the portssvc.InvoiceSvcFacade interface
var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.SalesInvoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.partyRepo.FindCustomerByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("customer %s: %w", req.CustomerID, err)
		}
		logger.Error("Failed to resolve customer for invoice", slog.String("customer_id", req.CustomerID), slog.String("error", err.Error()))
		return nil, err
	}
	if _, err := s.journalRepo.FindJournalByID(ctx, req.JournalID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("journal %s: %w", req.JournalID, err)
		}
		logger.Error("Failed to resolve journal for invoice", slog.String("journal_id", req.JournalID), slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	invoiceDate := now
	if req.InvoiceDate != nil {
		invoiceDate = *req.InvoiceDate
	}
	terms := req.PaymentTerms
	if terms == "" {
		terms = domain.TermsImmediate
	}

	invoice := domain.SalesInvoice{
		InvoiceID:    uuid.NewString(),
		CustomerID:   req.CustomerID,
		InvoiceDate:  invoiceDate,
		DueDate:      req.DueDate,
		PaymentTerms: terms,
		Status:       domain.InvoiceDraft,
		Total:        decimal.Zero,
		JournalID:    req.JournalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		Lines: []domain.InvoiceLine{},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		logger.Error("Failed to save invoice", slog.String("invoice_id", invoice.InvoiceID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	logger.Info("Invoice created", slog.String("invoice_id", invoice.InvoiceID), slog.String("customer_id", invoice.CustomerID))
	return &invoice, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, invoiceID string) (*domain.SalesInvoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find invoice by ID", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	lines, err := s.invoiceRepo.FindInvoiceLines(ctx, invoiceID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to load invoice lines", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load invoice lines: %w", err)
	}
	if lines == nil {
		lines = []domain.InvoiceLine{}
	}
	invoice.Lines = lines
	return invoice, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, limit int, offset int) ([]domain.SalesInvoice, error) {
	invoices, err := s.invoiceRepo.ListInvoices(ctx, limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list invoices", slog.Int("limit", limit), slog.Int("offset", offset), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if invoices == nil {
		return []domain.SalesInvoice{}, nil
	}
	return invoices, nil
}

func (s *invoiceService) AddLine(ctx context.Context, invoiceID string, req dto.AddLineRequest, userID string) (*domain.SalesInvoice, error) {
	if req.Quantity.IsNegative() || req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativeLine)
	}
	if err := s.requireSellableProduct(ctx, req.ProductID); err != nil {
		return nil, err
	}

	line := domain.InvoiceLine{
		LineID:      uuid.NewString(),
		InvoiceID:   invoiceID,
		ProductID:   req.ProductID,
		AccountID:   req.AccountID,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Description: req.Description,
		Notes:       req.Notes,
	}

	return s.mutateLines(ctx, invoiceID, userID, "add line", func(ctx context.Context, tx pgx.Tx) error {
		return s.invoiceRepo.SaveLineInTx(ctx, tx, line)
	})
}

func (s *invoiceService) UpdateLine(ctx context.Context, invoiceID string, lineID string, req dto.AddLineRequest, userID string) (*domain.SalesInvoice, error) {
	if req.Quantity.IsNegative() || req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativeLine)
	}
	if err := s.requireSellableProduct(ctx, req.ProductID); err != nil {
		return nil, err
	}

	return s.mutateLines(ctx, invoiceID, userID, "update line", func(ctx context.Context, tx pgx.Tx) error {
		if err := s.requireLineOnInvoice(ctx, tx, invoiceID, lineID); err != nil {
			return err
		}
		line := domain.InvoiceLine{
			LineID:      lineID,
			InvoiceID:   invoiceID,
			ProductID:   req.ProductID,
			AccountID:   req.AccountID,
			Quantity:    req.Quantity,
			Price:       req.Price,
			Description: req.Description,
			Notes:       req.Notes,
		}
		return s.invoiceRepo.UpdateLineInTx(ctx, tx, line)
	})
}

func (s *invoiceService) RemoveLine(ctx context.Context, invoiceID string, lineID string, userID string) (*domain.SalesInvoice, error) {
	return s.mutateLines(ctx, invoiceID, userID, "remove line", func(ctx context.Context, tx pgx.Tx) error {
		if err := s.requireLineOnInvoice(ctx, tx, invoiceID, lineID); err != nil {
			return err
		}
		return s.invoiceRepo.DeleteLineInTx(ctx, tx, lineID)
	})
}

// mutateLines runs one line mutation against a locked draft invoice and then
// recomputes the stored total from the surviving lines before committing.
func (s *invoiceService) mutateLines(ctx context.Context, invoiceID string, userID string, action string, mutate func(ctx context.Context, tx pgx.Tx) error) (*domain.SalesInvoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction for invoice line mutation", slog.String("action", action), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.invoiceRepo.Rollback(ctx, tx) }()

	invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceDraft {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidState, ErrInvoiceNotDraft)
	}

	if err := mutate(ctx, tx); err != nil {
		logger.Error("Invoice line mutation failed", slog.String("invoice_id", invoiceID), slog.String("action", action), slog.String("error", err.Error()))
		return nil, err
	}

	lines, err := s.invoiceRepo.FindInvoiceLinesInTx(ctx, tx, invoiceID)
	if err != nil {
		logger.Error("Failed to reload invoice lines", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to reload invoice lines: %w", err)
	}
	if lines == nil {
		lines = []domain.InvoiceLine{}
	}

	total := domain.CalculateTotal(lines)
	if err := s.invoiceRepo.UpdateInvoiceTotalInTx(ctx, tx, invoiceID, total, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to store invoice total", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to store invoice total: %w", err)
	}

	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit invoice line mutation", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to commit invoice line mutation: %w", err)
	}

	invoice.Lines = lines
	invoice.Total = total
	logger.Info("Invoice lines updated", slog.String("invoice_id", invoiceID), slog.String("action", action), slog.String("total", total.String()))
	return invoice, nil
}

// requireSellableProduct checks that a referenced product exists and is
// offered for sale. Lines without a product reference are free-form.
func (s *invoiceService) requireSellableProduct(ctx context.Context, productID string) error {
	if productID == "" {
		return nil
	}
	product, err := s.partyRepo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
		}
		return fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	if !product.Sales {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrProductNotSold)
	}
	return nil
}

func (s *invoiceService) requireLineOnInvoice(ctx context.Context, tx pgx.Tx, invoiceID string, lineID string) error {
	lines, err := s.invoiceRepo.FindInvoiceLinesInTx(ctx, tx, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to load invoice lines: %w", err)
	}
	for _, line := range lines {
		if line.LineID == lineID {
			return nil
		}
	}
	return fmt.Errorf("%w: line %s, invoice %s", apperrors.ErrNotFound, lineID, invoiceID)
}
