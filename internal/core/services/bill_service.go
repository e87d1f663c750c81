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

var ErrProductNotPurchased = errors.New("product is not offered for purchase")

// billService mirrors invoiceService for the payable side.
type billService struct {
	billRepo    portsrepo.PurchaseInvoiceRepositoryWithTx
	partyRepo   portsrepo.PartyRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewBillService creates a new purchase invoice service.
func NewBillService(billRepo portsrepo.PurchaseInvoiceRepositoryWithTx, partyRepo portsrepo.PartyRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade) portssvc.BillSvcFacade {
	return &billService{
		billRepo:    billRepo,
		partyRepo:   partyRepo,
		journalRepo: journalRepo,
	}
}

// Ensure billService implements the portssvc.BillSvcFacade interface
var _ portssvc.BillSvcFacade = (*billService)(nil)

func (s *billService) CreateBill(ctx context.Context, req dto.CreateBillRequest, userID string) (*domain.PurchaseInvoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.partyRepo.FindVendorByID(ctx, req.VendorID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("vendor %s: %w", req.VendorID, err)
		}
		logger.Error("Failed to resolve vendor for bill", slog.String("vendor_id", req.VendorID), slog.String("error", err.Error()))
		return nil, err
	}
	if _, err := s.journalRepo.FindJournalByID(ctx, req.JournalID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("journal %s: %w", req.JournalID, err)
		}
		logger.Error("Failed to resolve journal for bill", slog.String("journal_id", req.JournalID), slog.String("error", err.Error()))
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

	bill := domain.PurchaseInvoice{
		InvoiceID:    uuid.NewString(),
		VendorID:     req.VendorID,
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
		Lines: []domain.PurchaseLine{},
	}

	if err := s.billRepo.SaveBill(ctx, bill); err != nil {
		logger.Error("Failed to save bill", slog.String("invoice_id", bill.InvoiceID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save bill: %w", err)
	}

	logger.Info("Bill created", slog.String("invoice_id", bill.InvoiceID), slog.String("vendor_id", bill.VendorID))
	return &bill, nil
}

func (s *billService) GetBill(ctx context.Context, invoiceID string) (*domain.PurchaseInvoice, error) {
	bill, err := s.billRepo.FindBillByID(ctx, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find bill by ID", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	lines, err := s.billRepo.FindBillLines(ctx, invoiceID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to load bill lines", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load bill lines: %w", err)
	}
	if lines == nil {
		lines = []domain.PurchaseLine{}
	}
	bill.Lines = lines
	return bill, nil
}

func (s *billService) ListBills(ctx context.Context, limit int, offset int) ([]domain.PurchaseInvoice, error) {
	bills, err := s.billRepo.ListBills(ctx, limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list bills", slog.Int("limit", limit), slog.Int("offset", offset), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	if bills == nil {
		return []domain.PurchaseInvoice{}, nil
	}
	return bills, nil
}

func (s *billService) AddBillLine(ctx context.Context, invoiceID string, req dto.AddLineRequest, userID string) (*domain.PurchaseInvoice, error) {
	if req.Quantity.IsNegative() || req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativeLine)
	}
	if err := s.requirePurchasableProduct(ctx, req.ProductID); err != nil {
		return nil, err
	}

	line := domain.PurchaseLine{
		LineID:      uuid.NewString(),
		InvoiceID:   invoiceID,
		ProductID:   req.ProductID,
		AccountID:   req.AccountID,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Description: req.Description,
		Notes:       req.Notes,
	}

	return s.mutateBillLines(ctx, invoiceID, userID, "add line", func(ctx context.Context, tx pgx.Tx) error {
		return s.billRepo.SaveBillLineInTx(ctx, tx, line)
	})
}

func (s *billService) UpdateBillLine(ctx context.Context, invoiceID string, lineID string, req dto.AddLineRequest, userID string) (*domain.PurchaseInvoice, error) {
	if req.Quantity.IsNegative() || req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativeLine)
	}
	if err := s.requirePurchasableProduct(ctx, req.ProductID); err != nil {
		return nil, err
	}

	return s.mutateBillLines(ctx, invoiceID, userID, "update line", func(ctx context.Context, tx pgx.Tx) error {
		if err := s.requireLineOnBill(ctx, tx, invoiceID, lineID); err != nil {
			return err
		}
		line := domain.PurchaseLine{
			LineID:      lineID,
			InvoiceID:   invoiceID,
			ProductID:   req.ProductID,
			AccountID:   req.AccountID,
			Quantity:    req.Quantity,
			Price:       req.Price,
			Description: req.Description,
			Notes:       req.Notes,
		}
		return s.billRepo.UpdateBillLineInTx(ctx, tx, line)
	})
}

func (s *billService) RemoveBillLine(ctx context.Context, invoiceID string, lineID string, userID string) (*domain.PurchaseInvoice, error) {
	return s.mutateBillLines(ctx, invoiceID, userID, "remove line", func(ctx context.Context, tx pgx.Tx) error {
		if err := s.requireLineOnBill(ctx, tx, invoiceID, lineID); err != nil {
			return err
		}
		return s.billRepo.DeleteBillLineInTx(ctx, tx, lineID)
	})
}

// mutateBillLines runs one line mutation against a locked draft bill and then
// recomputes the stored total from the surviving lines before committing.
func (s *billService) mutateBillLines(ctx context.Context, invoiceID string, userID string, action string, mutate func(ctx context.Context, tx pgx.Tx) error) (*domain.PurchaseInvoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.billRepo.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction for bill line mutation", slog.String("action", action), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.billRepo.Rollback(ctx, tx) }()

	bill, err := s.billRepo.FindBillByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}
	if bill.Status != domain.InvoiceDraft {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidState, ErrInvoiceNotDraft)
	}

	if err := mutate(ctx, tx); err != nil {
		logger.Error("Bill line mutation failed", slog.String("invoice_id", invoiceID), slog.String("action", action), slog.String("error", err.Error()))
		return nil, err
	}

	lines, err := s.billRepo.FindBillLinesInTx(ctx, tx, invoiceID)
	if err != nil {
		logger.Error("Failed to reload bill lines", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to reload bill lines: %w", err)
	}
	if lines == nil {
		lines = []domain.PurchaseLine{}
	}

	total := domain.CalculatePurchaseTotal(lines)
	if err := s.billRepo.UpdateBillTotalInTx(ctx, tx, invoiceID, total, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to store bill total", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to store bill total: %w", err)
	}

	if err := s.billRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit bill line mutation", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to commit bill line mutation: %w", err)
	}

	bill.Lines = lines
	bill.Total = total
	logger.Info("Bill lines updated", slog.String("invoice_id", invoiceID), slog.String("action", action), slog.String("total", total.String()))
	return bill, nil
}

// requirePurchasableProduct checks that a referenced product exists and is
// offered for purchase. Lines without a product reference are free-form.
func (s *billService) requirePurchasableProduct(ctx context.Context, productID string) error {
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
	if !product.Purchase {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrProductNotPurchased)
	}
	return nil
}

func (s *billService) requireLineOnBill(ctx context.Context, tx pgx.Tx, invoiceID string, lineID string) error {
	lines, err := s.billRepo.FindBillLinesInTx(ctx, tx, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to load bill lines: %w", err)
	}
	for _, line := range lines {
		if line.LineID == lineID {
			return nil
		}
	}
	return fmt.Errorf("%w: line %s, bill %s", apperrors.ErrNotFound, lineID, invoiceID)
}
