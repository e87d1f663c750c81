package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/finbooks/books_backend/internal/apperrors"
	"github.com/finbooks/books_backend/internal/core/domain"
	portsrepo "github.com/finbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/books_backend/internal/core/ports/services"
	"github.com/finbooks/books_backend/internal/middleware"
	"github.com/finbooks/books_backend/internal/utils/accounting"
)

// PostingAccounts holds the chart codes the posting workflows write against.
// Resolved from configuration at startup and validated before serving.
type PostingAccounts struct {
	Receivable   string // Accounts receivable, debited on invoice posting
	Payable      string // Accounts payable, credited on bill posting
	CashBank     string // Cash/bank, moved on payment posting
	SalesRevenue string // Revenue recognized on invoice posting
	Expense      string // Expense recognized on bill posting
}

// postingService implements the document posting workflows. Every workflow
// runs in a single transaction: the journal entry, both items, both account
// balances, the document status and the party balance commit together or
// not at all.
type postingService struct {
	accounts    PostingAccounts
	txm         portsrepo.TransactionManager
	accountRepo portsrepo.AccountRepositoryFacade
	entryRepo   portsrepo.EntryRepositoryFacade
	invoiceRepo portsrepo.SalesInvoiceRepositoryFacade
	billRepo    portsrepo.PurchaseInvoiceRepositoryFacade
	paymentRepo portsrepo.PaymentRepositoryFacade
	partyRepo   portsrepo.PartyRepositoryFacade
}

// NewPostingService creates a new posting service.
func NewPostingService(
	accounts PostingAccounts,
	txm portsrepo.TransactionManager,
	accountRepo portsrepo.AccountRepositoryFacade,
	entryRepo portsrepo.EntryRepositoryFacade,
	invoiceRepo portsrepo.SalesInvoiceRepositoryFacade,
	billRepo portsrepo.PurchaseInvoiceRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	partyRepo portsrepo.PartyRepositoryFacade,
) portssvc.PostingSvcFacade {
	return &postingService{
		accounts:    accounts,
		txm:         txm,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		invoiceRepo: invoiceRepo,
		billRepo:    billRepo,
		paymentRepo: paymentRepo,
		partyRepo:   partyRepo,
	}
}

// Ensure postingService implements the portssvc.PostingSvcFacade interface
var _ portssvc.PostingSvcFacade = (*postingService)(nil)

func (s *postingService) PostSalesInvoice(ctx context.Context, invoiceID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.txm.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin posting transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.txm.Rollback(ctx, tx) }()

	invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceDraft {
		logger.Debug("Invoice not in draft status, nothing to post", slog.String("invoice_id", invoiceID), slog.String("status", string(invoice.Status)))
		return nil, nil
	}

	customer, err := s.partyRepo.FindCustomerByIDForUpdate(ctx, tx, invoice.CustomerID)
	if err != nil {
		return nil, err
	}

	entry, err := s.createPostedEntryInTx(ctx, tx, postingInstruction{
		journalID:   invoice.JournalID,
		description: fmt.Sprintf("Invoice %s - %s", invoice.InvoiceID, customer.Name),
		label:       fmt.Sprintf("Invoice %s", invoice.InvoiceID),
		partner:     customer.Name,
		debitCode:   s.accounts.Receivable,
		creditCode:  s.accounts.SalesRevenue,
		amount:      invoice.Total,
		userID:      userID,
	})
	if err != nil {
		logger.Error("Failed to create journal entry for invoice", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.invoiceRepo.UpdateInvoiceStatusInTx(ctx, tx, invoiceID, domain.InvoicePosted); err != nil {
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}

	newBalance := customer.CurrentBalance.Add(invoice.Total)
	if err := s.partyRepo.UpdateCustomerBalanceInTx(ctx, tx, customer.CustomerID, newBalance, userID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to update customer balance: %w", err)
	}

	if err := s.txm.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit invoice posting", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to commit invoice posting: %w", err)
	}

	logger.Info("Sales invoice posted",
		slog.String("invoice_id", invoiceID),
		slog.String("entry_id", entry.EntryID),
		slog.String("total", invoice.Total.String()))
	return entry, nil
}

func (s *postingService) PostPurchaseInvoice(ctx context.Context, invoiceID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.txm.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin posting transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.txm.Rollback(ctx, tx) }()

	bill, err := s.billRepo.FindBillByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}
	if bill.Status != domain.InvoiceDraft {
		logger.Debug("Bill not in draft status, nothing to post", slog.String("invoice_id", invoiceID), slog.String("status", string(bill.Status)))
		return nil, nil
	}

	vendor, err := s.partyRepo.FindVendorByIDForUpdate(ctx, tx, bill.VendorID)
	if err != nil {
		return nil, err
	}

	entry, err := s.createPostedEntryInTx(ctx, tx, postingInstruction{
		journalID:   bill.JournalID,
		description: fmt.Sprintf("Bill %s - %s", bill.InvoiceID, vendor.Name),
		label:       fmt.Sprintf("Bill %s", bill.InvoiceID),
		partner:     vendor.Name,
		debitCode:   s.accounts.Expense,
		creditCode:  s.accounts.Payable,
		amount:      bill.Total,
		userID:      userID,
	})
	if err != nil {
		logger.Error("Failed to create journal entry for bill", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.billRepo.UpdateBillStatusInTx(ctx, tx, invoiceID, domain.InvoicePosted); err != nil {
		return nil, fmt.Errorf("failed to update bill status: %w", err)
	}

	newBalance := vendor.CurrentBalance.Add(bill.Total)
	if err := s.partyRepo.UpdateVendorBalanceInTx(ctx, tx, vendor.VendorID, newBalance, userID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to update vendor balance: %w", err)
	}

	if err := s.txm.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit bill posting", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to commit bill posting: %w", err)
	}

	logger.Info("Purchase invoice posted",
		slog.String("invoice_id", invoiceID),
		slog.String("entry_id", entry.EntryID),
		slog.String("total", bill.Total.String()))
	return entry, nil
}

func (s *postingService) PostCustomerPayment(ctx context.Context, paymentID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.txm.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin posting transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.txm.Rollback(ctx, tx) }()

	payment, err := s.paymentRepo.FindCustomerPaymentByIDForUpdate(ctx, tx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentDraft {
		logger.Debug("Customer payment not in draft status, nothing to post", slog.String("payment_id", paymentID), slog.String("status", string(payment.Status)))
		return nil, nil
	}

	customer, err := s.partyRepo.FindCustomerByIDForUpdate(ctx, tx, payment.CustomerID)
	if err != nil {
		return nil, err
	}

	// Money received: cash goes up, the receivable owed by the customer
	// goes down.
	entry, err := s.createPostedEntryInTx(ctx, tx, postingInstruction{
		journalID:   payment.JournalID,
		description: fmt.Sprintf("Payment %s - %s", payment.PaymentID, customer.Name),
		label:       fmt.Sprintf("Payment %s", payment.PaymentID),
		partner:     customer.Name,
		debitCode:   s.accounts.CashBank,
		creditCode:  s.accounts.Receivable,
		amount:      payment.Amount,
		userID:      userID,
	})
	if err != nil {
		logger.Error("Failed to create journal entry for customer payment", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.paymentRepo.UpdateCustomerPaymentStatusInTx(ctx, tx, paymentID, domain.PaymentPaid); err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	newBalance := customer.CurrentBalance.Sub(payment.Amount)
	if err := s.partyRepo.UpdateCustomerBalanceInTx(ctx, tx, customer.CustomerID, newBalance, userID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to update customer balance: %w", err)
	}

	if err := s.txm.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit customer payment posting", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to commit payment posting: %w", err)
	}

	logger.Info("Customer payment posted",
		slog.String("payment_id", paymentID),
		slog.String("entry_id", entry.EntryID),
		slog.String("amount", payment.Amount.String()))
	return entry, nil
}

func (s *postingService) PostVendorPayment(ctx context.Context, paymentID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.txm.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin posting transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.txm.Rollback(ctx, tx) }()

	payment, err := s.paymentRepo.FindVendorPaymentByIDForUpdate(ctx, tx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentDraft {
		logger.Debug("Vendor payment not in draft status, nothing to post", slog.String("payment_id", paymentID), slog.String("status", string(payment.Status)))
		return nil, nil
	}

	vendor, err := s.partyRepo.FindVendorByIDForUpdate(ctx, tx, payment.VendorID)
	if err != nil {
		return nil, err
	}

	// Money paid out: the payable owed to the vendor goes down, cash goes
	// down with it.
	entry, err := s.createPostedEntryInTx(ctx, tx, postingInstruction{
		journalID:   payment.JournalID,
		description: fmt.Sprintf("Payment %s - %s", payment.PaymentID, vendor.Name),
		label:       fmt.Sprintf("Payment %s", payment.PaymentID),
		partner:     vendor.Name,
		debitCode:   s.accounts.Payable,
		creditCode:  s.accounts.CashBank,
		amount:      payment.Amount,
		userID:      userID,
	})
	if err != nil {
		logger.Error("Failed to create journal entry for vendor payment", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.paymentRepo.UpdateVendorPaymentStatusInTx(ctx, tx, paymentID, domain.PaymentPaid); err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	newBalance := vendor.CurrentBalance.Sub(payment.Amount)
	if err := s.partyRepo.UpdateVendorBalanceInTx(ctx, tx, vendor.VendorID, newBalance, userID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to update vendor balance: %w", err)
	}

	if err := s.txm.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit vendor payment posting", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to commit payment posting: %w", err)
	}

	logger.Info("Vendor payment posted",
		slog.String("payment_id", paymentID),
		slog.String("entry_id", entry.EntryID),
		slog.String("amount", payment.Amount.String()))
	return entry, nil
}

func (s *postingService) ValidatePostingAccounts(ctx context.Context) error {
	codes := []string{
		s.accounts.Receivable,
		s.accounts.Payable,
		s.accounts.CashBank,
		s.accounts.SalesRevenue,
		s.accounts.Expense,
	}

	found, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		return fmt.Errorf("failed to resolve posting accounts: %w", err)
	}

	var missing []string
	for _, code := range codes {
		if _, ok := found[code]; !ok {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: posting accounts with codes %s do not exist", apperrors.ErrNotFound, strings.Join(missing, ", "))
	}
	return nil
}

// postingInstruction describes the single debit/credit pair a document
// posting writes to the ledger.
type postingInstruction struct {
	journalID   string
	description string
	label       string
	partner     string
	debitCode   string
	creditCode  string
	amount      decimal.Decimal
	userID      string
}

// createPostedEntryInTx creates a new journal entry with one debit item and
// one credit item of equal amount, recomputes both account balances and
// marks the entry posted. Runs entirely inside the caller's transaction.
func (s *postingService) createPostedEntryInTx(ctx context.Context, tx pgx.Tx, inst postingInstruction) (*domain.JournalEntry, error) {
	debitAccount, err := s.accountRepo.FindAccountByCodeForUpdate(ctx, tx, inst.debitCode)
	if err != nil {
		return nil, fmt.Errorf("posting account %s: %w", inst.debitCode, err)
	}
	creditAccount, err := s.accountRepo.FindAccountByCodeForUpdate(ctx, tx, inst.creditCode)
	if err != nil {
		return nil, fmt.Errorf("posting account %s: %w", inst.creditCode, err)
	}

	highest, err := s.entryRepo.HighestEntryReferenceForUpdate(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to read highest entry reference: %w", err)
	}
	reference, err := accounting.NextSequence(highest, entryReferenceSeed, entryReferenceWidth)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:        uuid.NewString(),
		Reference:      reference,
		AccountingDate: now,
		JournalID:      inst.journalID,
		Description:    inst.description,
		Status:         domain.EntryDraft,
		CreatedAt:      now,
	}
	if err := s.entryRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	items := []domain.JournalItem{
		{
			ItemID:    uuid.NewString(),
			EntryID:   entry.EntryID,
			AccountID: debitAccount.AccountID,
			Partner:   inst.partner,
			Label:     inst.label,
			Debit:     inst.amount,
			Credit:    decimal.Zero,
		},
		{
			ItemID:    uuid.NewString(),
			EntryID:   entry.EntryID,
			AccountID: creditAccount.AccountID,
			Partner:   inst.partner,
			Label:     inst.label,
			Debit:     decimal.Zero,
			Credit:    inst.amount,
		},
	}
	for _, item := range items {
		if err := s.entryRepo.SaveItemInTx(ctx, tx, item); err != nil {
			return nil, fmt.Errorf("failed to save item: %w", err)
		}
	}

	for _, accountID := range []string{debitAccount.AccountID, creditAccount.AccountID} {
		debits, credits, err := s.accountRepo.SumItemsByAccountInTx(ctx, tx, accountID)
		if err != nil {
			return nil, fmt.Errorf("failed to sum journal items for account %s: %w", accountID, err)
		}
		balance := debits.Sub(credits)
		if err := s.accountRepo.UpdateAccountBalanceInTx(ctx, tx, accountID, balance, inst.userID, now); err != nil {
			return nil, fmt.Errorf("failed to store balance for account %s: %w", accountID, err)
		}
	}

	entry.Items = items
	if !entry.IsBalanced() {
		return nil, fmt.Errorf("%w: debits %s, credits %s", apperrors.ErrUnbalanced,
			entry.TotalDebits().String(), entry.TotalCredits().String())
	}

	if err := s.entryRepo.UpdateEntryStatusInTx(ctx, tx, entry.EntryID, domain.EntryPosted); err != nil {
		return nil, fmt.Errorf("failed to update entry status: %w", err)
	}
	entry.Status = domain.EntryPosted
	return &entry, nil
}
