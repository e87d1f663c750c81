package services

import (
	"context"

	"github.com/finbooks/books_backend/internal/core/domain"
)

// PostingSvcFacade defines the four document posting workflows. Each one
// atomically creates a balanced journal entry, posts it, transitions the
// document's status forward and adjusts the counterparty's running balance.
// Posting a non-draft document is a no-op that returns without error.
type PostingSvcFacade interface {
	// PostSalesInvoice posts a draft sales invoice: debit receivable, credit
	// sales revenue, invoice draft -> posted, customer balance += total.
	PostSalesInvoice(ctx context.Context, invoiceID string, userID string) (*domain.JournalEntry, error)

	// PostPurchaseInvoice posts a draft purchase invoice: debit expense, credit
	// payable, bill draft -> posted, vendor balance += total.
	PostPurchaseInvoice(ctx context.Context, invoiceID string, userID string) (*domain.JournalEntry, error)

	// PostCustomerPayment posts a draft customer payment: debit cash/bank,
	// credit receivable, payment draft -> paid, customer balance -= amount.
	PostCustomerPayment(ctx context.Context, paymentID string, userID string) (*domain.JournalEntry, error)

	// PostVendorPayment posts a draft vendor payment: debit payable, credit
	// cash/bank, payment draft -> paid, vendor balance -= amount.
	PostVendorPayment(ctx context.Context, paymentID string, userID string) (*domain.JournalEntry, error)

	// ValidatePostingAccounts resolves every configured posting account code,
	// failing when any is missing. Called once at startup.
	ValidatePostingAccounts(ctx context.Context) error
}
