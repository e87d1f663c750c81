package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/finbooks/books_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql repositories over one shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: NewAccountRepository(pool),
		JournalRepo: NewJournalRepository(pool),
		EntryRepo:   NewEntryRepository(pool),
		InvoiceRepo: NewInvoiceRepository(pool),
		BillRepo:    NewPurchaseInvoiceRepository(pool),
		PaymentRepo: NewPaymentRepository(pool),
		PartyRepo:   NewPartyRepository(pool),
	}
}
