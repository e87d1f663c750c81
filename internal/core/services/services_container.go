package services

import (
	portsrepo "github.com/finbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/books_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. postingAccounts carries the configured chart
// codes the posting workflows write against.
func NewServiceContainer(postingAccounts PostingAccounts, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Journal = NewJournalService(repos.JournalRepo)
	container.Entry = NewEntryService(repos.EntryRepo, repos.AccountRepo, repos.JournalRepo)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.PartyRepo, repos.JournalRepo)
	container.Bill = NewBillService(repos.BillRepo, repos.PartyRepo, repos.JournalRepo)
	container.Payment = NewPaymentService(repos.PaymentRepo, repos.InvoiceRepo, repos.BillRepo, repos.PartyRepo, repos.JournalRepo)

	// Posting spans every repository; it begins its transactions on the
	// entry repository's pool.
	container.Posting = NewPostingService(
		postingAccounts,
		repos.EntryRepo,
		repos.AccountRepo,
		repos.EntryRepo,
		repos.InvoiceRepo,
		repos.BillRepo,
		repos.PaymentRepo,
		repos.PartyRepo,
	)

	return container
}
