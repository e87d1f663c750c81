package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/finbooks/books_backend/internal/core/domain"
	portsrepo "github.com/finbooks/books_backend/internal/core/ports/repositories"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryWithTx = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) HasChildAccounts(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) HighestAccountCodeForUpdate(ctx context.Context, tx pgx.Tx) (string, error) {
	args := m.Called(ctx, tx)
	return args.String(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SumItemsByAccount(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockAccountRepository) UpdateAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, balance, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SumItemsByAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, tx, accountID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockAccountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, accountID, balance, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCodeForUpdate(ctx context.Context, tx pgx.Tx, code string) (*domain.Account, error) {
	args := m.Called(ctx, tx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryWithTx = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, limit int, offset int) ([]domain.Journal, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) HighestJournalCodeForUpdate(ctx context.Context, tx pgx.Tx) (string, error) {
	args := m.Called(ctx, tx)
	return args.String(0), args.Error(1)
}

func (m *MockJournalRepository) SaveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal) error {
	args := m.Called(ctx, tx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock EntryRepository ---

type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.EntryRepositoryWithTx = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalItem, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalItem), args.Error(1)
}

func (m *MockEntryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.JournalItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalItem), args.Error(1)
}

func (m *MockEntryRepository) HighestEntryReferenceForUpdate(ctx context.Context, tx pgx.Tx) (string, error) {
	args := m.Called(ctx, tx)
	return args.String(0), args.Error(1)
}

func (m *MockEntryRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) SaveItemInTx(ctx context.Context, tx pgx.Tx, item domain.JournalItem) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

func (m *MockEntryRepository) DeleteItemInTx(ctx context.Context, tx pgx.Tx, itemID string) error {
	args := m.Called(ctx, tx, itemID)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateEntryStatusInTx(ctx context.Context, tx pgx.Tx, entryID string, status domain.EntryStatus) error {
	args := m.Called(ctx, tx, entryID, status)
	return args.Error(0)
}

func (m *MockEntryRepository) FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindItemsByEntryIDInTx(ctx context.Context, tx pgx.Tx, entryID string) ([]domain.JournalItem, error) {
	args := m.Called(ctx, tx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalItem), args.Error(1)
}

func (m *MockEntryRepository) FindItemByIDInTx(ctx context.Context, tx pgx.Tx, itemID string) (*domain.JournalItem, error) {
	args := m.Called(ctx, tx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalItem), args.Error(1)
}

func (m *MockEntryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockEntryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEntryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock SalesInvoiceRepository ---

type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.SalesInvoiceRepositoryWithTx = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.SalesInvoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesInvoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceLines(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceLine), args.Error(1)
}

func (m *MockInvoiceRepository) FindLineByID(ctx context.Context, lineID string) (*domain.InvoiceLine, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceLine), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, limit int, offset int) ([]domain.SalesInvoice, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesInvoice), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.SalesInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveLineInTx(ctx context.Context, tx pgx.Tx, line domain.InvoiceLine) error {
	args := m.Called(ctx, tx, line)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateLineInTx(ctx context.Context, tx pgx.Tx, line domain.InvoiceLine) error {
	args := m.Called(ctx, tx, line)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteLineInTx(ctx context.Context, tx pgx.Tx, lineID string) error {
	args := m.Called(ctx, tx, lineID)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindInvoiceLinesInTx(ctx context.Context, tx pgx.Tx, invoiceID string) ([]domain.InvoiceLine, error) {
	args := m.Called(ctx, tx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceLine), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoiceTotalInTx(ctx context.Context, tx pgx.Tx, invoiceID string, total decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, invoiceID, total, userID, now)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatusInTx(ctx context.Context, tx pgx.Tx, invoiceID string, status domain.InvoiceStatus) error {
	args := m.Called(ctx, tx, invoiceID, status)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.SalesInvoice, error) {
	args := m.Called(ctx, tx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesInvoice), args.Error(1)
}

func (m *MockInvoiceRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockInvoiceRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock PurchaseInvoiceRepository ---

type MockBillRepository struct {
	mock.Mock
}

var _ portsrepo.PurchaseInvoiceRepositoryWithTx = (*MockBillRepository)(nil)

func (m *MockBillRepository) FindBillByID(ctx context.Context, invoiceID string) (*domain.PurchaseInvoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseInvoice), args.Error(1)
}

func (m *MockBillRepository) FindBillLines(ctx context.Context, invoiceID string) ([]domain.PurchaseLine, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseLine), args.Error(1)
}

func (m *MockBillRepository) FindBillLineByID(ctx context.Context, lineID string) (*domain.PurchaseLine, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseLine), args.Error(1)
}

func (m *MockBillRepository) ListBills(ctx context.Context, limit int, offset int) ([]domain.PurchaseInvoice, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseInvoice), args.Error(1)
}

func (m *MockBillRepository) SaveBill(ctx context.Context, invoice domain.PurchaseInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockBillRepository) SaveBillLineInTx(ctx context.Context, tx pgx.Tx, line domain.PurchaseLine) error {
	args := m.Called(ctx, tx, line)
	return args.Error(0)
}

func (m *MockBillRepository) UpdateBillLineInTx(ctx context.Context, tx pgx.Tx, line domain.PurchaseLine) error {
	args := m.Called(ctx, tx, line)
	return args.Error(0)
}

func (m *MockBillRepository) DeleteBillLineInTx(ctx context.Context, tx pgx.Tx, lineID string) error {
	args := m.Called(ctx, tx, lineID)
	return args.Error(0)
}

func (m *MockBillRepository) FindBillLinesInTx(ctx context.Context, tx pgx.Tx, invoiceID string) ([]domain.PurchaseLine, error) {
	args := m.Called(ctx, tx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseLine), args.Error(1)
}

func (m *MockBillRepository) UpdateBillTotalInTx(ctx context.Context, tx pgx.Tx, invoiceID string, total decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, invoiceID, total, userID, now)
	return args.Error(0)
}

func (m *MockBillRepository) UpdateBillStatusInTx(ctx context.Context, tx pgx.Tx, invoiceID string, status domain.InvoiceStatus) error {
	args := m.Called(ctx, tx, invoiceID, status)
	return args.Error(0)
}

func (m *MockBillRepository) FindBillByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.PurchaseInvoice, error) {
	args := m.Called(ctx, tx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseInvoice), args.Error(1)
}

func (m *MockBillRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockBillRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockBillRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock PaymentRepository ---

type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryWithTx = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindCustomerPaymentByID(ctx context.Context, paymentID string) (*domain.CustomerPayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerPayment), args.Error(1)
}

func (m *MockPaymentRepository) FindVendorPaymentByID(ctx context.Context, paymentID string) (*domain.VendorPayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VendorPayment), args.Error(1)
}

func (m *MockPaymentRepository) ListCustomerPayments(ctx context.Context, limit int, offset int) ([]domain.CustomerPayment, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerPayment), args.Error(1)
}

func (m *MockPaymentRepository) ListVendorPayments(ctx context.Context, limit int, offset int) ([]domain.VendorPayment, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VendorPayment), args.Error(1)
}

func (m *MockPaymentRepository) SaveCustomerPayment(ctx context.Context, payment domain.CustomerPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) SaveVendorPayment(ctx context.Context, payment domain.VendorPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindCustomerPaymentByIDForUpdate(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.CustomerPayment, error) {
	args := m.Called(ctx, tx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerPayment), args.Error(1)
}

func (m *MockPaymentRepository) FindVendorPaymentByIDForUpdate(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.VendorPayment, error) {
	args := m.Called(ctx, tx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VendorPayment), args.Error(1)
}

func (m *MockPaymentRepository) UpdateCustomerPaymentStatusInTx(ctx context.Context, tx pgx.Tx, paymentID string, status domain.PaymentStatus) error {
	args := m.Called(ctx, tx, paymentID, status)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdateVendorPaymentStatusInTx(ctx context.Context, tx pgx.Tx, paymentID string, status domain.PaymentStatus) error {
	args := m.Called(ctx, tx, paymentID, status)
	return args.Error(0)
}

func (m *MockPaymentRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockPaymentRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPaymentRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock PartyRepository ---

type MockPartyRepository struct {
	mock.Mock
}

var _ portsrepo.PartyRepositoryFacade = (*MockPartyRepository)(nil)

func (m *MockPartyRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockPartyRepository) FindVendorByID(ctx context.Context, vendorID string) (*domain.Vendor, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

func (m *MockPartyRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockPartyRepository) FindCustomerByIDForUpdate(ctx context.Context, tx pgx.Tx, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, tx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockPartyRepository) FindVendorByIDForUpdate(ctx context.Context, tx pgx.Tx, vendorID string) (*domain.Vendor, error) {
	args := m.Called(ctx, tx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

func (m *MockPartyRepository) UpdateCustomerBalanceInTx(ctx context.Context, tx pgx.Tx, customerID string, balance decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, customerID, balance, userID, now)
	return args.Error(0)
}

func (m *MockPartyRepository) UpdateVendorBalanceInTx(ctx context.Context, tx pgx.Tx, vendorID string, balance decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, vendorID, balance, userID, now)
	return args.Error(0)
}
