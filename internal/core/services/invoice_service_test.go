package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks/books_backend/internal/apperrors"
	"github.com/finbooks/books_backend/internal/core/domain"
	portssvc "github.com/finbooks/books_backend/internal/core/ports/services"
	"github.com/finbooks/books_backend/internal/core/services"
	"github.com/finbooks/books_backend/internal/dto"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockPartyRepo   *MockPartyRepository
	mockJournalRepo *MockJournalRepository
	service         portssvc.InvoiceSvcFacade
	userID          string
	customerID      string
	journalID       string
}

func (s *InvoiceServiceTestSuite) SetupTest() {
	s.mockInvoiceRepo = new(MockInvoiceRepository)
	s.mockPartyRepo = new(MockPartyRepository)
	s.mockJournalRepo = new(MockJournalRepository)
	s.service = services.NewInvoiceService(s.mockInvoiceRepo, s.mockPartyRepo, s.mockJournalRepo)
	s.userID = uuid.NewString()
	s.customerID = uuid.NewString()
	s.journalID = uuid.NewString()
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_StartsAsZeroTotalDraft() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{CustomerID: s.customerID, JournalID: s.journalID}

	customer := &domain.Customer{CustomerID: s.customerID, Name: "Acme Ltd"}
	journal := &domain.Journal{JournalID: s.journalID, Code: "1001"}
	s.mockPartyRepo.On("FindCustomerByID", ctx, s.customerID).Return(customer, nil).Once()
	s.mockJournalRepo.On("FindJournalByID", ctx, s.journalID).Return(journal, nil).Once()
	s.mockInvoiceRepo.On("SaveInvoice", ctx, mock.MatchedBy(func(inv domain.SalesInvoice) bool {
		return inv.Status == domain.InvoiceDraft && inv.Total.IsZero() && inv.PaymentTerms == domain.TermsImmediate
	})).Return(nil).Once()

	invoice, err := s.service.CreateInvoice(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(invoice)
	s.Equal(domain.InvoiceDraft, invoice.Status)
	s.True(invoice.Total.IsZero())
	s.mockInvoiceRepo.AssertExpectations(s.T())
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_UnknownCustomer() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{CustomerID: s.customerID, JournalID: s.journalID}

	s.mockPartyRepo.On("FindCustomerByID", ctx, s.customerID).Return(nil, apperrors.ErrNotFound).Once()

	invoice, err := s.service.CreateInvoice(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(invoice)
	s.mockInvoiceRepo.AssertNotCalled(s.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (s *InvoiceServiceTestSuite) TestAddLine_RecomputesTotal() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	req := dto.AddLineRequest{
		Quantity: decimal.NewFromInt(3),
		Price:    decimal.RequireFromString("19.99"),
	}

	draft := &domain.SalesInvoice{InvoiceID: invoiceID, Status: domain.InvoiceDraft}
	lines := []domain.InvoiceLine{
		{LineID: uuid.NewString(), InvoiceID: invoiceID, Quantity: decimal.NewFromInt(3), Price: decimal.RequireFromString("19.99")},
	}

	s.mockInvoiceRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, mock.Anything, invoiceID).Return(draft, nil).Once()
	s.mockInvoiceRepo.On("SaveLineInTx", ctx, mock.Anything, mock.MatchedBy(func(line domain.InvoiceLine) bool {
		return line.InvoiceID == invoiceID && line.Quantity.Equal(decimal.NewFromInt(3))
	})).Return(nil).Once()
	s.mockInvoiceRepo.On("FindInvoiceLinesInTx", ctx, mock.Anything, invoiceID).Return(lines, nil).Once()
	s.mockInvoiceRepo.On("UpdateInvoiceTotalInTx", ctx, mock.Anything, invoiceID, mock.MatchedBy(func(total decimal.Decimal) bool {
		return total.Equal(decimal.RequireFromString("59.97"))
	}), s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.mockInvoiceRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	s.mockInvoiceRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()

	invoice, err := s.service.AddLine(ctx, invoiceID, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(invoice)
	s.True(invoice.Total.Equal(decimal.RequireFromString("59.97")))
	s.Len(invoice.Lines, 1)
	s.mockInvoiceRepo.AssertExpectations(s.T())
}

func (s *InvoiceServiceTestSuite) TestAddLine_PostedInvoiceRejected() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	req := dto.AddLineRequest{Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(10)}

	posted := &domain.SalesInvoice{InvoiceID: invoiceID, Status: domain.InvoicePosted}
	s.mockInvoiceRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, mock.Anything, invoiceID).Return(posted, nil).Once()
	s.mockInvoiceRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()

	invoice, err := s.service.AddLine(ctx, invoiceID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
	s.Nil(invoice)
	s.mockInvoiceRepo.AssertNotCalled(s.T(), "SaveLineInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (s *InvoiceServiceTestSuite) TestAddLine_NegativeQuantityRejected() {
	ctx := context.Background()
	req := dto.AddLineRequest{Quantity: decimal.NewFromInt(-1), Price: decimal.NewFromInt(10)}

	invoice, err := s.service.AddLine(ctx, uuid.NewString(), req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(invoice)
	s.mockInvoiceRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *InvoiceServiceTestSuite) TestAddLine_UnknownProductRejected() {
	ctx := context.Background()
	productID := uuid.NewString()
	req := dto.AddLineRequest{ProductID: productID, Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(10)}

	s.mockPartyRepo.On("FindProductByID", ctx, productID).Return(nil, apperrors.ErrNotFound).Once()

	invoice, err := s.service.AddLine(ctx, uuid.NewString(), req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(invoice)
	s.mockInvoiceRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *InvoiceServiceTestSuite) TestAddLine_ProductNotForSaleRejected() {
	ctx := context.Background()
	productID := uuid.NewString()
	req := dto.AddLineRequest{ProductID: productID, Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(10)}

	product := &domain.Product{ProductID: productID, Name: "Office rent", Sales: false, Purchase: true}
	s.mockPartyRepo.On("FindProductByID", ctx, productID).Return(product, nil).Once()

	invoice, err := s.service.AddLine(ctx, uuid.NewString(), req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(invoice)
	s.mockInvoiceRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *InvoiceServiceTestSuite) TestUpdateLine_UnknownLineRejected() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	lineID := uuid.NewString()
	req := dto.AddLineRequest{Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(5)}

	draft := &domain.SalesInvoice{InvoiceID: invoiceID, Status: domain.InvoiceDraft}
	s.mockInvoiceRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, mock.Anything, invoiceID).Return(draft, nil).Once()
	s.mockInvoiceRepo.On("FindInvoiceLinesInTx", ctx, mock.Anything, invoiceID).Return([]domain.InvoiceLine{}, nil).Once()
	s.mockInvoiceRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()

	invoice, err := s.service.UpdateLine(ctx, invoiceID, lineID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(invoice)
	s.mockInvoiceRepo.AssertNotCalled(s.T(), "UpdateLineInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (s *InvoiceServiceTestSuite) TestRemoveLine_EmptyInvoiceHasZeroTotal() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	lineID := uuid.NewString()

	draft := &domain.SalesInvoice{InvoiceID: invoiceID, Status: domain.InvoiceDraft, Total: decimal.NewFromInt(50)}
	existing := []domain.InvoiceLine{{LineID: lineID, InvoiceID: invoiceID, Quantity: decimal.NewFromInt(5), Price: decimal.NewFromInt(10)}}

	s.mockInvoiceRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, mock.Anything, invoiceID).Return(draft, nil).Once()
	// First read validates the line, second read recomputes the total.
	s.mockInvoiceRepo.On("FindInvoiceLinesInTx", ctx, mock.Anything, invoiceID).Return(existing, nil).Once()
	s.mockInvoiceRepo.On("DeleteLineInTx", ctx, mock.Anything, lineID).Return(nil).Once()
	s.mockInvoiceRepo.On("FindInvoiceLinesInTx", ctx, mock.Anything, invoiceID).Return([]domain.InvoiceLine{}, nil).Once()
	s.mockInvoiceRepo.On("UpdateInvoiceTotalInTx", ctx, mock.Anything, invoiceID, mock.MatchedBy(func(total decimal.Decimal) bool {
		return total.IsZero()
	}), s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.mockInvoiceRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	s.mockInvoiceRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()

	invoice, err := s.service.RemoveLine(ctx, invoiceID, lineID, s.userID)

	s.Require().NoError(err)
	s.True(invoice.Total.IsZero())
	s.Empty(invoice.Lines)
	s.mockInvoiceRepo.AssertExpectations(s.T())
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
