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

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockInvoiceRepo *MockInvoiceRepository
	mockBillRepo    *MockBillRepository
	mockPartyRepo   *MockPartyRepository
	mockJournalRepo *MockJournalRepository
	service         portssvc.PaymentSvcFacade
	userID          string
}

func (s *PaymentServiceTestSuite) SetupTest() {
	s.mockPaymentRepo = new(MockPaymentRepository)
	s.mockInvoiceRepo = new(MockInvoiceRepository)
	s.mockBillRepo = new(MockBillRepository)
	s.mockPartyRepo = new(MockPartyRepository)
	s.mockJournalRepo = new(MockJournalRepository)
	s.service = services.NewPaymentService(s.mockPaymentRepo, s.mockInvoiceRepo, s.mockBillRepo, s.mockPartyRepo, s.mockJournalRepo)
	s.userID = uuid.NewString()
}

func (s *PaymentServiceTestSuite) TestCreateCustomerPayment_StartsDraft() {
	ctx := context.Background()
	customerID := uuid.NewString()
	invoiceID := uuid.NewString()
	journalID := uuid.NewString()
	req := dto.CreateCustomerPaymentRequest{
		CustomerID: customerID,
		InvoiceID:  invoiceID,
		JournalID:  journalID,
		Amount:     decimal.NewFromInt(150),
		Reference:  "wire-20260110",
	}

	s.mockPartyRepo.On("FindCustomerByID", ctx, customerID).Return(&domain.Customer{CustomerID: customerID}, nil).Once()
	s.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(&domain.SalesInvoice{InvoiceID: invoiceID}, nil).Once()
	s.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(&domain.Journal{JournalID: journalID}, nil).Once()
	s.mockPaymentRepo.On("SaveCustomerPayment", ctx, mock.MatchedBy(func(p domain.CustomerPayment) bool {
		return p.Status == domain.PaymentDraft && p.Amount.Equal(decimal.NewFromInt(150))
	})).Return(nil).Once()

	payment, err := s.service.CreateCustomerPayment(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(payment)
	s.Equal(domain.PaymentDraft, payment.Status)
	s.Equal("wire-20260110", payment.Reference)
	s.mockPaymentRepo.AssertExpectations(s.T())
}

func (s *PaymentServiceTestSuite) TestCreateCustomerPayment_NonPositiveAmountRejected() {
	ctx := context.Background()
	req := dto.CreateCustomerPaymentRequest{
		CustomerID: uuid.NewString(),
		InvoiceID:  uuid.NewString(),
		JournalID:  uuid.NewString(),
		Amount:     decimal.Zero,
	}

	payment, err := s.service.CreateCustomerPayment(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(payment)
	s.mockPaymentRepo.AssertNotCalled(s.T(), "SaveCustomerPayment", mock.Anything, mock.Anything)
}

func (s *PaymentServiceTestSuite) TestCreateVendorPayment_UnknownBillRejected() {
	ctx := context.Background()
	vendorID := uuid.NewString()
	invoiceID := uuid.NewString()
	req := dto.CreateVendorPaymentRequest{
		VendorID:  vendorID,
		InvoiceID: invoiceID,
		JournalID: uuid.NewString(),
		Amount:    decimal.NewFromInt(60),
	}

	s.mockPartyRepo.On("FindVendorByID", ctx, vendorID).Return(&domain.Vendor{VendorID: vendorID}, nil).Once()
	s.mockBillRepo.On("FindBillByID", ctx, invoiceID).Return(nil, apperrors.ErrNotFound).Once()

	payment, err := s.service.CreateVendorPayment(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(payment)
	s.mockPaymentRepo.AssertNotCalled(s.T(), "SaveVendorPayment", mock.Anything, mock.Anything)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
