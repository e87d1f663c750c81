package services

import (
	"context"

	"github.com/finbooks/books_backend/internal/core/domain"
	"github.com/finbooks/books_backend/internal/dto"
)

// PaymentSvcFacade defines creation and retrieval of draft payment records.
// Posting a payment is the posting service's job.
type PaymentSvcFacade interface {
	// CreateCustomerPayment persists a new draft customer payment.
	CreateCustomerPayment(ctx context.Context, req dto.CreateCustomerPaymentRequest, userID string) (*domain.CustomerPayment, error)

	// GetCustomerPayment retrieves a customer payment.
	GetCustomerPayment(ctx context.Context, paymentID string) (*domain.CustomerPayment, error)

	// CreateVendorPayment persists a new draft vendor payment.
	CreateVendorPayment(ctx context.Context, req dto.CreateVendorPaymentRequest, userID string) (*domain.VendorPayment, error)

	// GetVendorPayment retrieves a vendor payment.
	GetVendorPayment(ctx context.Context, paymentID string) (*domain.VendorPayment, error)
}
