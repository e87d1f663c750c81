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

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	userID          string
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.service = services.NewAccountService(s.mockAccountRepo)
	s.userID = uuid.NewString()
}

func (s *AccountServiceTestSuite) TestCreateAccount_FirstAccountGetsSeedCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:        "Accounts Receivable",
		AccountType: domain.Asset,
		Category:    "Current Assets",
	}

	s.mockAccountRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockAccountRepo.On("HighestAccountCodeForUpdate", ctx, mock.Anything).Return("", nil).Once()
	s.mockAccountRepo.On("SaveAccountInTx", ctx, mock.Anything, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Code == "1000" && acc.IsActive && acc.Balance.IsZero()
	})).Return(nil).Once()
	s.mockAccountRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	s.mockAccountRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()

	account, err := s.service.CreateAccount(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(account)
	s.Equal("1000", account.Code)
	s.Equal(domain.Asset, account.AccountType)
	s.True(account.IsActive)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestCreateAccount_NextCodeIsZeroPadded() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:        "Office Supplies",
		AccountType: domain.Expense,
		Category:    "Operating Expenses",
	}

	s.mockAccountRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockAccountRepo.On("HighestAccountCodeForUpdate", ctx, mock.Anything).Return("0999", nil).Once()
	s.mockAccountRepo.On("SaveAccountInTx", ctx, mock.Anything, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Code == "1000"
	})).Return(nil).Once()
	s.mockAccountRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	s.mockAccountRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()

	account, err := s.service.CreateAccount(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Equal("1000", account.Code)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestCreateAccount_NonNumericHighestCodeFails() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:        "Petty Cash",
		AccountType: domain.Asset,
		Category:    "Current Assets",
	}

	s.mockAccountRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockAccountRepo.On("HighestAccountCodeForUpdate", ctx, mock.Anything).Return("LEGACY-1", nil).Once()
	s.mockAccountRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()

	account, err := s.service.CreateAccount(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
	s.Nil(account)
	s.mockAccountRepo.AssertNotCalled(s.T(), "SaveAccountInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestCreateAccount_InactiveParentRejected() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Name:            "Sub Account",
		AccountType:     domain.Asset,
		Category:        "Current Assets",
		ParentAccountID: &parentID,
	}

	parent := &domain.Account{AccountID: parentID, Code: "1000", IsActive: false}
	s.mockAccountRepo.On("FindAccountByID", ctx, parentID).Return(parent, nil).Once()

	account, err := s.service.CreateAccount(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrParentInactive)
	s.Nil(account)
	s.mockAccountRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *AccountServiceTestSuite) TestCreateAccount_ParentChainCycleRejected() {
	ctx := context.Background()
	parentID := uuid.NewString()
	grandparentID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Name:            "Sub Account",
		AccountType:     domain.Asset,
		Category:        "Current Assets",
		ParentAccountID: &parentID,
	}

	// Corrupted hierarchy: the grandparent points back at the parent.
	parent := &domain.Account{AccountID: parentID, ParentAccountID: grandparentID, IsActive: true}
	grandparent := &domain.Account{AccountID: grandparentID, ParentAccountID: parentID, IsActive: true}
	s.mockAccountRepo.On("FindAccountByID", ctx, parentID).Return(parent, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, grandparentID).Return(grandparent, nil).Once()

	account, err := s.service.CreateAccount(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrParentCycle)
	s.Nil(account)
}

func (s *AccountServiceTestSuite) TestDeactivateAccount_RejectedWhileChildrenExist() {
	ctx := context.Background()
	accountID := uuid.NewString()

	account := &domain.Account{AccountID: accountID, Code: "1002", IsActive: true}
	s.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	s.mockAccountRepo.On("HasChildAccounts", ctx, accountID).Return(true, nil).Once()

	err := s.service.DeactivateAccount(ctx, accountID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrAccountHasKids)
	s.mockAccountRepo.AssertNotCalled(s.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestDeactivateAccount_Succeeds() {
	ctx := context.Background()
	accountID := uuid.NewString()

	account := &domain.Account{AccountID: accountID, Code: "1002", IsActive: true}
	s.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	s.mockAccountRepo.On("HasChildAccounts", ctx, accountID).Return(false, nil).Once()
	s.mockAccountRepo.On("DeactivateAccount", ctx, accountID, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := s.service.DeactivateAccount(ctx, accountID, s.userID)

	s.Require().NoError(err)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestRecomputeBalance_StoresDebitsMinusCredits() {
	ctx := context.Background()
	accountID := uuid.NewString()

	account := &domain.Account{AccountID: accountID, Code: "1000"}
	s.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	s.mockAccountRepo.On("SumItemsByAccount", ctx, accountID).
		Return(decimal.NewFromInt(250), decimal.NewFromInt(100), nil).Once()
	s.mockAccountRepo.On("UpdateAccountBalance", ctx, accountID, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(150))
	}), s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	balance, err := s.service.RecomputeBalance(ctx, accountID, s.userID)

	s.Require().NoError(err)
	s.True(balance.Equal(decimal.NewFromInt(150)))
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestRecomputeBalance_UnknownAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()

	s.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.RecomputeBalance(ctx, accountID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockAccountRepo.AssertNotCalled(s.T(), "SumItemsByAccount", mock.Anything, mock.Anything)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
