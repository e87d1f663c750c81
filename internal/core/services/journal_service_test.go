package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks/books_backend/internal/apperrors"
	"github.com/finbooks/books_backend/internal/core/domain"
	portssvc "github.com/finbooks/books_backend/internal/core/ports/services"
	"github.com/finbooks/books_backend/internal/core/services"
	"github.com/finbooks/books_backend/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	service         portssvc.JournalSvcFacade
	userID          string
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.mockJournalRepo = new(MockJournalRepository)
	s.service = services.NewJournalService(s.mockJournalRepo)
	s.userID = uuid.NewString()
}

func (s *JournalServiceTestSuite) TestCreateJournal_FirstCodeIsSeed() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{Name: "Sales Journal", JournalType: domain.JournalSales}

	s.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockJournalRepo.On("HighestJournalCodeForUpdate", ctx, mock.Anything).Return("", nil).Once()
	s.mockJournalRepo.On("SaveJournalInTx", ctx, mock.Anything, mock.MatchedBy(func(j domain.Journal) bool {
		return j.Code == "1001" && j.JournalType == domain.JournalSales
	})).Return(nil).Once()
	s.mockJournalRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	s.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()

	journal, err := s.service.CreateJournal(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(journal)
	s.Equal("1001", journal.Code)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestCreateJournal_CodeIncrements() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{Name: "Bank Journal", JournalType: domain.JournalBank}

	s.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockJournalRepo.On("HighestJournalCodeForUpdate", ctx, mock.Anything).Return("1004", nil).Once()
	s.mockJournalRepo.On("SaveJournalInTx", ctx, mock.Anything, mock.MatchedBy(func(j domain.Journal) bool {
		return j.Code == "1005"
	})).Return(nil).Once()
	s.mockJournalRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	s.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()

	journal, err := s.service.CreateJournal(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Equal("1005", journal.Code)
}

func (s *JournalServiceTestSuite) TestGetJournalByID_NotFoundPropagates() {
	ctx := context.Background()
	journalID := uuid.NewString()

	s.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(nil, apperrors.ErrNotFound).Once()

	journal, err := s.service.GetJournalByID(ctx, journalID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(journal)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
