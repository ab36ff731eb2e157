package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/bank_simulator/internal/apperrors"
	"github.com/SscSPs/bank_simulator/internal/core/domain"
	portssvc "github.com/SscSPs/bank_simulator/internal/core/ports/services"
	"github.com/SscSPs/bank_simulator/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransferValidatorTestSuite struct {
	suite.Suite
	mockRecorder *MockTransactionWriter
	validator    portssvc.TransferValidatorSvc
	ctx          context.Context
	from         domain.Account
	lookups      int
}

func (s *TransferValidatorTestSuite) SetupTest() {
	s.mockRecorder = new(MockTransactionWriter)
	s.validator = services.NewTransferValidator(s.mockRecorder)
	s.ctx = context.Background()
	s.from = domain.Account{ID: "from", Owner: "u1", Balance: dec("50")}
	s.lookups = 0
}

func (s *TransferValidatorTestSuite) lookupReturning(acc *domain.Account, err error) portssvc.DestinationLookup {
	return func(ctx context.Context, bsb string, accountNumber string) (*domain.Account, error) {
		s.lookups++
		return acc, err
	}
}

func (s *TransferValidatorTestSuite) TestInvalidAmountIsCheckedFirst() {
	_, err := s.validator.ValidateAndTransfer(s.ctx, domain.Account{ID: "from", Owner: "u1"}, s.lookupReturning(nil, apperrors.ErrNotFound), "062000", "000000002", dec("-5"), "")
	s.ErrorIs(err, apperrors.ErrInvalidAmount)
	s.Zero(s.lookups)
	s.mockRecorder.AssertNotCalled(s.T(), "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransferValidatorTestSuite) TestInsufficientFundsBeforeLookup() {
	_, err := s.validator.ValidateAndTransfer(s.ctx, s.from, s.lookupReturning(nil, apperrors.ErrNotFound), "062000", "000000002", dec("50.01"), "")
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)
	s.Zero(s.lookups)
}

func (s *TransferValidatorTestSuite) TestCreditAccountUsesRemainingCredit() {
	credit := domain.Account{ID: "cc", Owner: "u1", Type: domain.Credit, Balance: dec("20"), OpeningBalance: dec("1000")}
	_, err := s.validator.ValidateAndTransfer(s.ctx, credit, s.lookupReturning(nil, apperrors.ErrNotFound), "062000", "000000002", dec("25"), "")
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)
}

func (s *TransferValidatorTestSuite) TestUnknownRecipient() {
	_, err := s.validator.ValidateAndTransfer(s.ctx, s.from, s.lookupReturning(nil, apperrors.ErrNotFound), "062000", "000000002", dec("10"), "")
	s.ErrorIs(err, apperrors.ErrRecipientNotFound)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Equal(1, s.lookups)
}

func (s *TransferValidatorTestSuite) TestLookupFailureIsNotNotFound() {
	boom := errors.New("connection reset")
	_, err := s.validator.ValidateAndTransfer(s.ctx, s.from, s.lookupReturning(nil, boom), "062000", "000000002", dec("10"), "")
	s.ErrorIs(err, boom)
	s.NotErrorIs(err, apperrors.ErrNotFound)
}

func (s *TransferValidatorTestSuite) TestSelfTransferRejected() {
	own := &domain.Account{ID: "other-own", Owner: "u1"}
	_, err := s.validator.ValidateAndTransfer(s.ctx, s.from, s.lookupReturning(own, nil), "062000", "000000002", dec("10"), "")
	s.ErrorIs(err, apperrors.ErrSelfTransferNotAllowed)
	s.mockRecorder.AssertNotCalled(s.T(), "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransferValidatorTestSuite) TestDelegatesToRecorder() {
	to := &domain.Account{ID: "to", Owner: "u2"}
	expected := &domain.Transaction{ID: "txn-1"}
	s.mockRecorder.On("Transfer", s.ctx, "from", "to", dec("50"), "lunch").Return(expected, nil).Once()

	txn, err := s.validator.ValidateAndTransfer(s.ctx, s.from, s.lookupReturning(to, nil), "062000", "000000002", dec("50"), "lunch")
	s.Require().NoError(err)
	s.Equal(expected, txn)
	s.mockRecorder.AssertExpectations(s.T())
}

func TestTransferValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(TransferValidatorTestSuite))
}
