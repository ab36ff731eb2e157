package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/bank_simulator/internal/apperrors"
	"github.com/SscSPs/bank_simulator/internal/core/domain"
	portssvc "github.com/SscSPs/bank_simulator/internal/core/ports/services"
	"github.com/SscSPs/bank_simulator/internal/core/services"
	"github.com/SscSPs/bank_simulator/internal/dto"
	"github.com/SscSPs/bank_simulator/internal/repositories/memory"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	store         *memory.Store
	mockValidator *MockTransferValidator
	mockEngine    *MockSettlementEngine
	service       portssvc.PaymentSvcFacade
	ctx           context.Context
	account       domain.Account
	biller        domain.Biller
}

func (s *PaymentServiceTestSuite) SetupTest() {
	s.store = memory.NewStore()
	s.mockValidator = new(MockTransferValidator)
	s.mockEngine = new(MockSettlementEngine)
	ledger := services.NewLedgerService(s.store, s.store)
	s.service = services.NewPaymentService(s.store, s.store, ledger, s.mockValidator, s.mockEngine)
	s.ctx = context.Background()

	s.account = seedAccount(s.T(), s.store, domain.Account{ID: "acc-1", Owner: "u1", OwnerUsername: "alice", AccountNumber: "000000001", Balance: dec("100")})
	s.biller = domain.Biller{ID: "b1", BillerCode: "23796", Name: "Power Co"}
	s.Require().NoError(s.store.SaveBiller(s.ctx, s.biller))
}

func (s *PaymentServiceTestSuite) payBills(amount string) dto.PayBillsRequest {
	return dto.PayBillsRequest{
		FromAccountID:   "acc-1",
		BillerName:      "Power Co",
		BillerCode:      "23796",
		ReferenceNumber: "4455",
		Amount:          dec(amount),
		Description:     "power",
	}
}

func (s *PaymentServiceTestSuite) TestTransfer_SourceOwnedByAnotherUserIsNotFound() {
	_, err := s.service.Transfer(s.ctx, "intruder", dto.TransferRequest{FromAccountID: "acc-1", BSB: "062000", AccountNumber: "000000002", Amount: dec("10")})
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockValidator.AssertNotCalled(s.T(), "ValidateAndTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PaymentServiceTestSuite) TestTransfer_DelegatesToValidator() {
	expected := &domain.Transaction{ID: "txn-1"}
	s.mockValidator.On("ValidateAndTransfer", s.ctx, s.account, "062000", "000000002", dec("10"), "gift").Return(expected, nil).Once()

	txn, err := s.service.Transfer(s.ctx, "u1", dto.TransferRequest{FromAccountID: "acc-1", BSB: "062000", AccountNumber: "000000002", Amount: dec("10"), Description: "gift"})
	s.Require().NoError(err)
	s.Equal(expected, txn)
	s.mockValidator.AssertExpectations(s.T())
}

func (s *PaymentServiceTestSuite) TestPayBills_ChecksBeforeSettling() {
	_, err := s.service.PayBills(s.ctx, "intruder", s.payBills("10"))
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.service.PayBills(s.ctx, "u1", s.payBills("0"))
	s.ErrorIs(err, apperrors.ErrInvalidAmount)

	_, err = s.service.PayBills(s.ctx, "u1", s.payBills("100.01"))
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)

	unknown := s.payBills("10")
	unknown.BillerCode = "11111"
	_, err = s.service.PayBills(s.ctx, "u1", unknown)
	s.ErrorIs(err, apperrors.ErrNotFound)

	mismatch := s.payBills("10")
	mismatch.BillerName = "Water Co"
	_, err = s.service.PayBills(s.ctx, "u1", mismatch)
	s.ErrorIs(err, apperrors.ErrValidation)

	s.mockEngine.AssertNotCalled(s.T(), "Settle", mock.Anything, mock.Anything)
}

func (s *PaymentServiceTestSuite) TestPayBills_HandsRequestToEngine() {
	expected := &domain.SettlementResult{Consumed: dec("10")}
	s.mockEngine.On("Settle", s.ctx, domain.SettlementRequest{
		UserID:          "u1",
		FromAccountID:   "acc-1",
		Biller:          s.biller,
		ReferenceNumber: "4455",
		Amount:          dec("10"),
		Description:     "power",
	}).Return(expected, nil).Once()

	req := s.payBills("10")
	req.BillerName = "power co"
	result, err := s.service.PayBills(s.ctx, "u1", req)
	s.Require().NoError(err)
	s.Equal(expected, result)
	s.mockEngine.AssertExpectations(s.T())
}

func (s *PaymentServiceTestSuite) TestGetAccountExposure() {
	seedAccount(s.T(), s.store, domain.Account{ID: "cc", Owner: "u1", Type: domain.Credit, AccountNumber: "000000009", Balance: dec("250"), OpeningBalance: dec("1000")})

	exposure, err := s.service.GetAccountExposure(s.ctx, "u1", "cc")
	s.Require().NoError(err)
	s.Equal("750.00", exposure.StringFixed(2))

	_, err = s.service.GetAccountExposure(s.ctx, "u2", "cc")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
