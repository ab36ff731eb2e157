package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/bank_simulator/internal/apperrors"
	"github.com/SscSPs/bank_simulator/internal/core/domain"
	"github.com/SscSPs/bank_simulator/internal/dto"
	"github.com/SscSPs/bank_simulator/internal/handlers"
	"github.com/SscSPs/bank_simulator/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockPaymentService *MockPaymentService
	userID             string
}

func (suite *PaymentHandlerTestSuite) SetupTest() {
	suite.router = gin.New()
	suite.mockPaymentService = new(MockPaymentService)
	suite.userID = "user-1"

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret, testIssuer))
	handlers.RegisterPaymentRoutes(v1, suite.mockPaymentService, nil)
}

func (suite *PaymentHandlerTestSuite) post(url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	req, _ := http.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.userID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func validTransfer() map[string]any {
	return map[string]any{
		"fromAccountID": "acc-1",
		"bsb":           "062000",
		"accountNumber": "000000002",
		"amount":        "25.50",
		"description":   "rent",
	}
}

func validBPay() map[string]any {
	return map[string]any{
		"fromAccountID":   "acc-1",
		"billerName":      "Power Co",
		"billerCode":      "23796",
		"referenceNumber": "4455",
		"amount":          "150",
	}
}

func (suite *PaymentHandlerTestSuite) TestTransfer_Success() {
	txn := &domain.Transaction{
		ID:              "txn-1",
		Amount:          dec("25.50"),
		PaidOn:          time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		FromAccountID:   "acc-1",
		ToAccountID:     "acc-2",
		Description:     "rent",
		TransactionType: domain.PayAnyone,
	}
	suite.mockPaymentService.On("Transfer", mock.Anything, suite.userID, mock.MatchedBy(func(req dto.TransferRequest) bool {
		return req.FromAccountID == "acc-1" && req.AccountNumber == "000000002" && req.Amount.Equal(dec("25.50"))
	})).Return(txn, nil).Once()

	w := suite.post("/api/v1/payments/transfer", validTransfer())

	suite.Equal(http.StatusCreated, w.Code)
	var got dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("txn-1", got.ID)
	suite.True(got.Amount.Equal(dec("-25.50")), "amount is signed for the paying account")
	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *PaymentHandlerTestSuite) TestTransfer_FormRules() {
	mutate := map[string]func(map[string]any){
		"bsb too short":        func(b map[string]any) { b["bsb"] = "06200" },
		"account not digits":   func(b map[string]any) { b["accountNumber"] = "00000000a" },
		"account too long":     func(b map[string]any) { b["accountNumber"] = "0000000021" },
		"zero amount":          func(b map[string]any) { b["amount"] = "0" },
		"negative amount":      func(b map[string]any) { b["amount"] = "-5" },
		"three decimal places": func(b map[string]any) { b["amount"] = "1.001" },
		"missing amount":       func(b map[string]any) { delete(b, "amount") },
		"long description":     func(b map[string]any) { b["description"] = strings.Repeat("x", 301) },
		"missing source":       func(b map[string]any) { delete(b, "fromAccountID") },
	}
	for name, fn := range mutate {
		body := validTransfer()
		fn(body)
		w := suite.post("/api/v1/payments/transfer", body)
		suite.Equal(http.StatusBadRequest, w.Code, name)
	}
	suite.mockPaymentService.AssertNotCalled(suite.T(), "Transfer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentHandlerTestSuite) TestTransfer_ErrorMapping() {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"insufficient funds", fmt.Errorf("transfer: %w", apperrors.ErrInsufficientFunds), http.StatusUnprocessableEntity, "Insufficient funds in selected account."},
		{"self transfer", apperrors.ErrSelfTransferNotAllowed, http.StatusUnprocessableEntity, "You cannot pay to your own account."},
		{"recipient missing", apperrors.ErrRecipientNotFound, http.StatusNotFound, "Recipient account not found. Please check the BSB and Account Number."},
		{"source missing", fmt.Errorf("account acc-1: %w", apperrors.ErrNotFound), http.StatusNotFound, ""},
		{"invalid amount", apperrors.ErrInvalidAmount, http.StatusBadRequest, ""},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, ""},
		{"infrastructure", apperrors.NewAppError(500, "failed to commit", errors.New("boom")), http.StatusInternalServerError, "Payment failed"},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			suite.mockPaymentService.On("Transfer", mock.Anything, suite.userID, mock.Anything).Return(nil, tc.err).Once()

			w := suite.post("/api/v1/payments/transfer", validTransfer())

			suite.Equal(tc.status, w.Code)
			if tc.msg != "" {
				var body map[string]any
				suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
				suite.Equal(tc.msg, body["error"])
			}
		})
	}
}

func (suite *PaymentHandlerTestSuite) TestPayBills_Success() {
	result := &domain.SettlementResult{
		Allocations: []domain.BillAllocation{
			{BillID: "b1", Paid: dec("100"), Status: domain.BillPaid, Remaining: dec("0"), TransactionID: "t1"},
			{BillID: "b2", Paid: dec("20"), Status: domain.BillPaid, Remaining: dec("0"), TransactionID: "t2"},
		},
		Consumed: dec("120"),
		Refunded: dec("30"),
	}
	suite.mockPaymentService.On("PayBills", mock.Anything, suite.userID, mock.MatchedBy(func(req dto.PayBillsRequest) bool {
		return req.BillerCode == "23796" && req.Amount.Equal(dec("150"))
	})).Return(result, nil).Once()

	w := suite.post("/api/v1/payments/bpay", validBPay())

	suite.Equal(http.StatusOK, w.Code)
	var got dto.SettlementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Len(got.Allocations, 2)
	suite.True(got.Consumed.Equal(dec("120")))
	suite.True(got.Refunded.Equal(dec("30")))
}

func (suite *PaymentHandlerTestSuite) TestPayBills_StepFailureReportsBill() {
	stepErr := &domain.BillSettlementError{
		BillID:    "b2",
		Completed: []domain.BillAllocation{{BillID: "b1", Paid: dec("100"), Status: domain.BillPaid}},
		Err:       apperrors.NewAppError(500, "failed to commit transaction", errors.New("connection reset")),
	}
	suite.mockPaymentService.On("PayBills", mock.Anything, suite.userID, mock.Anything).Return(nil, stepErr).Once()

	w := suite.post("/api/v1/payments/bpay", validBPay())

	suite.Equal(http.StatusInternalServerError, w.Code)
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("Payment failed", body["error"])
	suite.Equal("b2", body["bill_id"])
	suite.Len(body["completed"], 1)
}

func (suite *PaymentHandlerTestSuite) TestPayBills_InvalidBillState() {
	stepErr := &domain.BillSettlementError{BillID: "b9", Err: fmt.Errorf("%w: bill b9 has amount 0", apperrors.ErrInvalidState)}
	suite.mockPaymentService.On("PayBills", mock.Anything, suite.userID, mock.Anything).Return(nil, stepErr).Once()

	w := suite.post("/api/v1/payments/bpay", validBPay())

	suite.Equal(http.StatusConflict, w.Code)
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("b9", body["bill_id"])
}

func (suite *PaymentHandlerTestSuite) TestPayBills_BillRemovedMidSettlementReportsBill() {
	stepErr := &domain.BillSettlementError{
		BillID:    "b3",
		Completed: []domain.BillAllocation{{BillID: "b1", Paid: dec("40"), Status: domain.BillPaid}, {BillID: "b2", Paid: dec("20"), Status: domain.BillPaid}},
		Err:       fmt.Errorf("bill b3: %w", apperrors.ErrNotFound),
	}
	suite.mockPaymentService.On("PayBills", mock.Anything, suite.userID, mock.Anything).Return(nil, stepErr).Once()

	w := suite.post("/api/v1/payments/bpay", validBPay())

	suite.Equal(http.StatusNotFound, w.Code)
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("b3", body["bill_id"])
	suite.Len(body["completed"], 2)
}

func (suite *PaymentHandlerTestSuite) TestPayBills_MissingBillerCode() {
	body := validBPay()
	delete(body, "billerCode")

	w := suite.post("/api/v1/payments/bpay", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPaymentService.AssertNotCalled(suite.T(), "PayBills", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentHandlerTestSuite) TestPaymentsAreRateLimitedPerUser() {
	lim, err := middleware.NewRateLimiter("1-M", nil)
	suite.Require().NoError(err)
	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret, testIssuer))
	handlers.RegisterPaymentRoutes(v1, suite.mockPaymentService, nil, middleware.RateLimit(lim))
	suite.mockPaymentService.On("Transfer", mock.Anything, suite.userID, mock.Anything).
		Return(&domain.Transaction{ID: "t1", Amount: dec("25.50"), FromAccountID: "acc-1"}, nil).Once()

	first := suite.post("/api/v1/payments/transfer", validTransfer())
	second := suite.post("/api/v1/payments/transfer", validTransfer())

	suite.Equal(http.StatusCreated, first.Code)
	suite.Equal("0", first.Header().Get("X-RateLimit-Remaining"))
	suite.Equal(http.StatusTooManyRequests, second.Code)
	suite.mockPaymentService.AssertNumberOfCalls(suite.T(), "Transfer", 1)
}

func TestPaymentHandler(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}
