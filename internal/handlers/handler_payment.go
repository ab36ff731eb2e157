package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bank_simulator/internal/apperrors"
	"github.com/SscSPs/bank_simulator/internal/core/domain"
	portssvc "github.com/SscSPs/bank_simulator/internal/core/ports/services"
	"github.com/SscSPs/bank_simulator/internal/dto"
	"github.com/SscSPs/bank_simulator/internal/middleware"
	"github.com/SscSPs/bank_simulator/internal/utils"
	"github.com/SscSPs/bank_simulator/internal/utils/mapping"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles Pay Anyone transfers and BPAY bill payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
	posthogClient  *utils.PosthogClientWrapper
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade, posthogClient *utils.PosthogClientWrapper) *paymentHandler {
	return &paymentHandler{
		paymentService: ps,
		posthogClient:  posthogClient,
	}
}

// RegisterPaymentRoutes registers the payment routes. Extra middleware, such as
// a rate limiter, runs before every payment handler.
func RegisterPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade, posthogClient *utils.PosthogClientWrapper, mw ...gin.HandlerFunc) {
	registerValidators()
	h := newPaymentHandler(paymentService, posthogClient)

	payments := rg.Group("/payments", mw...)
	{
		payments.POST("/transfer", h.transfer)
		payments.POST("/bpay", h.payBills)
	}
}

// transfer godoc
// @Summary Pay another customer
// @Description Transfers money from one of the caller's accounts to another customer's account identified by BSB and account number
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Insufficient funds or self transfer"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Payment failed"
// @Security BearerAuth
// @Router /payments/transfer [post]
func (h *paymentHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("from_account_id", req.FromAccountID))
	txn, err := h.paymentService.Transfer(c.Request.Context(), userID, req)
	if err != nil {
		respondPaymentError(c, logger, err)
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, "payment_transfer_completed", map[string]any{
		"amount":         req.Amount.String(),
		"transaction_id": txn.ID,
	})
	logger.Info("Transfer completed", slog.String("transaction_id", txn.ID))
	c.JSON(http.StatusCreated, mapping.ToTransactionResponse(*txn, req.FromAccountID))
}

// payBills godoc
// @Summary Pay a biller
// @Description Pays a BPAY biller and settles the caller's open bills with it, oldest due date first. Any overpayment is returned to the paying account.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.PayBillsRequest true "BPAY details"
// @Success 200 {object} dto.SettlementResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account or biller not found"
// @Failure 409 {object} map[string]string "Bill in an invalid state"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Payment failed"
// @Security BearerAuth
// @Router /payments/bpay [post]
func (h *paymentHandler) payBills(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PayBillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PayBills", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("from_account_id", req.FromAccountID), slog.String("biller_code", req.BillerCode))
	result, err := h.paymentService.PayBills(c.Request.Context(), userID, req)
	if err != nil {
		respondPaymentError(c, logger, err)
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, "payment_bpay_completed", map[string]any{
		"amount":      req.Amount.String(),
		"consumed":    result.Consumed.String(),
		"refunded":    result.Refunded.String(),
		"bills_count": len(result.Allocations),
	})
	logger.Info("Bill payment completed",
		slog.String("consumed", result.Consumed.String()),
		slog.String("refunded", result.Refunded.String()))
	c.JSON(http.StatusOK, mapping.ToSettlementResponse(*result))
}

// respondPaymentError maps payment failures to the messages shown on the payment forms.
// A settlement that stopped mid-waterfall always reports the failing bill, whatever the status.
func respondPaymentError(c *gin.Context, logger *slog.Logger, err error) {
	var status int
	var message string
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidAmount):
		logger.Warn("Payment rejected", slog.String("error", err.Error()))
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		logger.Warn("Payment rejected: insufficient funds")
		status, message = http.StatusUnprocessableEntity, "Insufficient funds in selected account."
	case errors.Is(err, apperrors.ErrSelfTransferNotAllowed):
		logger.Warn("Payment rejected: self transfer")
		status, message = http.StatusUnprocessableEntity, "You cannot pay to your own account."
	case errors.Is(err, apperrors.ErrRecipientNotFound):
		logger.Warn("Payment rejected: recipient not found")
		status, message = http.StatusNotFound, "Recipient account not found. Please check the BSB and Account Number."
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Payment rejected: not found", slog.String("error", err.Error()))
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrInvalidState):
		logger.Warn("Payment conflicted", slog.String("error", err.Error()))
		status, message = http.StatusConflict, err.Error()
	default:
		logger.Error("Payment failed", slog.String("error", err.Error()))
		status, message = http.StatusInternalServerError, "Payment failed"
	}
	c.JSON(status, withFailedBill(gin.H{"error": message}, err))
}

// withFailedBill adds the bill a settlement stopped at, and what was already paid, to body.
func withFailedBill(body gin.H, err error) gin.H {
	var billErr *domain.BillSettlementError
	if errors.As(err, &billErr) {
		body["bill_id"] = billErr.BillID
		body["completed"] = billErr.Completed
	}
	return body
}
