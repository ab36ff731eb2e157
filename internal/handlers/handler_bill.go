package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bank_simulator/internal/apperrors"
	portssvc "github.com/SscSPs/bank_simulator/internal/core/ports/services"
	"github.com/SscSPs/bank_simulator/internal/dto"
	"github.com/SscSPs/bank_simulator/internal/middleware"
	"github.com/SscSPs/bank_simulator/internal/utils/mapping"
	"github.com/gin-gonic/gin"
)

// billHandler handles bill issuance and the biller directory.
type billHandler struct {
	billService portssvc.BillSvcFacade
}

func newBillHandler(bs portssvc.BillSvcFacade) *billHandler {
	return &billHandler{billService: bs}
}

// RegisterBillRoutes registers routes for bills and billers.
func RegisterBillRoutes(rg *gin.RouterGroup, billService portssvc.BillSvcFacade) {
	registerValidators()
	h := newBillHandler(billService)

	bills := rg.Group("/bills")
	{
		bills.POST("", h.issueBill)
		bills.GET("", h.listBills)
	}

	billers := rg.Group("/billers")
	{
		billers.POST("", h.registerBiller)
		billers.GET("/:code", h.getBiller)
	}
}

// issueBill godoc
// @Summary Issue a bill
// @Description Issues a bill from a registered biller to a user
// @Tags bills
// @Accept  json
// @Produce  json
// @Param   bill body dto.IssueBillRequest true "Bill details"
// @Success 201 {object} dto.BillResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Biller not found"
// @Failure 500 {object} map[string]string "Failed to issue bill"
// @Security BearerAuth
// @Router /bills [post]
func (h *billHandler) issueBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.IssueBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IssueBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	bill, err := h.billService.IssueBill(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidAmount) || errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Biller not found"})
		} else {
			logger.Error("Failed to issue bill", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue bill"})
		}
		return
	}

	c.JSON(http.StatusCreated, mapping.ToBillResponse(*bill))
}

// listBills godoc
// @Summary List the caller's bills
// @Description Lists every bill issued to the logged-in user, oldest due date first
// @Tags bills
// @Produce  json
// @Success 200 {array} dto.BillResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list bills"
// @Security BearerAuth
// @Router /bills [get]
func (h *billHandler) listBills(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bills, err := h.billService.ListBills(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list bills", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bills"})
		return
	}

	c.JSON(http.StatusOK, mapping.ToBillResponses(bills))
}

// registerBiller godoc
// @Summary Register a biller
// @Description Adds a BPAY biller to the directory
// @Tags billers
// @Accept  json
// @Produce  json
// @Param   biller body dto.RegisterBillerRequest true "Biller details"
// @Success 201 {object} domain.Biller
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Biller code already registered"
// @Failure 500 {object} map[string]string "Failed to register biller"
// @Security BearerAuth
// @Router /billers [post]
func (h *billHandler) registerBiller(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterBillerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterBiller", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	biller, err := h.billService.RegisterBiller(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Biller code already registered"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to register biller", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register biller"})
		}
		return
	}

	c.JSON(http.StatusCreated, biller)
}

// getBiller godoc
// @Summary Look up a biller
// @Tags billers
// @Produce  json
// @Param   code path string true "Biller code"
// @Success 200 {object} domain.Biller
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Biller not found"
// @Failure 500 {object} map[string]string "Failed to retrieve biller"
// @Security BearerAuth
// @Router /billers/{code} [get]
func (h *billHandler) getBiller(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	biller, err := h.billService.GetBiller(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Biller not found"})
		} else {
			logger.Error("Failed to get biller", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve biller"})
		}
		return
	}

	c.JSON(http.StatusOK, biller)
}
