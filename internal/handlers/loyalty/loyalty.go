// internal/handlers/loyalty/loyalty.go
package loyalty

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	xerrors "kaokente-service/internal/pkg/errors"
	"kaokente-service/internal/pkg/response"
	service "kaokente-service/internal/service/loyalty"
)

type LoyaltyHandler struct {
	loyaltyService *service.LoyaltyService
}

func NewLoyaltyHandler(loyaltyService *service.LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{
		loyaltyService: loyaltyService,
	}
}

type earnRequest struct {
	Phone  string `json:"phone" binding:"required"`
	Amount string `json:"amount" binding:"required"` // decimal euros
}

type redeemRequest struct {
	Phone  string `json:"phone" binding:"required"`
	Reward string `json:"reward" binding:"required"`
}

// Earn records a purchase and awards points.
func (h *LoyaltyHandler) Earn(c *gin.Context) {
	var req earnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid amount", err)
		return
	}

	result, err := h.loyaltyService.Earn(c.Request.Context(), req.Phone, amount)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to award points", err)
		return
	}

	response.Success(c, http.StatusOK, "points awarded", result)
}

// Redeem exchanges points for a reward.
func (h *LoyaltyHandler) Redeem(c *gin.Context) {
	var req redeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.loyaltyService.Redeem(c.Request.Context(), req.Phone, req.Reward)
	if err != nil {
		switch {
		case xerrors.Is(err, xerrors.ErrNotFound):
			response.NotFound(c, "customer or reward not found")
		case xerrors.Is(err, xerrors.ErrInsufficientPoints):
			response.Error(c, http.StatusUnprocessableEntity, "not enough points", nil)
		default:
			response.Error(c, http.StatusInternalServerError, "failed to redeem reward", err)
		}
		return
	}

	response.Success(c, http.StatusOK, "reward redeemed", result)
}

// Dashboard returns the balance and monthly spend for a customer.
// Public: customers check their own points by phone number.
func (h *LoyaltyHandler) Dashboard(c *gin.Context) {
	phone := c.Param("phone")

	result, err := h.loyaltyService.Dashboard(c.Request.Context(), phone)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to load dashboard", err)
		return
	}

	response.Success(c, http.StatusOK, "dashboard retrieved", result)
}

// History lists a customer's structured transactions.
func (h *LoyaltyHandler) History(c *gin.Context) {
	phone := c.Param("phone")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	result, err := h.loyaltyService.History(c.Request.Context(), phone, limit)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to load history", err)
		return
	}

	response.Success(c, http.StatusOK, "history retrieved", result)
}

// Drift reports the gap between the stored balance and the transaction
// fold. Diagnostic only; nothing is corrected.
func (h *LoyaltyHandler) Drift(c *gin.Context) {
	phone := c.Param("phone")

	drift, err := h.loyaltyService.Drift(c.Request.Context(), phone)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to compute drift", err)
		return
	}

	response.Success(c, http.StatusOK, "drift computed", gin.H{"phone": phone, "drift": drift})
}
