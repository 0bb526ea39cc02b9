package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"arenax-backend/internal/common/middleware"
	"arenax-backend/internal/features/session/service"
	"arenax-backend/internal/features/wallet/models"
	walletservice "arenax-backend/internal/features/wallet/service"
)

type WalletHandler struct {
	service walletservice.WalletService
}

func NewWalletHandler(svc walletservice.WalletService) *WalletHandler {
	return &WalletHandler{service: svc}
}

func (h *WalletHandler) RegisterRoutes(router *gin.RouterGroup) {
	wallet := router.Group("/wallet")
	wallet.Use(middleware.RequireAuth())
	{
		wallet.GET("/balance", h.balance)
		wallet.GET("/transactions", h.transactions)
		wallet.POST("/withdraw", h.withdraw)
		wallet.GET("/withdrawals", h.withdrawals)
	}

	user := router.Group("/user")
	user.Use(middleware.RequireAuth())
	{
		user.GET("/payment-methods", h.paymentMethods)
		user.PUT("/payment-methods", h.savePaymentMethods)
		user.GET("/stats", h.stats)
	}
}

// caller resolves the session identity; guards guarantee presence, this is
// the belt to their suspenders.
func caller(c *gin.Context) (*service.Session, string, bool) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		return nil, "", false
	}
	snap := sess.Snapshot()
	if snap.Identity == nil {
		return nil, "", false
	}
	return sess, snap.Identity.ID, true
}

// @Summary Wallet balance
// @Tags wallet
// @Produce json
// @Success 200 {object} models.Balance
// @Router /wallet/balance [get]
func (h *WalletHandler) balance(c *gin.Context) {
	sess, userID, ok := caller(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	balance, err := h.service.Balance(c.Request.Context(), sess.AccessToken(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to load balance"})
		return
	}
	c.JSON(http.StatusOK, balance)
}

// @Summary Wallet transactions
// @Tags wallet
// @Produce json
// @Success 200 {array} models.Transaction
// @Router /wallet/transactions [get]
func (h *WalletHandler) transactions(c *gin.Context) {
	sess, userID, ok := caller(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	transactions, err := h.service.Transactions(c.Request.Context(), sess.AccessToken(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to load transactions"})
		return
	}
	c.JSON(http.StatusOK, transactions)
}

type withdrawRequest struct {
	Amount        int64                `json:"amount" binding:"required,gt=0"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required"`
}

// @Summary Request a withdrawal
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body withdrawRequest true "Withdrawal request"
// @Success 201 {object} models.Withdrawal
// @Failure 403 {object} middleware.ErrorResponse "Balance blocked"
// @Failure 422 {object} middleware.ErrorResponse "Below minimum or insufficient winnings"
// @Router /wallet/withdraw [post]
func (h *WalletHandler) withdraw(c *gin.Context) {
	var req withdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, userID, ok := caller(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	withdrawal, err := h.service.Withdraw(c.Request.Context(), sess.AccessToken(), userID, req.Amount, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, walletservice.ErrInvalidMethod):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, walletservice.ErrBelowMinimum), errors.Is(err, walletservice.ErrInsufficient):
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, walletservice.ErrBlocked):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to request withdrawal"})
		}
		return
	}
	c.JSON(http.StatusCreated, withdrawal)
}

// @Summary Saved payment methods
// @Tags user
// @Produce json
// @Success 200 {object} models.PayoutDetails
// @Router /user/payment-methods [get]
func (h *WalletHandler) paymentMethods(c *gin.Context) {
	sess, userID, ok := caller(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	details, err := h.service.PaymentMethods(c.Request.Context(), sess.AccessToken(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to load payment methods"})
		return
	}
	c.JSON(http.StatusOK, details)
}

// @Summary Save payment methods
// @Description Store payout destinations. They lock on first save.
// @Tags user
// @Accept json
// @Produce json
// @Param details body models.PayoutDetails true "Payout destinations"
// @Success 200 {object} models.PayoutDetails
// @Failure 409 {object} middleware.ErrorResponse "Already locked"
// @Failure 422 {object} middleware.ErrorResponse "Incomplete details"
// @Router /user/payment-methods [put]
func (h *WalletHandler) savePaymentMethods(c *gin.Context) {
	var details models.PayoutDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, userID, ok := caller(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.service.SavePaymentMethods(c.Request.Context(), sess.AccessToken(), userID, details); err != nil {
		switch {
		case errors.Is(err, walletservice.ErrMethodsLocked):
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, walletservice.ErrIncompleteMethods):
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to save payment methods"})
		}
		return
	}

	details.IsLocked = true
	c.JSON(http.StatusOK, details)
}

// @Summary Player stats
// @Tags user
// @Produce json
// @Success 200 {object} models.UserStats
// @Router /user/stats [get]
func (h *WalletHandler) stats(c *gin.Context) {
	sess, userID, ok := caller(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	stats, err := h.service.UserStats(c.Request.Context(), sess.AccessToken(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Withdrawal history
// @Tags wallet
// @Produce json
// @Success 200 {array} models.Withdrawal
// @Router /wallet/withdrawals [get]
func (h *WalletHandler) withdrawals(c *gin.Context) {
	sess, userID, ok := caller(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	withdrawals, err := h.service.Withdrawals(c.Request.Context(), sess.AccessToken(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to load withdrawals"})
		return
	}
	c.JSON(http.StatusOK, withdrawals)
}
