package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"arenax-backend/internal/common/middleware"
	"arenax-backend/internal/features/referral/service"
	sessionservice "arenax-backend/internal/features/session/service"
)

type ReferralHandler struct {
	service service.ReferralService
}

func NewReferralHandler(svc service.ReferralService) *ReferralHandler {
	return &ReferralHandler{service: svc}
}

func (h *ReferralHandler) RegisterRoutes(router *gin.RouterGroup) {
	referral := router.Group("/referral")
	{
		referral.GET("/terms", h.terms)

		authed := referral.Group("")
		authed.Use(middleware.RequireAuth())
		{
			authed.GET("/stats", h.stats)
			authed.GET("/transactions", h.transactions)
			authed.GET("/code", h.code)
		}
	}
}

func caller(c *gin.Context) (*sessionservice.Session, string, bool) {
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

// @Summary Referral program terms
// @Tags referral
// @Produce json
// @Success 200 {object} models.Terms
// @Router /referral/terms [get]
func (h *ReferralHandler) terms(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Terms())
}

// @Summary Referral stats
// @Tags referral
// @Produce json
// @Success 200 {object} models.Stats
// @Router /referral/stats [get]
func (h *ReferralHandler) stats(c *gin.Context) {
	sess, userID, ok := caller(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), sess.AccessToken(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to load referral stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Referral bonus transactions
// @Tags referral
// @Produce json
// @Success 200 {array} models.Transaction
// @Router /referral/transactions [get]
func (h *ReferralHandler) transactions(c *gin.Context) {
	sess, userID, ok := caller(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	transactions, err := h.service.Transactions(c.Request.Context(), sess.AccessToken(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to load referral transactions"})
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// @Summary Own referral code
// @Tags referral
// @Produce json
// @Success 200 {object} map[string]string
// @Router /referral/code [get]
func (h *ReferralHandler) code(c *gin.Context) {
	sess, userID, ok := caller(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	code, err := h.service.Code(c.Request.Context(), sess.AccessToken(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to load referral code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"referral_code": code})
}
