package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"arenax-backend/internal/common/middleware"
	"arenax-backend/internal/features/admin/models"
	"arenax-backend/internal/features/admin/repository"
	"arenax-backend/internal/features/admin/service"
	sessionmodels "arenax-backend/internal/features/session/models"
)

type AdminHandler struct {
	service service.AdminService
}

func NewAdminHandler(svc service.AdminService) *AdminHandler {
	return &AdminHandler{service: svc}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	{
		dashboard := admin.Group("")
		dashboard.Use(middleware.RequireAdmin())
		{
			dashboard.GET("/stats", h.stats)
			dashboard.GET("/users", h.users)
			dashboard.GET("/users/:id", h.user)
			dashboard.POST("/users/:id/block-balance", h.blockBalance)
			dashboard.POST("/users/:id/unblock-balance", h.unblockBalance)
			dashboard.GET("/team", h.teamMembers)
			dashboard.POST("/team/invite", h.inviteTeamMember)
			dashboard.DELETE("/team/:id", h.removeTeamMember)
		}

		tournaments := admin.Group("/tournaments")
		tournaments.Use(middleware.RequireRole(sessionmodels.RoleTournamentManager))
		{
			tournaments.POST("", h.createTournament)
			tournaments.PUT("/:id", h.updateTournament)
			tournaments.DELETE("/:id", h.deleteTournament)
			tournaments.POST("/:id/results", h.declareResults)
		}

		withdrawals := admin.Group("/withdrawals")
		withdrawals.Use(middleware.RequireRole(sessionmodels.RolePaymentProcessor))
		{
			withdrawals.GET("", h.pendingWithdrawals)
			withdrawals.POST("/:id/approve", h.approveWithdrawal)
			withdrawals.POST("/:id/reject", h.rejectWithdrawal)
		}
	}
}

// @Summary Admin dashboard stats
// @Tags admin
// @Produce json
// @Success 200 {object} models.Stats
// @Router /admin/stats [get]
func (h *AdminHandler) stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary List player accounts
// @Tags admin
// @Produce json
// @Success 200 {array} models.User
// @Router /admin/users [get]
func (h *AdminHandler) users(c *gin.Context) {
	users, err := h.service.Users(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to load users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary Player account detail
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/users/{id} [get]
func (h *AdminHandler) user(c *gin.Context) {
	user, err := h.service.User(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to load user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) setBalanceBlocked(c *gin.Context, blocked bool) {
	err := h.service.SetBalanceBlocked(c.Request.Context(), c.Param("id"), blocked)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to update wallet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocked": blocked})
}

// @Summary Block a user's balance
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]bool
// @Router /admin/users/{id}/block-balance [post]
func (h *AdminHandler) blockBalance(c *gin.Context) {
	h.setBalanceBlocked(c, true)
}

// @Summary Unblock a user's balance
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]bool
// @Router /admin/users/{id}/unblock-balance [post]
func (h *AdminHandler) unblockBalance(c *gin.Context) {
	h.setBalanceBlocked(c, false)
}

// @Summary Create a tournament
// @Tags admin
// @Accept json
// @Produce json
// @Param request body repository.TournamentInput true "Tournament"
// @Success 201 {object} tournamentmodels.Tournament
// @Router /admin/tournaments [post]
func (h *AdminHandler) createTournament(c *gin.Context) {
	var input repository.TournamentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tournament, err := h.service.CreateTournament(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to create tournament"})
		return
	}
	c.JSON(http.StatusCreated, tournament)
}

// @Summary Update a tournament
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Tournament ID"
// @Param request body repository.TournamentInput true "Tournament"
// @Success 200 {object} tournamentmodels.Tournament
// @Router /admin/tournaments/{id} [put]
func (h *AdminHandler) updateTournament(c *gin.Context) {
	var input repository.TournamentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tournament, err := h.service.UpdateTournament(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
		default:
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to update tournament"})
		}
		return
	}
	c.JSON(http.StatusOK, tournament)
}

// @Summary Delete a tournament
// @Tags admin
// @Param id path string true "Tournament ID"
// @Success 204
// @Router /admin/tournaments/{id} [delete]
func (h *AdminHandler) deleteTournament(c *gin.Context) {
	if err := h.service.DeleteTournament(c.Request.Context(), c.Param("id")); err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to delete tournament"})
		return
	}
	c.Status(http.StatusNoContent)
}

type declareResultsRequest struct {
	Results []models.ResultEntry `json:"results" binding:"required"`
}

// @Summary Declare match results
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Tournament ID"
// @Param request body declareResultsRequest true "Results"
// @Success 200 {object} map[string]string
// @Router /admin/tournaments/{id}/results [post]
func (h *AdminHandler) declareResults(c *gin.Context) {
	var req declareResultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.service.DeclareResults(c.Request.Context(), c.Param("id"), req.Results)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
		default:
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to declare results"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Results declared"})
}

// @Summary Pending withdrawals
// @Tags admin
// @Produce json
// @Success 200 {array} models.PendingWithdrawal
// @Router /admin/withdrawals [get]
func (h *AdminHandler) pendingWithdrawals(c *gin.Context) {
	withdrawals, err := h.service.PendingWithdrawals(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to load withdrawals"})
		return
	}
	c.JSON(http.StatusOK, withdrawals)
}

type reviewRequest struct {
	Note string `json:"note"`
}

func (h *AdminHandler) reviewWithdrawal(c *gin.Context, approve bool) {
	var req reviewRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	err := h.service.ReviewWithdrawal(c.Request.Context(), c.Param("id"), approve, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Withdrawal not found"})
		case errors.Is(err, repository.ErrAlreadyReviewed):
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Withdrawal already reviewed"})
		default:
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to review withdrawal"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"approved": approve})
}

// @Summary Approve a withdrawal
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Withdrawal ID"
// @Success 200 {object} map[string]bool
// @Router /admin/withdrawals/{id}/approve [post]
func (h *AdminHandler) approveWithdrawal(c *gin.Context) {
	h.reviewWithdrawal(c, true)
}

// @Summary Reject a withdrawal
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Withdrawal ID"
// @Success 200 {object} map[string]bool
// @Router /admin/withdrawals/{id}/reject [post]
func (h *AdminHandler) rejectWithdrawal(c *gin.Context) {
	h.reviewWithdrawal(c, false)
}

// @Summary Team members
// @Tags admin
// @Produce json
// @Success 200 {array} models.TeamMember
// @Router /admin/team [get]
func (h *AdminHandler) teamMembers(c *gin.Context) {
	members, err := h.service.TeamMembers(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to load team"})
		return
	}
	c.JSON(http.StatusOK, members)
}

type inviteTeamMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

// @Summary Invite a team member
// @Description Grants an elevated role to an existing account.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body inviteTeamMemberRequest true "Member"
// @Success 200 {object} map[string]string
// @Router /admin/team/invite [post]
func (h *AdminHandler) inviteTeamMember(c *gin.Context) {
	var req inviteTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.service.SetRole(c.Request.Context(), req.UserID, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to update role"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": req.UserID, "role": req.Role})
}

// @Summary Remove a team member
// @Description Reverts the account to the player role.
// @Tags admin
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Router /admin/team/{id} [delete]
func (h *AdminHandler) removeTeamMember(c *gin.Context) {
	err := h.service.SetRole(c.Request.Context(), c.Param("id"), string(sessionmodels.RoleUser))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to remove team member"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": c.Param("id"), "role": string(sessionmodels.RoleUser)})
}
