package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"arenax-backend/internal/common/middleware"
	"arenax-backend/internal/features/tournament/models"
	"arenax-backend/internal/features/tournament/repository"
	"arenax-backend/internal/features/tournament/service"
)

type TournamentHandler struct {
	service service.TournamentService
}

func NewTournamentHandler(svc service.TournamentService) *TournamentHandler {
	return &TournamentHandler{service: svc}
}

func (h *TournamentHandler) RegisterRoutes(router *gin.RouterGroup) {
	tournaments := router.Group("/tournaments")
	{
		tournaments.GET("", h.list)
		tournaments.GET("/:id", h.get)
	}
	router.GET("/leaderboard", h.leaderboard)

	authed := router.Group("/tournaments")
	authed.Use(middleware.RequireAuth())
	{
		authed.POST("/:id/join", h.join)
		authed.GET("/my-matches", h.myMatches)
		authed.GET("/:id/results", h.results)
	}
}

// @Summary List tournaments
// @Tags tournaments
// @Produce json
// @Param status query string false "Filter by status" Enums(upcoming, live, completed, cancelled)
// @Success 200 {array} models.Tournament
// @Router /tournaments [get]
func (h *TournamentHandler) list(c *gin.Context) {
	status := models.Status(c.Query("status"))
	if status != "" && !status.Valid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}

	tournaments, err := h.service.List(c.Request.Context(), status)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to load tournaments"})
		return
	}
	c.JSON(http.StatusOK, tournaments)
}

// @Summary Tournament detail
// @Tags tournaments
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} models.Match
// @Failure 404 {object} middleware.ErrorResponse
// @Router /tournaments/{id} [get]
func (h *TournamentHandler) get(c *gin.Context) {
	match, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to load tournament"})
		return
	}
	c.JSON(http.StatusOK, match)
}

// @Summary Join a tournament
// @Description Debits the entry fee and reserves a seat in one server-side transaction.
// @Tags tournaments
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} middleware.ErrorResponse "Already joined"
// @Failure 410 {object} middleware.ErrorResponse "Full or closed"
// @Failure 422 {object} middleware.ErrorResponse "Insufficient balance"
// @Router /tournaments/{id}/join [post]
func (h *TournamentHandler) join(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	snap := sess.Snapshot()
	if snap.Identity == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	err := h.service.Join(c.Request.Context(), sess.AccessToken(), snap.Identity.ID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
		case errors.Is(err, repository.ErrFull), errors.Is(err, repository.ErrClosed):
			c.AbortWithStatusJSON(http.StatusGone, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrAlreadyJoined):
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrInsufficientBalance):
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to join tournament"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Joined tournament"})
}

// @Summary My match history
// @Tags tournaments
// @Produce json
// @Success 200 {array} models.MatchHistory
// @Router /tournaments/my-matches [get]
func (h *TournamentHandler) myMatches(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	snap := sess.Snapshot()
	if snap.Identity == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	history, err := h.service.MyMatches(c.Request.Context(), sess.AccessToken(), snap.Identity.ID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to load match history"})
		return
	}
	c.JSON(http.StatusOK, history)
}

// @Summary Match results
// @Tags tournaments
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {array} models.MatchResult
// @Router /tournaments/{id}/results [get]
func (h *TournamentHandler) results(c *gin.Context) {
	results, err := h.service.Results(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to load results"})
		return
	}
	c.JSON(http.StatusOK, results)
}

// @Summary Leaderboard
// @Tags tournaments
// @Produce json
// @Success 200 {array} models.LeaderboardEntry
// @Router /leaderboard [get]
func (h *TournamentHandler) leaderboard(c *gin.Context) {
	entries, err := h.service.Leaderboard(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Failed to load leaderboard"})
		return
	}
	c.JSON(http.StatusOK, entries)
}
