package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"arenax-backend/internal/common/middleware"
	"arenax-backend/internal/features/session/models"
	"arenax-backend/internal/features/session/registry"
	"arenax-backend/internal/features/session/service"
	"arenax-backend/internal/platform/provider"
)

type AuthHandler struct {
	registry *registry.Registry
}

func NewAuthHandler(reg *registry.Registry) *AuthHandler {
	return &AuthHandler{registry: reg}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/signup", h.signup)
		auth.POST("/admin/login", h.adminLogin)
		auth.GET("/me", h.me)
	}

	authed := router.Group("/auth")
	authed.Use(middleware.RequireAuth())
	{
		authed.POST("/logout", h.logout)
	}

	user := router.Group("/user")
	user.Use(middleware.RequireAuth())
	{
		user.PUT("/profile", h.updateProfile)
	}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signupRequest struct {
	Username   string `json:"username" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	IGN        string `json:"ign" binding:"required"`
	FreeFireID string `json:"free_fire_id" binding:"required"`
}

type sessionResponse struct {
	SessionID string          `json:"session_id"`
	User      *models.Profile `json:"user,omitempty"`
}

type meResponse struct {
	State           string          `json:"state"`
	IsAuthenticated bool            `json:"is_authenticated"`
	User            *models.Profile `json:"user,omitempty"`
}

// attachOrCreate reuses the caller's session or mints a fresh one for
// clients logging in without a prior session ID. The second return is true
// when the session was minted for this request.
func (h *AuthHandler) attachOrCreate(c *gin.Context) (*service.Session, bool) {
	if sess, ok := middleware.GetSession(c); ok {
		return sess, false
	}
	return h.registry.NewSession(c.Request.Context()), true
}

// discardIfMinted evicts a session minted for a request whose credential
// exchange failed, so rejected logins do not accumulate live sessions.
func (h *AuthHandler) discardIfMinted(sess *service.Session, minted bool) {
	if minted {
		h.registry.Remove(sess.ID())
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, sessionID string) {
	c.SetCookie(middleware.SessionCookie, sessionID, 0, "/", "", false, true)
}

// @Summary Log in
// @Description Authenticate with email and password. The session snapshot, not this response, is the source of truth for the resulting state; poll /auth/me.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body credentialsRequest true "Credentials"
// @Success 200 {object} sessionResponse
// @Failure 401 {object} middleware.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, minted := h.attachOrCreate(c)
	if err := sess.Login(c.Request.Context(), req.Email, req.Password); err != nil {
		h.discardIfMinted(sess, minted)
		h.abortAuthError(c, err)
		return
	}

	h.setSessionCookie(c, sess.ID())
	snap := sess.Snapshot()
	c.JSON(http.StatusOK, sessionResponse{SessionID: sess.ID(), User: snap.Profile})
}

// @Summary Sign up
// @Description Register an account and its gaming profile.
// @Tags auth
// @Accept json
// @Produce json
// @Param data body signupRequest true "Registration data"
// @Success 201 {object} service.SignupResult
// @Failure 409 {object} middleware.ErrorResponse "Account created, profile incomplete"
// @Router /auth/signup [post]
func (h *AuthHandler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, minted := h.attachOrCreate(c)
	result, err := sess.Signup(c.Request.Context(), service.SignupInput{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		IGN:        req.IGN,
		FreeFireID: req.FreeFireID,
	})
	if err != nil {
		h.discardIfMinted(sess, minted)
		if errors.Is(err, service.ErrProfileIncomplete) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.abortAuthError(c, err)
		return
	}

	h.setSessionCookie(c, sess.ID())
	c.JSON(http.StatusCreated, gin.H{
		"session_id":           sess.ID(),
		"confirmation_pending": result.ConfirmationPending,
		"message":              result.Message,
	})
}

// @Summary Admin log in
// @Description Authenticate and require the admin role; a non-admin attempt is signed back out.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body credentialsRequest true "Credentials"
// @Success 200 {object} sessionResponse
// @Failure 403 {object} middleware.ErrorResponse "Insufficient privilege"
// @Router /auth/admin/login [post]
func (h *AuthHandler) adminLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, minted := h.attachOrCreate(c)
	if err := sess.AdminLogin(c.Request.Context(), req.Email, req.Password); err != nil {
		h.discardIfMinted(sess, minted)
		if errors.Is(err, service.ErrInsufficientPrivilege) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		h.abortAuthError(c, err)
		return
	}

	h.setSessionCookie(c, sess.ID())
	snap := sess.Snapshot()
	c.JSON(http.StatusOK, sessionResponse{SessionID: sess.ID(), User: snap.Profile})
}

// @Summary Log out
// @Description Sign out at the provider and clear the session unconditionally.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) logout(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
		return
	}

	_ = sess.Logout(c.Request.Context())
	h.registry.Remove(sess.ID())
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// @Summary Current session
// @Description Reactive read of the session: state, identity and profile.
// @Tags auth
// @Produce json
// @Success 200 {object} meResponse
// @Router /auth/me [get]
func (h *AuthHandler) me(c *gin.Context) {
	snap := middleware.GetSnapshot(c)
	if sess, ok := middleware.GetSession(c); ok {
		// Re-read: the attach-time snapshot may predate a queued event.
		snap = sess.Snapshot()
	}
	c.JSON(http.StatusOK, meResponse{
		State:           snap.State.String(),
		IsAuthenticated: snap.IsAuthenticated(),
		User:            snap.Profile,
	})
}

// @Summary Update profile
// @Description Update editable profile fields; the session republishes without a re-bootstrap.
// @Tags auth
// @Accept json
// @Produce json
// @Param update body models.ProfileUpdate true "Fields to update"
// @Success 200 {object} meResponse
// @Router /user/profile [put]
func (h *AuthHandler) updateProfile(c *gin.Context) {
	var update models.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, ok := middleware.GetSession(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := sess.UpdateProfile(c.Request.Context(), update); err != nil {
		if errors.Is(err, service.ErrNotAuthenticated) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	snap := sess.Snapshot()
	c.JSON(http.StatusOK, meResponse{
		State:           snap.State.String(),
		IsAuthenticated: snap.IsAuthenticated(),
		User:            snap.Profile,
	})
}

// abortAuthError maps provider failures: auth rejections keep the
// provider's message, everything else is a gateway failure.
func (h *AuthHandler) abortAuthError(c *gin.Context, err error) {
	if apiErr, ok := provider.AsAPIError(err); ok {
		status := http.StatusUnauthorized
		if apiErr.Status >= 500 {
			status = http.StatusBadGateway
		}
		c.AbortWithStatusJSON(status, gin.H{"error": apiErr.Message})
		return
	}
	c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Authentication service unavailable"})
}
