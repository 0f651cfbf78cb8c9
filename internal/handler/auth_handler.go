package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"projecthub/internal/service"
)

type AuthHandler struct {
	auth    *service.AuthService
	invites *service.InviteService
}

func NewAuthHandler(auth *service.AuthService, invites *service.InviteService) *AuthHandler {
	return &AuthHandler{
		auth:    auth,
		invites: invites,
	}
}

// Register handles POST /register. A pending invite session token from a
// deferred join may ride along and is consumed after the account exists.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email         string `json:"email"`
		Password      string `json:"password"`
		FirstName     string `json:"firstName"`
		LastName      string `json:"lastName"`
		InviteSession string `json:"inviteSession"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email, password, firstName and lastName are required"})
		return
	}

	user, token, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}

	joinedProject := h.invites.ResumePending(c.Request.Context(), req.InviteSession, user.ID.Hex())

	c.JSON(http.StatusCreated, gin.H{
		"token":             token,
		"user":              user,
		"joined_project_id": joinedProject,
	})
}

// Login handles POST /login, also resuming a deferred invite if present.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email         string `json:"email"`
		Password      string `json:"password"`
		InviteSession string `json:"inviteSession"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	joinedProject := h.invites.ResumePending(c.Request.Context(), req.InviteSession, user.ID.Hex())

	c.JSON(http.StatusOK, gin.H{
		"token":             token,
		"user":              user,
		"joined_project_id": joinedProject,
	})
}

// Me handles GET /me. onboarding_required gates the main app until the
// profile is complete.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := h.auth.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":                user,
		"onboarding_required": !user.ProfileComplete,
	})
}

// CompleteProfile handles PUT /profile.
func (h *AuthHandler) CompleteProfile(c *gin.Context) {
	var req struct {
		Username    string `json:"username"`
		University  string `json:"university"`
		PhoneNumber string `json:"phoneNumber"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Username == "" || req.University == "" || req.PhoneNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, university and phoneNumber are required"})
		return
	}

	userID := c.GetString("user_id")

	if err := h.auth.CompleteProfile(c.Request.Context(), userID, req.Username, req.University, req.PhoneNumber); err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UsernameAvailable handles GET /username-available?username=x.
func (h *AuthHandler) UsernameAvailable(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username required"})
		return
	}

	available, err := h.auth.UsernameAvailable(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check username"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": available})
}
