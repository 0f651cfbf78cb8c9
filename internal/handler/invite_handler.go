package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"projecthub/internal/config"
	"projecthub/internal/service"
	"projecthub/pkg/util"
)

// InviteHandler serves the public invite endpoints. Both routes are
// reachable without a session: a signed-out visitor still needs to see
// the project name before deciding to join.
type InviteHandler struct {
	invites *service.InviteService
	cfg     *config.Config
	logger  *zap.Logger
}

func NewInviteHandler(invites *service.InviteService, cfg *config.Config, logger *zap.Logger) *InviteHandler {
	return &InviteHandler{invites: invites, cfg: cfg, logger: logger}
}

// currentUserID resolves the caller's identity when a valid token is
// attached, and returns "" otherwise. Invalid tokens are treated as
// anonymous rather than rejected.
func (h *InviteHandler) currentUserID(c *gin.Context) string {
	tokenStr := util.ExtractToken(c.Request)
	if tokenStr == "" {
		return ""
	}
	userID, err := util.ParseJWT(tokenStr, h.cfg.JWT.Secret)
	if err != nil {
		return ""
	}
	return userID
}

// ResolveInvite handles GET /invite/:code.
func (h *InviteHandler) ResolveInvite(c *gin.Context) {
	res, err := h.invites.Resolve(c.Request.Context(), c.Param("code"), h.currentUserID(c))
	if err != nil {
		h.logger.Error("Failed to resolve invite", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve invite"})
		return
	}

	if res.State == service.JoinStateInvalid {
		c.JSON(http.StatusNotFound, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// JoinProject handles POST /invite/:code/join. An authenticated caller
// is joined immediately; an anonymous one gets a deferred-join session
// token to carry through signup or login.
func (h *InviteHandler) JoinProject(c *gin.Context) {
	code := c.Param("code")

	userID := h.currentUserID(c)
	if userID == "" {
		token, err := h.invites.DeferJoin(c.Request.Context(), code)
		if err != nil {
			h.logger.Error("Failed to defer invite join", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to defer join"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"state":          service.JoinStateDeferred,
			"invite_session": token,
			"redirect":       "/signup",
		})
		return
	}

	res, err := h.invites.Join(c.Request.Context(), code, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, res)
		return
	}

	switch res.State {
	case service.JoinStateInvalid:
		c.JSON(http.StatusNotFound, res)
	default:
		c.JSON(http.StatusOK, res)
	}
}
