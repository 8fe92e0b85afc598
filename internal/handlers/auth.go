package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"creatorhub/internal/middleware"
	"creatorhub/internal/models"
	"creatorhub/internal/security"
)

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// SignIn performs the demo login: pass/fail only, no further detail.
func (h HandlerSet) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.sessions.Login(c.Request.Context(), req.Email, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	h.sendAuthResponse(c)
}

func (h HandlerSet) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.sessions.Register(c.Request.Context(), req.Email, req.Password, req.Name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_registration"})
		return
	}

	h.sendAuthResponse(c)
}

// SignOut clears the session and its persisted record. Tokens already
// issued stay parseable until their TTL runs out: there is no revocation
// list in the demo, so "signed out" only holds for clients that discard
// their token, the same way the original cleared its own stored copy.
func (h HandlerSet) SignOut(c *gin.Context) {
	h.sessions.Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

func (h HandlerSet) sendAuthResponse(c *gin.Context) {
	user, ok := h.sessions.Current()
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session_missing"})
		return
	}

	token, err := security.GenerateToken(h.cfg.Security.JWTSecret, user, h.cfg.Security.JWTTTL)
	if err != nil {
		h.log.Error().Err(err).Msg("token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token_generation_failed"})
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

func toUserResponse(user models.User) userResponse {
	return userResponse{
		ID:    user.ID,
		Email: user.Email,
		Role:  string(user.Role),
		Name:  user.Name,
	}
}
