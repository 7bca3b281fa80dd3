package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sakurada-dev/team-productivity-api/internal/constants"
	"github.com/sakurada-dev/team-productivity-api/internal/dto"
	apierrors "github.com/sakurada-dev/team-productivity-api/internal/errors"
	"github.com/sakurada-dev/team-productivity-api/internal/middleware"
	"github.com/sakurada-dev/team-productivity-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup registers a new user.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.BadRequest("Invalid request body"))
		return
	}

	user, err := h.authService.Signup(services.SignupInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.BadRequest("Invalid request body"))
		return
	}

	user, dbSession, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionTokenKey, dbSession.Token)
	if err := session.Save(); err != nil {
		apierrors.Respond(c, apierrors.Internal())
		return
	}

	c.JSON(http.StatusOK, user)
}

// Logout revokes the server-side session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	token, _ := session.Get(constants.SessionTokenKey).(string)

	if err := h.authService.Logout(token); err != nil {
		apierrors.Respond(c, err)
		return
	}

	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.Respond(c, apierrors.Internal())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Respond(c, apierrors.Unauthorized(""))
		return
	}

	user, err := h.authService.GetUser(actor.ID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
