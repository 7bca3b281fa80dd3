package middleware

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sakurada-dev/team-productivity-api/internal/constants"
	"github.com/sakurada-dev/team-productivity-api/internal/database"
	apierrors "github.com/sakurada-dev/team-productivity-api/internal/errors"
	"github.com/sakurada-dev/team-productivity-api/internal/models"
)

// RequireAuth resolves the session cookie into a typed Actor and stores it in
// the request context. No session is 401; a deactivated account is 403.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get(constants.SessionTokenKey).(string)
		if token == "" {
			apierrors.Respond(c, apierrors.Unauthorized(""))
			c.Abort()
			return
		}

		var dbSession models.Session
		err := database.GetDB().
			Where("token = ? AND expires_at > ?", token, time.Now()).
			First(&dbSession).Error
		if err != nil {
			apierrors.Respond(c, apierrors.Unauthorized(""))
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, dbSession.UserID).Error; err != nil {
			apierrors.Respond(c, apierrors.Unauthorized(""))
			c.Abort()
			return
		}

		if !user.IsActive {
			apierrors.Respond(c, apierrors.Forbidden("Account is deactivated"))
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyActor, models.ActorFromUser(&user))
		c.Next()
	}
}

// RequireAdmin rejects any actor that is not an active admin. It must run
// after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, exists := GetActor(c)
		if !exists {
			apierrors.Respond(c, apierrors.Unauthorized(""))
			c.Abort()
			return
		}

		if actor.Role != models.RoleAdmin {
			apierrors.Respond(c, apierrors.Forbidden("Admin privileges required"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetActor retrieves the resolved Actor from the request context.
func GetActor(c *gin.Context) (models.Actor, bool) {
	value, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return models.Actor{}, false
	}

	actor, ok := value.(models.Actor)
	if !ok {
		return models.Actor{}, false
	}
	return actor, true
}
