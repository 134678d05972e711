package middleware

import (
	"slices"
	"strings"

	"pfolio_backend/internal/config"
	"pfolio_backend/internal/model"
	"pfolio_backend/internal/util"
	"pfolio_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionLookup resolves a session id to the session's current user.
type SessionLookup interface {
	Current(sessionID string) (*model.User, bool)
}

func bearerToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Query("token")
}

// AuthMiddleware requires a valid token whose session is still live. The
// user placed in the context is the session's current identity, not the
// token's copy.
func AuthMiddleware(cfg *config.Config, sessions SessionLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			logger.Log.Debug("JWT解析错误", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		user, ok := sessions.Current(claims.SessionID())
		if !ok {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(util.ContextClaimsKey, claims)
		c.Set(util.ContextSessionKey, claims.SessionID())
		c.Set(util.ContextUserKey, user)
		c.Next()
	}
}

// RoleMiddleware lets through only the listed roles. Admins get no
// implicit teacher rights: records must stay owned by teachers.
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if !slices.Contains(roles, user.Role) {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
