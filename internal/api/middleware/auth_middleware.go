package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/siddarth709/Portfolio/internal/auth"
	"github.com/siddarth709/Portfolio/internal/errcode"
)

// SessionCookieName 是管理员会话 Cookie 名。
const SessionCookieName = "portfolio_session"

const sessionIDKey = "sessionID"

// TokenValidator 校验会话令牌。
type TokenValidator interface {
	ValidateToken(token string) (*auth.SessionClaims, error)
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": errcode.Unauthorized, "error": "unauthorized"})
}

// AuthMiddleware 要求请求携带有效的管理员会话：优先读取 Cookie，其次读取 Bearer 头。
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken := bearerToken(c.GetHeader("Authorization"))
		if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
			rawToken = cookie
		}
		if rawToken == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := validator.ValidateToken(rawToken)
		if err != nil {
			LoggerFromContext(c).Info("session rejected", "error", err.Error())
			abortUnauthorized(c)
			return
		}

		c.Set(sessionIDKey, claims.ID)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
