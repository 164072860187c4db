package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/siddarth709/Portfolio/internal/auth"
	"github.com/siddarth709/Portfolio/internal/errcode"
)

// SharedSecretMiddleware 用表单字段 field 中的共享口令保护公开表单（评价提交、受保护的研究文档）。
// secret 为空表示功能关闭，一律返回 404。
func SharedSecretMiddleware(secret, field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(secret) == "" {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"code": errcode.ResourceMissing, "error": "not available"})
			return
		}
		if !auth.CheckPassword(c.PostForm(field), secret) {
			LoggerFromContext(c).Info("shared secret rejected", "field", field)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": errcode.Unauthorized, "error": "Invalid Password"})
			return
		}
		c.Next()
	}
}
