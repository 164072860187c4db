package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/siddarth709/Portfolio/internal/api/middleware"
	"github.com/siddarth709/Portfolio/internal/auth"
	"github.com/siddarth709/Portfolio/internal/errcode"
)

// AuthHandler 处理管理员登录与退出。
type AuthHandler struct {
	authService *auth.AuthService
}

// NewAuthHandler 构造认证处理器。
func NewAuthHandler(authService *auth.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Password string `form:"password" json:"password" binding:"required"`
	OTP      string `form:"otp" json:"otp" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Login 校验口令与动态口令，成功后写入会话 Cookie 并返回令牌。
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		BadRequest(c, "password and otp are required")
		return
	}

	logger := middleware.LoggerFromContext(c)
	token, _, err := h.authService.Login(req.Password, req.OTP)
	switch {
	case errors.Is(err, auth.ErrInvalidPassword):
		logger.Info("login failed: invalid password", slog.String("ip", c.ClientIP()))
		Unauthorized(c, "Invalid Password")
		return
	case errors.Is(err, auth.ErrInvalidOTP):
		logger.Info("login failed: invalid otp", slog.String("ip", c.ClientIP()))
		Unauthorized(c, "Invalid QR Code / OTP")
		return
	case err != nil:
		logger.Error("issue session failed", slog.String("error", err.Error()))
		Internal(c, "internal error")
		return
	}

	ttl := int(h.authService.SessionTTL().Seconds())
	setSessionCookie(c, token, ttl)
	logger.Info("admin logged in")
	c.JSON(http.StatusOK, gin.H{"code": errcode.OK, "data": tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   ttl,
	}})
}

// Logout 清除会话 Cookie。JWT 本身无状态，在过期前仍然有效。
func (h *AuthHandler) Logout(c *gin.Context) {
	setSessionCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

func setSessionCookie(c *gin.Context, value string, maxAge int) {
	secure := c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https")
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, value, maxAge, "/", "", secure, true)
}
