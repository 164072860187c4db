package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidOTP      = errors.New("invalid one-time password")
)

// adminSubject 是唯一管理员会话的 subject。
const adminSubject = "admin"

// AuthService 负责管理员登录校验（口令 + 动态口令）以及会话 JWT 的签发与校验。
type AuthService struct {
	secret        []byte
	sessionTTL    time.Duration
	adminPassword string
	otp           OTPVerifier
	now           func() time.Time
}

// SessionClaims 是会话 JWT 中的业务字段。
type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// NewAuthService 构造服务实例。adminPassword 可以是明文或 bcrypt 哈希。
func NewAuthService(secretKey, adminPassword string, otp OTPVerifier, sessionTTL time.Duration) (*AuthService, error) {
	if secretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if adminPassword == "" {
		return nil, errors.New("admin password is required")
	}
	if otp == nil {
		return nil, errors.New("otp verifier is required")
	}
	if sessionTTL <= 0 {
		sessionTTL = 12 * time.Hour
	}
	return &AuthService{
		secret:        []byte(secretKey),
		sessionTTL:    sessionTTL,
		adminPassword: adminPassword,
		otp:           otp,
		now:           time.Now,
	}, nil
}

// Login 依次校验口令与动态口令，成功后签发会话令牌。
func (s *AuthService) Login(password, code string) (string, time.Time, error) {
	if !CheckPassword(password, s.adminPassword) {
		return "", time.Time{}, ErrInvalidPassword
	}
	if !s.otp.Verify(code) {
		return "", time.Time{}, ErrInvalidOTP
	}
	return s.IssueToken()
}

// IssueToken 签发管理员会话令牌，返回令牌与过期时间。
func (s *AuthService) IssueToken() (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.sessionTTL)
	claims := SessionClaims{
		Role: adminSubject,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminSubject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// ValidateToken 解析并验证会话 JWT。
func (s *AuthService) ValidateToken(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, errors.New("token string is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Subject != adminSubject {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// SessionTTL 暴露会话有效期。
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}
