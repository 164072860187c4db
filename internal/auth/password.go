package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword 使用 bcrypt 生成密码哈希。
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPasswordHash 校验密码是否匹配哈希。
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IsBcryptHash 报告 s 是否形如 bcrypt 哈希（$2a$ / $2b$ / $2y$ 前缀）。
func IsBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}

// CheckPassword 校验口令：expected 是 bcrypt 哈希时按哈希比较，否则按常量时间明文比较。
// expected 为空时一律拒绝。
func CheckPassword(password, expected string) bool {
	if expected == "" {
		return false
	}
	if IsBcryptHash(expected) {
		return CheckPasswordHash(password, expected)
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(expected)) == 1
}
