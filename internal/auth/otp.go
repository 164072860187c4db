package auth

import (
	"encoding/base32"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp/totp"
)

// OTPVerifier 校验管理员提交的动态口令。
type OTPVerifier interface {
	Verify(code string) bool
}

// TOTPVerifier 基于固定共享密钥（base32）校验 TOTP，允许前后各一个时间窗口的偏差。
type TOTPVerifier struct {
	Secret string
	now    func() time.Time
}

// NewTOTPVerifier 返回使用 secret 的校验器。
func NewTOTPVerifier(secret string) *TOTPVerifier {
	return &TOTPVerifier{Secret: secret, now: time.Now}
}

func (v *TOTPVerifier) Verify(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" || v.Secret == "" {
		return false
	}
	now := time.Now
	if v.now != nil {
		now = v.now
	}
	ok, err := totp.ValidateCustom(code, v.Secret, now().UTC(), totp.ValidateOpts{
		Period: 30,
		Skew:   1,
		Digits: 6,
	})
	return err == nil && ok
}

// ProvisioningURI 生成 otpauth:// 链接，供认证器 App 扫码绑定已有密钥。
func ProvisioningURI(secret, issuer, account string) (string, error) {
	raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.ToUpper(strings.TrimRight(secret, "=")))
	if err != nil {
		return "", fmt.Errorf("decode totp secret: %w", err)
	}
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: account,
		Secret:      raw,
	})
	if err != nil {
		return "", fmt.Errorf("build totp key: %w", err)
	}
	return key.URL(), nil
}
