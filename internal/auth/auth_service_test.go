package auth

import (
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "JBSWY3DPEHPK3PXP"

type staticOTP bool

func (s staticOTP) Verify(string) bool { return bool(s) }

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.True(t, IsBcryptHash(hash))

	assert.True(t, CheckPassword("hunter2", hash))
	assert.False(t, CheckPassword("hunter3", hash))
	assert.True(t, CheckPassword("plain", "plain"))
	assert.False(t, CheckPassword("plain", "plainer"))
	assert.False(t, CheckPassword("", ""))
}

func TestLogin(t *testing.T) {
	svc, err := NewAuthService("k", "pw", staticOTP(true), time.Hour)
	require.NoError(t, err)

	token, expires, err := svc.Login("pw", "123456")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.NotEmpty(t, claims.ID)

	_, _, err = svc.Login("wrong", "123456")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	denied, err := NewAuthService("k", "pw", staticOTP(false), time.Hour)
	require.NoError(t, err)
	_, _, err = denied.Login("pw", "000000")
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestValidateTokenRejectsForeignAndExpired(t *testing.T) {
	svc, err := NewAuthService("k1", "pw", staticOTP(true), time.Hour)
	require.NoError(t, err)
	other, err := NewAuthService("k2", "pw", staticOTP(true), time.Hour)
	require.NoError(t, err)

	token, _, err := other.IssueToken()
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)

	token, _, err = svc.IssueToken()
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)

	_, err = svc.ValidateToken("")
	assert.Error(t, err)
}

func TestNewAuthServiceRequiresSecrets(t *testing.T) {
	_, err := NewAuthService("", "pw", staticOTP(true), time.Hour)
	assert.Error(t, err)
	_, err = NewAuthService("k", "", staticOTP(true), time.Hour)
	assert.Error(t, err)
	_, err = NewAuthService("k", "pw", nil, time.Hour)
	assert.Error(t, err)
}

func TestTOTPVerifier(t *testing.T) {
	at := time.Date(2026, 1, 3, 12, 0, 0, 0, time.UTC)
	v := NewTOTPVerifier(testSecret)
	v.now = func() time.Time { return at }

	code, err := totp.GenerateCode(testSecret, at)
	require.NoError(t, err)
	assert.True(t, v.Verify(code))
	assert.True(t, v.Verify(" "+code+" "))
	assert.False(t, v.Verify(""))

	stale, err := totp.GenerateCode(testSecret, at.Add(-10*time.Minute))
	require.NoError(t, err)
	assert.False(t, v.Verify(stale))
}

func TestProvisioningURI(t *testing.T) {
	uri, err := ProvisioningURI(testSecret, "Portfolio", "admin")
	require.NoError(t, err)
	assert.Contains(t, uri, "otpauth://totp/")
	assert.Contains(t, uri, "secret="+testSecret)
	assert.Contains(t, uri, "issuer=Portfolio")

	_, err = ProvisioningURI("not base32!", "Portfolio", "admin")
	assert.Error(t, err)
}
