package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddarth709/Portfolio/internal/auth"
)

func TestHashPasswordFromStdin(t *testing.T) {
	var out bytes.Buffer
	hashPasswordCmd.SetIn(strings.NewReader("hunter2\n"))
	hashPasswordCmd.SetOut(&out)

	require.NoError(t, hashPasswordCmd.RunE(hashPasswordCmd, nil))
	hash := strings.TrimSpace(out.String())
	assert.True(t, auth.CheckPassword("hunter2", hash))
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	hashPasswordCmd.SetIn(strings.NewReader("\n"))
	hashPasswordCmd.SetOut(&bytes.Buffer{})
	assert.Error(t, hashPasswordCmd.RunE(hashPasswordCmd, nil))
}

func TestTOTPURI(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TOTP_SECRET", "JBSWY3DPEHPK3PXP")

	var out bytes.Buffer
	totpURICmd.SetOut(&out)
	require.NoError(t, totpURICmd.RunE(totpURICmd, nil))
	assert.True(t, strings.HasPrefix(out.String(), "otpauth://totp/"))
	assert.Contains(t, out.String(), "issuer=Portfolio")
}

func TestHashPasswordGenerate(t *testing.T) {
	require.NoError(t, hashPasswordCmd.Flags().Set("generate", "true"))
	t.Cleanup(func() { _ = hashPasswordCmd.Flags().Set("generate", "false") })

	var out bytes.Buffer
	hashPasswordCmd.SetOut(&out)
	require.NoError(t, hashPasswordCmd.RunE(hashPasswordCmd, nil))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	password := strings.TrimPrefix(lines[0], "password: ")
	assert.Len(t, password, 32)
	assert.True(t, auth.CheckPassword(password, lines[1]))
}
