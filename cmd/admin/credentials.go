package main

import (
	"bufio"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/siddarth709/Portfolio/internal/auth"
	"github.com/siddarth709/Portfolio/internal/config"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print a bcrypt hash suitable for ADMIN_PASSWORD",
	Long: `Hash a password with bcrypt. The result can be used as ADMIN_PASSWORD
instead of the plain-text password. Reads the password from stdin when no
argument is given. With --generate a random password is created and printed
together with its hash; it is shown only once.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		generate, _ := cmd.Flags().GetBool("generate")

		var password string
		switch {
		case generate:
			p, err := generateRandomPassword(24)
			if err != nil {
				return err
			}
			password = p
			fmt.Fprintf(cmd.OutOrStdout(), "password: %s\n", password)
		case len(args) == 1:
			password = args[0]
		default:
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}
		if password == "" {
			return errors.New("password must not be empty")
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

var totpURICmd = &cobra.Command{
	Use:   "totp-uri",
	Short: "Print the otpauth:// URI for TOTP_SECRET to enrol an authenticator app",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadStorage()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cfg.Auth.TOTPSecret == "" {
			return errors.New("TOTP_SECRET is not set")
		}
		issuer, _ := cmd.Flags().GetString("issuer")
		account, _ := cmd.Flags().GetString("account")

		uri, err := auth.ProvisioningURI(cfg.Auth.TOTPSecret, issuer, account)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), uri)
		return nil
	},
}

func generateRandomPassword(bytesLen int) (string, error) {
	if bytesLen <= 0 {
		bytesLen = 24
	}
	buf := make([]byte, bytesLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func init() {
	hashPasswordCmd.Flags().Bool("generate", false, "Generate a random password instead of reading one")
	totpURICmd.Flags().String("issuer", "Portfolio", "Issuer shown in the authenticator app")
	totpURICmd.Flags().String("account", "admin", "Account name shown in the authenticator app")
}
