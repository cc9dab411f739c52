package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hev/timebill/internal/api"
	"github.com/hev/timebill/internal/auth"
	"github.com/hev/timebill/internal/config"
)

// SetupCmd returns the setup command.
func SetupCmd() *cobra.Command {
	var manualToken bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Authenticate with FreshBooks and save credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(manualToken)
		},
	}

	cmd.Flags().BoolVar(&manualToken, "token", false, "Paste an access token instead of using the browser flow")

	return cmd
}

func runSetup(manualToken bool) error {
	var accessToken, refreshToken string
	var err error

	if manualToken {
		accessToken, err = promptToken()
	} else {
		accessToken, refreshToken, err = browserFlow()
	}
	if err != nil {
		return err
	}

	fmt.Println("Verifying token...")
	client := api.NewClient(accessToken)
	identity, err := api.GetIdentity(client)
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}

	store := config.DefaultStore()
	cfg := &config.Config{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccountID:    identity.AccountID,
		BusinessID:   identity.BusinessID,
	}
	// Re-running setup should not wipe billing preferences.
	if prev, err := store.Load(); err == nil {
		cfg.ClientRates = prev.ClientRates
		cfg.DefaultCurrency = prev.DefaultCurrency
		cfg.InvoiceStatus = prev.InvoiceStatus
	}
	if err := store.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("Setup complete.")
	fmt.Printf("  Account:  %s\n", identity.AccountID)
	fmt.Printf("  Business: %d\n", identity.BusinessID)
	fmt.Printf("  Config:   %s\n", store.Path())
	return nil
}

func promptToken() (string, error) {
	fmt.Print("Paste your FreshBooks access token: ")
	token, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	if len(token) == 0 {
		return "", fmt.Errorf("no token entered")
	}
	return string(token), nil
}

func browserFlow() (access, refresh string, err error) {
	oauthCfg, err := auth.OAuthConfig()
	if err != nil {
		return "", "", err
	}

	fmt.Println("Open this link to authorize timebill:")
	fmt.Println()
	fmt.Printf("  %s\n\n", oauthCfg.AuthCodeURL(""))
	fmt.Println("Waiting for authorization...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	code, err := auth.WaitForAuthCode(ctx)
	if err != nil {
		return "", "", err
	}

	fmt.Println("Exchanging code for token...")
	tok, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		return "", "", fmt.Errorf("token exchange failed: %w", err)
	}
	return tok.AccessToken, tok.RefreshToken, nil
}
