package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hev/timebill/internal/auth"
	"github.com/hev/timebill/internal/config"
)

// RefreshCmd returns the refresh command.
func RefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Rotate the stored access token using the refresh token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefresh()
		},
	}
}

func runRefresh() error {
	store := config.DefaultStore()
	cfg, err := store.Load()
	if err != nil {
		return err
	}
	if cfg.RefreshToken == "" {
		return fmt.Errorf("no refresh token in config. Run `timebill setup` first")
	}

	access, refresh, err := auth.Refresh(context.Background(), cfg.RefreshToken)
	if err != nil {
		return err
	}

	cfg.AccessToken = access
	cfg.RefreshToken = refresh
	if err := store.Save(cfg); err != nil {
		return fmt.Errorf("failed to save refreshed tokens: %w", err)
	}

	fmt.Println("Tokens refreshed.")
	return nil
}
