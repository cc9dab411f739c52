package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hev/timebill/internal/api"
	"github.com/hev/timebill/internal/auth"
	"github.com/hev/timebill/internal/config"
	"github.com/hev/timebill/internal/format"
	"github.com/hev/timebill/internal/report"
)

// WeeklyCmd returns the weekly command.
func WeeklyCmd() *cobra.Command {
	var weekOf string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Show weekly time summary grouped by client",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWeekly(weekOf, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&weekOf, "week-of", "", "Show week containing this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runWeekly(weekOf string, jsonOutput bool) error {
	store := config.DefaultStore()
	cfg, err := store.Load()
	if err != nil {
		return err
	}

	client := auth.NewAPIClient(store, cfg)

	ref := time.Now()
	if weekOf != "" {
		ref, err = time.Parse("2006-01-02", weekOf)
		if err != nil {
			return fmt.Errorf("invalid date format: %w", err)
		}
	}
	weekStart, weekEnd := report.WeekRange(ref)

	// The two reads are independent; fetch them together and fail the
	// command if either fails.
	var entries []api.TimeEntry
	var clientNames map[int]string

	var g errgroup.Group
	g.Go(func() error {
		var err error
		entries, err = api.ListTimeEntries(client, cfg.BusinessID, weekStart, weekEnd)
		return err
	})
	g.Go(func() error {
		var err error
		clientNames, err = api.ListClients(client, cfg.AccountID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	summary := report.BuildSummary(entries, clientNames, weekStart)

	if jsonOutput {
		fmt.Println(format.JSON(summary))
	} else {
		fmt.Println(format.Table(summary))
	}
	return nil
}
