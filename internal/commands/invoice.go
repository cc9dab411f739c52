package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hev/timebill/internal/auth"
	"github.com/hev/timebill/internal/billing"
	"github.com/hev/timebill/internal/config"
)

// InvoiceCmd returns the invoice command.
func InvoiceCmd() *cobra.Command {
	var opts billing.Options

	cmd := &cobra.Command{
		Use:   "invoice <client-id>",
		Short: "Create an invoice for all unbilled time entries for a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid client ID: %w", err)
			}
			return runInvoice(clientID, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Rate, "rate", "", "Override the hourly rate for this run")
	cmd.Flags().StringVar(&opts.Currency, "currency", "", "Override currency code (default: config or USD)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Show what would be invoiced without creating it")
	cmd.Flags().BoolVar(&opts.Final, "final", false, "Create the invoice as final instead of draft")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "Add notes to the invoice")

	return cmd
}

func runInvoice(clientID int, opts billing.Options) error {
	store := config.DefaultStore()
	cfg, err := store.Load()
	if err != nil {
		return err
	}

	client := auth.NewAPIClient(store, cfg)
	svc := billing.NewService(client, cfg.AccountID, cfg.BusinessID)

	res, err := billing.Run(svc, cfg, clientID, opts)
	if err != nil {
		return err
	}
	printInvoiceResult(res)
	return nil
}

func printInvoiceResult(res *billing.Result) {
	if res.NothingToInvoice {
		fmt.Println("No unbilled time entries found for this client.")
		return
	}

	if res.DryRun {
		fmt.Println("Dry run — no invoice created.")
		fmt.Println()
		fmt.Printf("Entries: %d\n", res.Entries)
		fmt.Printf("Hours:   %.2f\n", res.Hours)
		fmt.Printf("Rate:    %s %s/hr\n", res.Rate, res.Currency)
		fmt.Printf("Total:   %s %s\n\n", res.Total, res.Currency)
		fmt.Println("Line items:")
		for _, line := range res.Lines {
			fmt.Printf("  %s  %sh  %s\n", line.Description, line.Qty, line.Name)
		}
		return
	}

	status := "draft"
	if res.Final {
		status = "final"
	}
	fmt.Printf("Invoice #%s created (%s).\n", res.Invoice.InvoiceNumber, status)
	fmt.Printf("ID:      %d\n", res.Invoice.InvoiceID)
	fmt.Printf("Entries: %d\n", res.Entries)
	fmt.Printf("Hours:   %.2f\n", res.Hours)
	fmt.Printf("Total:   %s %s\n", res.Invoice.Amount.Amount, res.Invoice.Amount.Code)

	if res.ShareLink != "" {
		fmt.Printf("Link:    %s\n", res.ShareLink)
	} else {
		fmt.Println("Link:    (share link unavailable — may need invoices:read scope)")
	}

	if res.BillWarning != "" {
		fmt.Printf("Warning: %s\n", res.BillWarning)
	} else {
		fmt.Printf("Billed:  %d entries marked as billed\n", res.Billed)
	}
}
