package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hev/timebill/internal/api"
	"github.com/hev/timebill/internal/auth"
	"github.com/hev/timebill/internal/config"
)

// ClientsCmd returns the clients command.
func ClientsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clients",
		Short: "List clients with their IDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClients()
		},
	}
}

func runClients() error {
	store := config.DefaultStore()
	cfg, err := store.Load()
	if err != nil {
		return err
	}

	client := auth.NewAPIClient(store, cfg)
	clients, err := api.ListClients(client, cfg.AccountID)
	if err != nil {
		return err
	}

	const idWidth = 8
	fmt.Printf("%-*s%s\n", idWidth, "ID", "Name")
	fmt.Println(strings.Repeat("─", 40))

	if len(clients) == 0 {
		fmt.Println("No clients found.")
		return nil
	}

	type row struct {
		id   int
		name string
	}
	var rows []row
	for id, name := range clients {
		rows = append(rows, row{id, name})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].name < rows[j].name
	})

	for _, r := range rows {
		fmt.Printf("%-*d%s\n", idWidth, r.id, r.name)
	}
	return nil
}
