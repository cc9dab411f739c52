package commands

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hev/timebill/internal/api"
	"github.com/hev/timebill/internal/auth"
	"github.com/hev/timebill/internal/config"
)

// InitCmd returns the init command.
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize " + config.ProjectConfigFile + " in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit()
		},
	}
}

func runInit() error {
	store := config.DefaultStore()
	cfg, err := store.Load()
	if err != nil {
		return err
	}

	client := auth.NewAPIClient(store, cfg)
	reader := bufio.NewReader(os.Stdin)

	clients, err := api.ListClients(client, cfg.AccountID)
	if err != nil {
		return fmt.Errorf("failed to list clients: %w", err)
	}
	clientID, err := pickFromMap(reader, "Client", clients)
	if err != nil {
		return err
	}

	projects, err := api.ListProjects(client, cfg.BusinessID, clientID)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}
	var projectID int
	if len(projects) > 0 {
		projectID, err = pickFromMap(reader, "Project", projects)
		if err != nil {
			return err
		}
	} else {
		fmt.Println("No projects found for this client, skipping.")
	}

	services, err := api.ListServices(client, cfg.BusinessID)
	if err != nil {
		return fmt.Errorf("failed to list services: %w", err)
	}
	var serviceID int
	if len(services) > 0 {
		serviceID, err = pickFromMap(reader, "Service", services)
		if err != nil {
			return err
		}
	} else {
		fmt.Println("No services found, skipping.")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	pc := &config.ProjectConfig{
		ClientID:  clientID,
		ProjectID: projectID,
		ServiceID: serviceID,
	}
	if err := config.SaveProjectConfig(cwd, pc); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.ProjectConfigFile, err)
	}

	fmt.Printf("Wrote %s\n", config.ProjectConfigFile)
	return nil
}

type mapEntry struct {
	id   int
	name string
}

func pickFromMap(reader *bufio.Reader, label string, items map[int]string) (int, error) {
	var entries []mapEntry
	for id, name := range items {
		entries = append(entries, mapEntry{id, name})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].name < entries[j].name
	})

	fmt.Printf("\n%s:\n", label)
	for i, e := range entries {
		fmt.Printf("  %d) %s (ID: %d)\n", i+1, e.name, e.id)
	}

	for {
		fmt.Printf("Select %s [1-%d]: ", strings.ToLower(label), len(entries))
		input, err := reader.ReadString('\n')
		if err != nil {
			return 0, err
		}
		input = strings.TrimSpace(input)
		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(entries) {
			fmt.Println("Invalid selection, try again.")
			continue
		}
		selected := entries[n-1]
		fmt.Printf("Selected: %s\n", selected.name)
		return selected.id, nil
	}
}
