package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ClientRecord represents a FreshBooks client.
type ClientRecord struct {
	ID           int    `json:"id"`
	Organization string `json:"organization"`
	FName        string `json:"fname"`
	LName        string `json:"lname"`
}

// DisplayName resolves the name shown for a client: organization if set,
// else "first last", else a synthetic placeholder.
func (cr ClientRecord) DisplayName() string {
	if cr.Organization != "" {
		return cr.Organization
	}
	if name := strings.TrimSpace(cr.FName + " " + cr.LName); name != "" {
		return name
	}
	return fmt.Sprintf("Client #%d", cr.ID)
}

// ListClients fetches all clients and returns a map of client ID to display name.
func ListClients(c *Client, accountID string) (map[int]string, error) {
	path := fmt.Sprintf("/accounting/account/%s/users/clients", accountID)
	raw, err := c.GetPaginated(path, "clients", nil)
	if err != nil {
		return nil, err
	}

	names := make(map[int]string, len(raw))
	for _, r := range raw {
		var cr ClientRecord
		if err := json.Unmarshal(r, &cr); err != nil {
			continue
		}
		names[cr.ID] = cr.DisplayName()
	}
	return names, nil
}
