package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// TimeEntry represents a FreshBooks time entry.
type TimeEntry struct {
	ID             int    `json:"id"`
	ClientID       int    `json:"client_id"`
	Duration       int    `json:"duration"` // seconds
	StartedAt      string `json:"started_at"`
	LocalStartedAt string `json:"local_started_at"`
	Note           string `json:"note"`
	Billable       bool   `json:"billable"`
}

// LocalDate returns the calendar date of the entry's local start time,
// falling back to the UTC timestamp when no local time is present.
func (te TimeEntry) LocalDate() string {
	dt := te.LocalStartedAt
	if dt == "" {
		dt = te.StartedAt
	}
	if len(dt) >= 10 {
		return dt[:10]
	}
	return dt
}

func timeEntriesPath(businessID int) string {
	return fmt.Sprintf("/timetracking/business/%d/time_entries", businessID)
}

func decodeEntries(raw []json.RawMessage) []TimeEntry {
	entries := make([]TimeEntry, 0, len(raw))
	for _, r := range raw {
		var te TimeEntry
		if err := json.Unmarshal(r, &te); err != nil {
			continue
		}
		entries = append(entries, te)
	}
	return entries
}

// ListTimeEntries fetches time entries whose start falls within the given
// date range, inclusive of both full days in local wall-clock terms.
func ListTimeEntries(c *Client, businessID int, startedFrom, startedTo string) ([]TimeEntry, error) {
	raw, err := c.GetPaginated(timeEntriesPath(businessID), "time_entries", map[string]string{
		"started_from": startedFrom + "T00:00:00",
		"started_to":   startedTo + "T23:59:59",
	})
	if err != nil {
		return nil, err
	}
	return decodeEntries(raw), nil
}

// ListUnbilledEntries fetches unbilled, billable time entries for a client.
func ListUnbilledEntries(c *Client, businessID, clientID int) ([]TimeEntry, error) {
	raw, err := c.GetPaginated(timeEntriesPath(businessID), "time_entries", map[string]string{
		"client_id": fmt.Sprintf("%d", clientID),
		"billed":    "false",
		"billable":  "true",
	})
	if err != nil {
		return nil, err
	}
	return decodeEntries(raw), nil
}

// CreateTimeEntryRequest holds the parameters for creating a time entry.
type CreateTimeEntryRequest struct {
	ClientID  int    `json:"client_id"`
	ProjectID int    `json:"project_id,omitempty"`
	ServiceID int    `json:"service_id,omitempty"`
	Duration  int    `json:"duration"` // seconds
	Note      string `json:"note"`
	Billable  bool   `json:"billable"`
	StartedAt string `json:"started_at"` // ISO 8601
}

// CreateTimeEntry creates a new time entry.
func CreateTimeEntry(c *Client, businessID int, entry CreateTimeEntryRequest) (*TimeEntry, error) {
	body := map[string]any{
		"time_entry": map[string]any{
			"client_id":  entry.ClientID,
			"project_id": entry.ProjectID,
			"service_id": entry.ServiceID,
			"duration":   entry.Duration,
			"note":       entry.Note,
			"billable":   entry.Billable,
			"started_at": entry.StartedAt,
			"is_logged":  true,
		},
	}
	var resp struct {
		TimeEntry TimeEntry `json:"time_entry"`
	}
	if err := c.Post(timeEntriesPath(businessID), body, &resp); err != nil {
		return nil, err
	}
	return &resp.TimeEntry, nil
}

// MarkEntriesBilled flips the billed flag on each entry, one request at a
// time in input order. The update re-asserts duration, start time and the
// logged flag; the API rejects partial time_entry payloads. A failed entry
// does not stop the rest: the returned count is how many updates succeeded,
// and err joins every per-entry failure.
func MarkEntriesBilled(c *Client, businessID int, entries []TimeEntry) (int, error) {
	var errs []error
	billed := 0
	for _, entry := range entries {
		path := fmt.Sprintf("%s/%d", timeEntriesPath(businessID), entry.ID)
		body := map[string]any{
			"time_entry": map[string]any{
				"billed":     true,
				"started_at": entry.StartedAt,
				"is_logged":  true,
				"duration":   entry.Duration,
			},
		}
		if err := c.Put(path, body, nil); err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", entry.ID, err))
			continue
		}
		billed++
	}
	return billed, errors.Join(errs...)
}
