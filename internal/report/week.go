// Package report computes the Monday–Friday weekly view of tracked time.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hev/timebill/internal/api"
)

// WeeklySummary holds one week of time grouped by client.
type WeeklySummary struct {
	WeekStart  string          `json:"weekStart"`
	WeekEnd    string          `json:"weekEnd"`
	Clients    []ClientSummary `json:"clients"`
	GrandTotal float64         `json:"grandTotal"`
}

// ClientSummary holds per-client daily hours.
type ClientSummary struct {
	Name  string    `json:"name"`
	Daily []float64 `json:"daily"` // Mon–Fri (5 elements)
	Total float64   `json:"total"`
}

// WeekRange returns the Monday and Friday of the week containing ref, as
// YYYY-MM-DD strings. A Sunday reference belongs to the week that ended the
// day before.
func WeekRange(ref time.Time) (weekStart, weekEnd string) {
	diffToMonday := int(time.Monday - ref.Weekday())
	if ref.Weekday() == time.Sunday {
		diffToMonday = -6
	}
	monday := ref.AddDate(0, 0, diffToMonday)
	friday := monday.AddDate(0, 0, 4)

	return monday.Format("2006-01-02"), friday.Format("2006-01-02")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// entryDay maps an entry to its weekday index, 0=Mon..6=Sun, using the local
// start time and falling back to the UTC one. ok is false when neither
// timestamp parses.
func entryDay(entry api.TimeEntry) (int, bool) {
	localDate := entry.LocalStartedAt
	if localDate == "" {
		localDate = entry.StartedAt
	}
	t, err := time.Parse("2006-01-02T15:04:05", localDate)
	if err != nil {
		t, err = time.Parse(time.RFC3339, localDate)
		if err != nil {
			return 0, false
		}
	}
	if t.Weekday() == time.Sunday {
		return 6, true
	}
	return int(t.Weekday()) - 1, true
}

// BuildSummary buckets entries into per-client Mon–Fri hour totals for the
// week starting at weekStart. Weekend entries are dropped. Hours are rounded
// to 2 decimals per bucket; per-client totals sum the rounded dailies and
// the grand total sums the per-client totals, each re-rounded.
func BuildSummary(entries []api.TimeEntry, clientNames map[int]string, weekStart string) *WeeklySummary {
	monday, _ := time.Parse("2006-01-02", weekStart)
	weekEnd := monday.AddDate(0, 0, 4).Format("2006-01-02")

	seconds := make(map[int][]int) // client_id -> [5]seconds

	for _, entry := range entries {
		dayIndex, ok := entryDay(entry)
		if !ok || dayIndex > 4 {
			continue
		}
		if _, ok := seconds[entry.ClientID]; !ok {
			seconds[entry.ClientID] = make([]int, 5)
		}
		seconds[entry.ClientID][dayIndex] += entry.Duration
	}

	var clients []ClientSummary
	var grandTotal float64

	for clientID, daily := range seconds {
		hours := make([]float64, 5)
		var total float64
		for i, s := range daily {
			hours[i] = round2(float64(s) / 3600)
			total += hours[i]
		}
		total = round2(total)
		grandTotal += total

		name := clientNames[clientID]
		if name == "" {
			name = fmt.Sprintf("Client #%d", clientID)
		}
		clients = append(clients, ClientSummary{
			Name:  name,
			Daily: hours,
			Total: total,
		})
	}

	sort.Slice(clients, func(i, j int) bool {
		return strings.ToLower(clients[i].Name) < strings.ToLower(clients[j].Name)
	})

	return &WeeklySummary{
		WeekStart:  weekStart,
		WeekEnd:    weekEnd,
		Clients:    clients,
		GrandTotal: round2(grandTotal),
	}
}
