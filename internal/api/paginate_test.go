package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

func TestGetPaginatedFlatShape(t *testing.T) {
	// 3 pages, 2 + 2 + 1 items.
	pageSizes := map[string]int{"1": 2, "2": 2, "3": 1}
	var fetched []string
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		fetched = append(fetched, page)
		if r.URL.Query().Get("per_page") != "100" {
			t.Errorf("per_page = %s, want 100", r.URL.Query().Get("per_page"))
		}

		items := make([]map[string]string, pageSizes[page])
		for i := range items {
			items[i] = map[string]string{"id": fmt.Sprintf("%s-%d", page, i)}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"entries": items,
			"meta":    map[string]int{"pages": 3},
		})
	})

	c := NewClient("test-token")
	results, err := c.GetPaginated("/entries", "entries", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 5 {
		t.Errorf("expected 5 results across 3 pages, got %d", len(results))
	}
	if len(fetched) != 3 {
		t.Fatalf("expected 3 sequential fetches, got %d", len(fetched))
	}
	for i, p := range []string{"1", "2", "3"} {
		if fetched[i] != p {
			t.Errorf("fetch %d requested page %s, want %s", i, fetched[i], p)
		}
	}
}

func TestGetPaginatedNestedShape(t *testing.T) {
	pages := 0
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		pages++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"response": map[string]any{
				"result": map[string]any{
					"clients": []map[string]string{{"id": "1"}, {"id": "2"}},
					"pages":   3,
				},
			},
		})
	})

	c := NewClient("test-token")
	results, err := c.GetPaginated("/clients", "clients", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 6 {
		t.Errorf("expected 6 results (2 items x 3 pages), got %d", len(results))
	}
	if pages != 3 {
		t.Errorf("expected 3 fetches, got %d", pages)
	}
}

func TestGetPaginatedPassesThroughParams(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("billed") != "false" {
			t.Errorf("billed = %s, want false", r.URL.Query().Get("billed"))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"entries": []map[string]string{},
			"meta":    map[string]int{"pages": 1},
		})
	})

	c := NewClient("test-token")
	if _, err := c.GetPaginated("/entries", "entries", map[string]string{"billed": "false"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDecodePage(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		key       string
		wantItems int
		wantPages int
	}{
		{
			name:      "flat shape",
			body:      `{"entries":[{"id":"1"},{"id":"2"}],"meta":{"pages":3}}`,
			key:       "entries",
			wantItems: 2,
			wantPages: 3,
		},
		{
			name:      "flat shape without meta defaults to one page",
			body:      `{"entries":[{"id":"1"}]}`,
			key:       "entries",
			wantItems: 1,
			wantPages: 1,
		},
		{
			name:      "nested shape",
			body:      `{"response":{"result":{"invoices":[{"id":"1"}],"pages":5}}}`,
			key:       "invoices",
			wantItems: 1,
			wantPages: 5,
		},
		{
			name:      "nested shape without pages defaults to one page",
			body:      `{"response":{"result":{"invoices":[{"id":"1"}]}}}`,
			key:       "invoices",
			wantItems: 1,
			wantPages: 1,
		},
		{
			name:      "key absent in both shapes",
			body:      `{"something":"else"}`,
			key:       "entries",
			wantItems: 0,
			wantPages: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, pages := decodePage(json.RawMessage(tt.body), tt.key)
			if len(items) != tt.wantItems {
				t.Errorf("items = %d, want %d", len(items), tt.wantItems)
			}
			if pages != tt.wantPages {
				t.Errorf("pages = %d, want %d", pages, tt.wantPages)
			}
		})
	}
}
