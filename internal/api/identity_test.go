package api

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestGetIdentity(t *testing.T) {
	t.Run("resolves first business membership", func(t *testing.T) {
		withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/auth/api/v1/users/me" {
				t.Errorf("path = %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"response": map[string]any{
					"id": 9,
					"business_memberships": []map[string]any{
						{"business": map[string]any{"id": 42, "account_id": "abc123"}},
						{"business": map[string]any{"id": 43, "account_id": "def456"}},
					},
				},
			})
		})

		c := NewClient("test-token")
		identity, err := GetIdentity(c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if identity.AccountID != "abc123" {
			t.Errorf("account = %q, want abc123", identity.AccountID)
		}
		if identity.BusinessID != 42 {
			t.Errorf("business = %d, want 42", identity.BusinessID)
		}
	})

	t.Run("no memberships is an error", func(t *testing.T) {
		withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"response": map[string]any{"id": 9, "business_memberships": []any{}},
			})
		})

		c := NewClient("test-token")
		if _, err := GetIdentity(c); err == nil {
			t.Fatal("expected error for empty memberships")
		}
	})
}
