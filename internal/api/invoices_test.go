package api

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestCreateInvoice(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounting/account/abc123/invoices/invoices" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req CreateInvoiceRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Invoice.CustomerID != 100 {
			t.Errorf("customerid = %d, want 100", req.Invoice.CustomerID)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"response": map[string]any{
				"result": map[string]any{
					"invoice": map[string]any{
						"invoiceid":      55,
						"invoice_number": "0012",
						"amount":         map[string]string{"amount": "525.00", "code": "USD"},
						"v3_status":      "draft",
					},
				},
			},
		})
	})

	c := NewClient("test-token")
	req := &CreateInvoiceRequest{Invoice: InvoicePayload{CustomerID: 100, Status: InvoiceStatusDraft}}
	invoice, err := CreateInvoice(c, "abc123", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invoice.InvoiceID != 55 {
		t.Errorf("invoiceid = %d, want 55", invoice.InvoiceID)
	}
	if invoice.InvoiceNumber != "0012" {
		t.Errorf("invoice_number = %q, want 0012", invoice.InvoiceNumber)
	}
	if invoice.Amount.Amount != "525.00" || invoice.Amount.Code != "USD" {
		t.Errorf("amount = %+v", invoice.Amount)
	}
}

func TestGetShareLink(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounting/account/abc123/invoices/invoices/55/share_link" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"response": map[string]any{
				"result": map[string]any{"share_link": "https://my.freshbooks.com/#/link/55"},
			},
		})
	})

	c := NewClient("test-token")
	link, err := GetShareLink(c, "abc123", 55)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if link != "https://my.freshbooks.com/#/link/55" {
		t.Errorf("link = %q", link)
	}
}
