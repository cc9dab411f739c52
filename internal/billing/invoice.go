// Package billing turns unbilled time into invoices.
package billing

import (
	"fmt"
	"strconv"
	"time"

	"github.com/hev/timebill/internal/api"
	"github.com/hev/timebill/internal/config"
)

// Service is the slice of the API the billing workflow needs. Tests drive
// Run with a fake; commands use NewService over a live client.
type Service interface {
	UnbilledEntries(clientID int) ([]api.TimeEntry, error)
	CreateInvoice(req *api.CreateInvoiceRequest) (*api.InvoiceResponse, error)
	ShareLink(invoiceID int) (string, error)
	MarkBilled(entries []api.TimeEntry) (int, error)
}

type apiService struct {
	client     *api.Client
	accountID  string
	businessID int
}

// NewService wraps a live API client as a billing Service.
func NewService(c *api.Client, accountID string, businessID int) Service {
	return &apiService{client: c, accountID: accountID, businessID: businessID}
}

func (s *apiService) UnbilledEntries(clientID int) ([]api.TimeEntry, error) {
	return api.ListUnbilledEntries(s.client, s.businessID, clientID)
}

func (s *apiService) CreateInvoice(req *api.CreateInvoiceRequest) (*api.InvoiceResponse, error) {
	return api.CreateInvoice(s.client, s.accountID, req)
}

func (s *apiService) ShareLink(invoiceID int) (string, error) {
	return api.GetShareLink(s.client, s.accountID, invoiceID)
}

func (s *apiService) MarkBilled(entries []api.TimeEntry) (int, error) {
	return api.MarkEntriesBilled(s.client, s.businessID, entries)
}

// Options are the per-run overrides from the command line.
type Options struct {
	Rate     string
	Currency string
	Notes    string
	DryRun   bool
	Final    bool
}

// Result reports what a Run did. Exactly one of NothingToInvoice, DryRun or
// Invoice describes the outcome; BillWarning and ShareLink are best-effort
// extras on a created invoice.
type Result struct {
	NothingToInvoice bool
	DryRun           bool

	Entries  int
	Hours    float64
	Rate     string
	Currency string
	Total    string
	Lines    []api.InvoiceLine

	Invoice     *api.InvoiceResponse
	Final       bool
	ShareLink   string // empty when unavailable
	Billed      int
	BillWarning string // non-empty when mark-billed failed for some entries
}

// BuildLines converts time entries into invoice lines, one per entry in
// input order. An empty note falls back to "Consulting"; the description is
// the entry's local date.
func BuildLines(entries []api.TimeEntry, rate, currency string) []api.InvoiceLine {
	lines := make([]api.InvoiceLine, 0, len(entries))
	for _, entry := range entries {
		name := entry.Note
		if name == "" {
			name = "Consulting"
		}
		lines = append(lines, api.InvoiceLine{
			Type:        0,
			Name:        name,
			Description: entry.LocalDate(),
			Qty:         fmt.Sprintf("%.2f", float64(entry.Duration)/3600),
			UnitCost:    api.InvoiceAmount{Amount: rate, Code: currency},
		})
	}
	return lines
}

func resolveRate(opts Options, cfg *config.Config, clientID int) (string, error) {
	if opts.Rate != "" {
		return opts.Rate, nil
	}
	if rate := cfg.ClientRates[strconv.Itoa(clientID)]; rate != "" {
		return rate, nil
	}
	return "", fmt.Errorf("no rate configured for client %d. Use --rate <amount> or set client_rates.%d in config", clientID, clientID)
}

func resolveCurrency(opts Options, cfg *config.Config) string {
	if opts.Currency != "" {
		return opts.Currency
	}
	if cfg.DefaultCurrency != "" {
		return cfg.DefaultCurrency
	}
	return "USD"
}

func resolveStatus(opts Options, cfg *config.Config) (int, bool) {
	if opts.Final || cfg.InvoiceStatus == "final" {
		return api.InvoiceStatusFinal, true
	}
	return api.InvoiceStatusDraft, false
}

// Run invoices all unbilled time for a client. Zero unbilled entries and
// dry-run mode both return without touching remote state; a missing rate
// fails before any call. After the invoice is created, the share-link fetch
// and the mark-billed pass are best-effort and never fail the run.
func Run(svc Service, cfg *config.Config, clientID int, opts Options) (*Result, error) {
	entries, err := svc.UnbilledEntries(clientID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return &Result{NothingToInvoice: true}, nil
	}

	rate, err := resolveRate(opts, cfg, clientID)
	if err != nil {
		return nil, err
	}
	currency := resolveCurrency(opts, cfg)

	lines := BuildLines(entries, rate, currency)

	var totalSeconds int
	for _, e := range entries {
		totalSeconds += e.Duration
	}
	hours := float64(totalSeconds) / 3600
	rateFloat, _ := strconv.ParseFloat(rate, 64)

	res := &Result{
		Entries:  len(entries),
		Hours:    hours,
		Rate:     rate,
		Currency: currency,
		Total:    fmt.Sprintf("%.2f", hours*rateFloat),
		Lines:    lines,
	}

	if opts.DryRun {
		res.DryRun = true
		return res, nil
	}

	status, final := resolveStatus(opts, cfg)
	req := &api.CreateInvoiceRequest{
		Invoice: api.InvoicePayload{
			CustomerID: clientID,
			CreateDate: time.Now().Format("2006-01-02"),
			Lines:      lines,
			Status:     status,
			Notes:      opts.Notes,
		},
	}

	invoice, err := svc.CreateInvoice(req)
	if err != nil {
		return nil, err
	}
	res.Invoice = invoice
	res.Final = final

	if link, err := svc.ShareLink(invoice.InvoiceID); err == nil {
		res.ShareLink = link
	}

	billed, err := svc.MarkBilled(entries)
	res.Billed = billed
	if err != nil {
		res.BillWarning = fmt.Sprintf("failed to mark %d of %d entries as billed: %s", len(entries)-billed, len(entries), err)
	}

	return res, nil
}
