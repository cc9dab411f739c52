package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the timebill configuration.
type Config struct {
	AccessToken     string            `json:"access_token"`
	RefreshToken    string            `json:"refresh_token,omitempty"`
	AccountID       string            `json:"account_id"`
	BusinessID      int               `json:"business_id"`
	ClientRates     map[string]string `json:"client_rates,omitempty"`
	DefaultCurrency string            `json:"default_currency,omitempty"`
	InvoiceStatus   string            `json:"invoice_status,omitempty"` // "draft" (default) or "final"
}

// Store reads and writes the config file in a fixed directory. Commands use
// DefaultStore; tests construct a Store over a temp directory.
type Store struct {
	Dir string
}

// DefaultStore returns a Store rooted at the user's config directory.
func DefaultStore() Store {
	home, _ := os.UserHomeDir()
	return Store{Dir: filepath.Join(home, ".config", "timebill")}
}

// Path returns the path to the config file.
func (s Store) Path() string {
	return filepath.Join(s.Dir, "config.json")
}

// Load reads and parses the config file.
func (s Store) Load() (*Config, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return nil, fmt.Errorf("config not found. Run `timebill setup` to authenticate")
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}
	return &cfg, nil
}

// Save writes the config to disk. The write goes through a temp file and a
// rename so a crash mid-write cannot leave a truncated config behind.
func (s Store) Save(cfg *Config) error {
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	tmp := s.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.Path()); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// TimerPath returns the path to the persisted timer state file.
func (s Store) TimerPath() string {
	return filepath.Join(s.Dir, "timer.json")
}
