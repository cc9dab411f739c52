package auth

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net/http"
	"testing"
	"time"
)

func TestSelfSignedCert(t *testing.T) {
	cert, err := selfSignedCert()
	if err != nil {
		t.Fatalf("selfSignedCert failed: %v", err)
	}
	parsed, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		t.Fatalf("certificate does not parse: %v", err)
	}
	if parsed.Subject.CommonName != "localhost" {
		t.Errorf("CN = %q, want localhost", parsed.Subject.CommonName)
	}
	if len(parsed.DNSNames) == 0 || parsed.DNSNames[0] != "localhost" {
		t.Errorf("DNS names = %v, want [localhost]", parsed.DNSNames)
	}
	if time.Now().After(parsed.NotAfter) {
		t.Error("certificate already expired")
	}
}

func TestWaitForAuthCode(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		code, err := WaitForAuthCode(ctx)
		if err != nil {
			errCh <- err
			return
		}
		codeCh <- code
	}()

	client := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}

	// The listener needs a moment to bind; retry briefly.
	var resp *http.Response
	var err error
	for i := 0; i < 50; i++ {
		resp, err = client.Get("https://localhost:8457/callback?code=test-code")
		if err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("callback request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	select {
	case code := <-codeCh:
		if code != "test-code" {
			t.Errorf("code = %q, want %q", code, "test-code")
		}
	case err := <-errCh:
		t.Fatalf("WaitForAuthCode returned error: %v", err)
	case <-ctx.Done():
		t.Fatal("timed out waiting for code")
	}
}

func TestOAuthConfigRequiresCredentials(t *testing.T) {
	t.Setenv("FRESHBOOKS_CLIENT_ID", "")
	t.Setenv("FRESHBOOKS_CLIENT_SECRET", "")
	if _, err := OAuthConfig(); err == nil {
		t.Fatal("expected error without app credentials")
	}

	t.Setenv("FRESHBOOKS_CLIENT_ID", "id")
	t.Setenv("FRESHBOOKS_CLIENT_SECRET", "secret")
	cfg, err := OAuthConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RedirectURL != "https://localhost:8457/callback" {
		t.Errorf("redirect = %q", cfg.RedirectURL)
	}
}
