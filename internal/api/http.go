package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
)

// BaseURL is the base URL for the FreshBooks API. It is a var so tests can
// point the client at a local server.
var BaseURL = "https://api.freshbooks.com"

// APIError represents a non-2xx response from the FreshBooks API.
type APIError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d %s: %s", e.Status, e.StatusText, e.Body)
}

// AuthError represents a 401 Unauthorized response. It is a specialization
// of APIError: errors.As against *APIError matches it via Unwrap.
type AuthError struct {
	APIError
}

func (e *AuthError) Unwrap() error {
	return &e.APIError
}

// RefreshFunc exchanges the current refresh credential for a new access
// token, persisting the rotated pair as a side effect.
type RefreshFunc func() (string, error)

// Client issues authenticated requests against the FreshBooks API. It is
// safe for concurrent use: the session token is guarded by a mutex and
// refresh state is per-call, never shared.
type Client struct {
	mu      sync.Mutex
	token   string
	http    *http.Client
	refresh RefreshFunc
}

// NewClient creates a Client with the given bearer token.
func NewClient(token string) *Client {
	return &Client{
		token: token,
		http:  &http.Client{},
	}
}

// SetRefreshFunc sets the callback used to refresh the access token on 401.
func (c *Client) SetRefreshFunc(fn RefreshFunc) {
	c.refresh = fn
}

// Get performs an authenticated GET request and decodes the JSON response into dest.
func (c *Client) Get(path string, params map[string]string, dest any) error {
	u, err := url.Parse(BaseURL + path)
	if err != nil {
		return err
	}
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	return c.do("GET", u.String(), nil, dest)
}

// Post performs an authenticated POST request.
func (c *Client) Post(path string, body any, dest any) error {
	return c.mutate("POST", path, body, dest)
}

// Put performs an authenticated PUT request.
func (c *Client) Put(path string, body any, dest any) error {
	return c.mutate("PUT", path, body, dest)
}

func (c *Client) mutate(method, path string, body any, dest any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return c.do(method, BaseURL+path, data, dest)
}

// do issues the request, refreshing the token and retrying exactly once on
// the first 401. Retry state lives in the attempt counter of this one call,
// not on the Client, so concurrent calls cannot race on it.
func (c *Client) do(method, url string, body []byte, dest any) error {
	token := c.currentToken()
	for attempt := 0; ; attempt++ {
		respBody, status, statusText, err := c.send(method, url, body, token)
		if err != nil {
			return err
		}

		if status == 401 && attempt == 0 && c.refresh != nil {
			newToken, refreshErr := c.refreshStale(token)
			if refreshErr != nil {
				return &AuthError{APIError{401, "Unauthorized", "Session expired. Run `timebill setup` to re-authenticate."}}
			}
			token = newToken
			continue
		}
		if status == 401 {
			return &AuthError{APIError{401, "Unauthorized", string(respBody)}}
		}
		if status < 200 || status >= 300 {
			return &APIError{status, statusText, string(respBody)}
		}

		if dest != nil {
			return json.Unmarshal(respBody, dest)
		}
		return nil
	}
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// refreshStale refreshes the session token, unless another call already
// replaced the stale one, in which case the fresher token is reused.
func (c *Client) refreshStale(stale string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != stale {
		return c.token, nil
	}
	newToken, err := c.refresh()
	if err != nil {
		return "", err
	}
	c.token = newToken
	return newToken, nil
}

func (c *Client) send(method, url string, body []byte, token string) ([]byte, int, string, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, 0, "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, "", err
	}
	return respBody, resp.StatusCode, resp.Status, nil
}
