// Package quickbooks is a thin client for the QuickBooks Online accounting
// API: the chart of accounts, journal entries and OAuth token refresh. The
// authorization-code dance that first connects a company happens elsewhere;
// this client only consumes stored tokens.
package quickbooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	productionBaseURL = "https://quickbooks.api.intuit.com"
	sandboxBaseURL    = "https://sandbox-quickbooks.api.intuit.com"
	tokenURL          = "https://oauth.platform.intuit.com/oauth2/v1/tokens/bearer"
)

// ErrRefreshTokenExpired signals that the refresh token itself was rejected
// and the user must re-authorize the integration. Callers must treat this
// differently from transient refresh failures.
var ErrRefreshTokenExpired = errors.New("quickbooks refresh token expired")

// ErrAccountNotFound is returned by GetAccountByID when QuickBooks has no
// account with the requested ID.
var ErrAccountNotFound = errors.New("quickbooks account not found")

// Config carries the app credentials issued by Intuit.
type Config struct {
	ClientID     string
	ClientSecret string
	Environment  string // "production" or "sandbox"
}

// Client talks to the QuickBooks Online v3 API.
type Client struct {
	httpClient *http.Client
	oauthCfg   *oauth2.Config
	baseURL    string
}

// NewClient builds a client for the configured environment.
func NewClient(cfg Config) *Client {
	baseURL := sandboxBaseURL
	if cfg.Environment == "production" {
		baseURL = productionBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		oauthCfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: tokenURL},
		},
	}
}

// RefreshTokens exchanges a refresh token for a fresh token pair. A rejected
// refresh token ("invalid_grant") maps to ErrRefreshTokenExpired; any other
// failure is returned as-is for the caller to treat as fatal.
func (c *Client) RefreshTokens(ctx context.Context, refreshToken string) (Tokens, error) {
	source := c.oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.ErrorCode == "invalid_grant" {
			return Tokens{}, fmt.Errorf("%w: %v", ErrRefreshTokenExpired, err)
		}
		return Tokens{}, fmt.Errorf("failed to refresh quickbooks tokens: %w", err)
	}

	refreshed := token.RefreshToken
	if refreshed == "" {
		refreshed = refreshToken
	}
	return Tokens{
		AccessToken:  token.AccessToken,
		RefreshToken: refreshed,
		ExpiresAt:    token.Expiry,
	}, nil
}

// GetAccounts fetches all active accounts of the company's chart of accounts.
func (c *Client) GetAccounts(ctx context.Context, accessToken, realmID string) ([]Account, error) {
	var payload struct {
		QueryResponse struct {
			Account []Account `json:"Account"`
		} `json:"QueryResponse"`
	}
	err := c.query(ctx, accessToken, realmID, "SELECT * FROM Account WHERE Active = true", &payload)
	if err != nil {
		return nil, err
	}
	return payload.QueryResponse.Account, nil
}

// GetAccountByID fetches the full detail of a single account. Used during
// journal replay when a line references an account that was not in the bulk
// listing.
func (c *Client) GetAccountByID(ctx context.Context, accessToken, realmID, accountID string) (*Account, error) {
	url := fmt.Sprintf("%s/v3/company/%s/account/%s", c.baseURL, realmID, accountID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quickbooks account request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("quickbooks account request returned %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		Account Account `json:"Account"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode quickbooks account: %w", err)
	}
	return &payload.Account, nil
}

// GetTransactions fetches all journal entries of the company.
func (c *Client) GetTransactions(ctx context.Context, accessToken, realmID string) ([]JournalEntry, error) {
	var payload struct {
		QueryResponse struct {
			JournalEntry []JournalEntry `json:"JournalEntry"`
		} `json:"QueryResponse"`
	}
	err := c.query(ctx, accessToken, realmID, "SELECT * FROM JournalEntry", &payload)
	if err != nil {
		return nil, err
	}
	return payload.QueryResponse.JournalEntry, nil
}

// query runs a QuickBooks SQL-ish query and decodes the response into out.
func (c *Client) query(ctx context.Context, accessToken, realmID, statement string, out any) error {
	url := fmt.Sprintf("%s/v3/company/%s/query", c.baseURL, realmID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(statement))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/text")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("quickbooks query failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("quickbooks query returned %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode quickbooks response: %w", err)
	}
	return nil
}
