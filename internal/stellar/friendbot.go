package stellar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Funder requests initial native-balance funding for a new account.
type Funder interface {
	Fund(ctx context.Context, address string) error
}

// FriendbotClient funds accounts through a faucet-style HTTP endpoint.
type FriendbotClient struct {
	baseURL string
	client  *http.Client
}

// NewFriendbotClient builds a friendbot funder for the given base URL.
func NewFriendbotClient(baseURL string) *FriendbotClient {
	return &FriendbotClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Fund asks the faucet to fund the given public key.
func (f *FriendbotClient) Fund(ctx context.Context, address string) error {
	reqURL := fmt.Sprintf("%s?addr=%s", f.baseURL, url.QueryEscape(address))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build funding request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("funding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("funding rejected: status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
