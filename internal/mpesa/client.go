package mpesa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// STKPushRequest is the Daraja process-request payload.
type STKPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

// STKPushResponse is the subset of the Daraja response surfaced to callers.
type STKPushResponse struct {
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseDescription string `json:"ResponseDescription"`
}

// Provider abstracts the Daraja HTTP API for tests.
type Provider interface {
	AccessToken(ctx context.Context) (string, error)
	STKPush(ctx context.Context, token string, req STKPushRequest) (STKPushResponse, error)
}

// DarajaClient talks to the Safaricom Daraja API.
type DarajaClient struct {
	baseURL        string
	consumerKey    string
	consumerSecret string
	client         *http.Client
}

// NewDarajaClient builds a Daraja client with OAuth client credentials.
func NewDarajaClient(baseURL, consumerKey, consumerSecret string) *DarajaClient {
	return &DarajaClient{
		baseURL:        baseURL,
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		client:         &http.Client{Timeout: 30 * time.Second},
	}
}

// AccessToken obtains a bearer token from the client-credentials endpoint.
func (d *DarajaClient) AccessToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		d.baseURL+"/oauth/v1/generate?grant_type=client_credentials", nil)
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(d.consumerKey, d.consumerSecret)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("token request: status %d: %s", resp.StatusCode, string(body))
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}
	return out.AccessToken, nil
}

// STKPush submits the push-payment request with the given bearer token.
func (d *DarajaClient) STKPush(ctx context.Context, token string, pushReq STKPushRequest) (STKPushResponse, error) {
	payload, err := json.Marshal(pushReq)
	if err != nil {
		return STKPushResponse{}, fmt.Errorf("encode stk request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		d.baseURL+"/mpesa/stkpush/v1/processrequest", bytes.NewReader(payload))
	if err != nil {
		return STKPushResponse{}, fmt.Errorf("build stk request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return STKPushResponse{}, fmt.Errorf("stk request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return STKPushResponse{}, fmt.Errorf("stk request: status %d: %s", resp.StatusCode, string(body))
	}

	var out STKPushResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return STKPushResponse{}, fmt.Errorf("decode stk response: %w", err)
	}
	return out, nil
}
