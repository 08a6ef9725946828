package ghtk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPAPIClient is the production implementation of APIClient using HTTP/JSON.
type HTTPAPIClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// HTTPAPIClientConfig holds configuration for the HTTP client.
type HTTPAPIClientConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// NewHTTPAPIClient creates a new HTTP-based API client for production use.
func NewHTTPAPIClient(cfg HTTPAPIClientConfig) *HTTPAPIClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &HTTPAPIClient{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *HTTPAPIClient) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling GHTK API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading GHTK response: %w", err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding GHTK response (http %d): %w", resp.StatusCode, err)
	}
	return nil
}

// createOrderResponse is the full GHTK create response envelope.
type createOrderResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Order   *OrderData `json:"order"`
}

// statusResponse is the full GHTK status response envelope.
type statusResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Order   *StatusData `json:"order"`
}

// cancelResponse is the full GHTK cancel response envelope.
type cancelResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// feeResponse is the full GHTK fee response envelope.
type feeResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Fee     *FeeData `json:"fee"`
}

// CreateOrder registers a new shipment with GHTK.
func (c *HTTPAPIClient) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderData, error) {
	var resp createOrderResponse
	if err := c.do(ctx, http.MethodPost, "/services/shipment/order", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Order == nil {
		return nil, &APIError{Message: resp.Message}
	}
	return resp.Order, nil
}

// GetOrderStatus retrieves the current status of a shipment by label.
func (c *HTTPAPIClient) GetOrderStatus(ctx context.Context, label string) (*StatusData, error) {
	var resp statusResponse
	if err := c.do(ctx, http.MethodGet, "/services/shipment/v2/"+label, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Order == nil {
		return nil, &APIError{Message: resp.Message}
	}
	return resp.Order, nil
}

// CancelOrder cancels an existing shipment by label.
func (c *HTTPAPIClient) CancelOrder(ctx context.Context, label string) error {
	var resp cancelResponse
	if err := c.do(ctx, http.MethodPost, "/services/shipment/cancel/"+label, nil, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &APIError{Message: resp.Message}
	}
	return nil
}

// CalculateFee fetches a shipping fee quote.
func (c *HTTPAPIClient) CalculateFee(ctx context.Context, req *FeeRequest) (*FeeData, error) {
	var resp feeResponse
	if err := c.do(ctx, http.MethodPost, "/services/shipment/fee", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Fee == nil {
		return nil, &APIError{Message: resp.Message}
	}
	return resp.Fee, nil
}
