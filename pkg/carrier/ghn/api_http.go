package ghn

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
	shopID     string
	httpClient *http.Client
}

// HTTPAPIClientConfig holds configuration for the HTTP client.
type HTTPAPIClientConfig struct {
	BaseURL string
	Token   string
	ShopID  string
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
		shopID:  cfg.ShopID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// envelope is the standard GHN response wrapper.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// post sends a JSON request and decodes the data payload of the envelope.
func (c *HTTPAPIClient) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Token", c.token)
	req.Header.Set("ShopId", c.shopID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling GHN API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading GHN response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decoding GHN response (http %d): %w", resp.StatusCode, err)
	}

	if env.Code != http.StatusOK {
		return &APIError{Code: env.Code, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decoding GHN data payload: %w", err)
		}
	}
	return nil
}

// CreateOrder registers a new shipping order with GHN.
func (c *HTTPAPIClient) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderData, error) {
	var data CreateOrderData
	if err := c.post(ctx, "/v2/shipping-order/create", req, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetOrderDetail retrieves the current status and tracking log of an order.
func (c *HTTPAPIClient) GetOrderDetail(ctx context.Context, orderCode string) (*OrderDetailData, error) {
	body := map[string]string{"order_code": orderCode}
	var data OrderDetailData
	if err := c.post(ctx, "/v2/shipping-order/detail", body, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// CancelOrders cancels one or more existing orders.
func (c *HTTPAPIClient) CancelOrders(ctx context.Context, orderCodes []string) ([]CancelResultData, error) {
	body := map[string][]string{"order_codes": orderCodes}
	var data []CancelResultData
	if err := c.post(ctx, "/v2/switch-status/cancel", body, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// CalculateFee fetches a shipping fee quote.
func (c *HTTPAPIClient) CalculateFee(ctx context.Context, req *FeeRequest) (*FeeData, error) {
	var data FeeData
	if err := c.post(ctx, "/v2/shipping-order/fee", req, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
