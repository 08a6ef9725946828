package ghn

import (
	"context"
	"fmt"
)

// APIClient defines the interface for GHN API operations.
// This abstraction allows for mock implementations during testing
// and real implementations in production.
type APIClient interface {
	// CreateOrder registers a new shipping order with GHN
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderData, error)

	// GetOrderDetail retrieves the current status and tracking log of an order
	GetOrderDetail(ctx context.Context, orderCode string) (*OrderDetailData, error)

	// CancelOrders cancels one or more existing orders
	CancelOrders(ctx context.Context, orderCodes []string) ([]CancelResultData, error)

	// CalculateFee fetches a shipping fee quote
	CalculateFee(ctx context.Context, req *FeeRequest) (*FeeData, error)
}

// ============================================================================
// API Request/Response Types (match GHN public API v2 structure)
// ============================================================================

// CreateOrderRequest represents a GHN shipping-order/create request.
type CreateOrderRequest struct {
	ClientOrderCode  string      `json:"client_order_code,omitempty"`
	PaymentTypeID    int         `json:"payment_type_id"`
	RequiredNote     string      `json:"required_note"`
	Note             string      `json:"note,omitempty"`
	FromName         string      `json:"from_name"`
	FromPhone        string      `json:"from_phone"`
	FromAddress      string      `json:"from_address"`
	FromWardName     string      `json:"from_ward_name"`
	FromDistrictName string      `json:"from_district_name"`
	FromProvinceName string      `json:"from_province_name"`
	ToName           string      `json:"to_name"`
	ToPhone          string      `json:"to_phone"`
	ToAddress        string      `json:"to_address"`
	ToWardName       string      `json:"to_ward_name"`
	ToDistrictName   string      `json:"to_district_name"`
	ToProvinceName   string      `json:"to_province_name"`
	CODAmount        int64       `json:"cod_amount"`
	InsuranceValue   int64       `json:"insurance_value,omitempty"`
	Weight           int         `json:"weight"`
	Length           int         `json:"length"`
	Width            int         `json:"width"`
	Height           int         `json:"height"`
	ServiceTypeID    int         `json:"service_type_id"`
	Items            []OrderItem `json:"items"`
}

// OrderItem represents an order line in a GHN request.
type OrderItem struct {
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	Quantity int    `json:"quantity"`
}

// CreateOrderData is the data payload of a successful create response.
type CreateOrderData struct {
	OrderCode            string  `json:"order_code"`
	SortCode             string  `json:"sort_code,omitempty"`
	TotalFee             int64   `json:"total_fee"`
	ExpectedDeliveryTime string  `json:"expected_delivery_time,omitempty"`
	Fee                  FeeData `json:"fee"`
}

// FeeRequest represents a GHN shipping-order/fee request.
type FeeRequest struct {
	FromDistrictName string `json:"from_district_name"`
	FromProvinceName string `json:"from_province_name"`
	ToWardName       string `json:"to_ward_name"`
	ToDistrictName   string `json:"to_district_name"`
	ToProvinceName   string `json:"to_province_name"`
	Weight           int    `json:"weight"`
	Length           int    `json:"length"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	InsuranceValue   int64  `json:"insurance_value,omitempty"`
	CODValue         int64  `json:"cod_value,omitempty"`
	ServiceTypeID    int    `json:"service_type_id"`
}

// FeeData is the data payload of a fee response.
type FeeData struct {
	Total        int64 `json:"total"`
	ServiceFee   int64 `json:"service_fee"`
	InsuranceFee int64 `json:"insurance_fee"`
	CODFee       int64 `json:"cod_fee"`
}

// OrderDetailData is the data payload of a shipping-order/detail response.
type OrderDetailData struct {
	OrderCode string     `json:"order_code"`
	Status    string     `json:"status"`
	Leadtime  string     `json:"leadtime,omitempty"`
	Log       []LogEntry `json:"log"`
}

// LogEntry represents a single tracking log entry.
type LogEntry struct {
	Status      string `json:"status"`
	UpdatedDate string `json:"updated_date"`
	Location    string `json:"location,omitempty"`
}

// CancelResultData is the per-order payload of a switch-status/cancel response.
type CancelResultData struct {
	OrderCode string `json:"order_code"`
	Result    bool   `json:"result"`
	Message   string `json:"message,omitempty"`
}

// APIError represents an error envelope from the GHN API.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ghn api error %d: %s", e.Code, e.Message)
}
