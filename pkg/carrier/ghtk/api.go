package ghtk

import (
	"context"
	"fmt"
)

// APIClient defines the interface for GHTK API operations.
// This abstraction allows for mock implementations during testing
// and real implementations in production.
type APIClient interface {
	// CreateOrder registers a new shipment with GHTK
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderData, error)

	// GetOrderStatus retrieves the current status of a shipment by label
	GetOrderStatus(ctx context.Context, label string) (*StatusData, error)

	// CancelOrder cancels an existing shipment by label
	CancelOrder(ctx context.Context, label string) error

	// CalculateFee fetches a shipping fee quote
	CalculateFee(ctx context.Context, req *FeeRequest) (*FeeData, error)
}

// ============================================================================
// API Request/Response Types (match GHTK REST API structure)
// ============================================================================

// CreateOrderRequest represents a GHTK shipment/order request.
type CreateOrderRequest struct {
	Products []Product `json:"products"`
	Order    OrderInfo `json:"order"`
}

// Product represents an order line in a GHTK request. Weight is in kg.
type Product struct {
	Name        string  `json:"name"`
	Weight      float64 `json:"weight"`
	Quantity    int     `json:"quantity"`
	ProductCode string  `json:"product_code,omitempty"`
}

// OrderInfo contains pickup and delivery details for a GHTK order.
type OrderInfo struct {
	ID           string `json:"id"`
	PickName     string `json:"pick_name"`
	PickAddress  string `json:"pick_address"`
	PickProvince string `json:"pick_province"`
	PickDistrict string `json:"pick_district"`
	PickWard     string `json:"pick_ward,omitempty"`
	PickTel      string `json:"pick_tel"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Province     string `json:"province"`
	District     string `json:"district"`
	Ward         string `json:"ward,omitempty"`
	Hamlet       string `json:"hamlet"`
	Tel          string `json:"tel"`
	Note         string `json:"note,omitempty"`
	IsFreeship   int    `json:"is_freeship"`
	PickMoney    int64  `json:"pick_money"`
	Value        int64  `json:"value"`
	Transport    string `json:"transport,omitempty"`
}

// OrderData is the order payload of a successful create response.
type OrderData struct {
	Label                string `json:"label"`
	PartnerID            string `json:"partner_id,omitempty"`
	Fee                  int64  `json:"fee"`
	InsuranceFee         int64  `json:"insurance_fee"`
	EstimatedPickTime    string `json:"estimated_pick_time,omitempty"`
	EstimatedDeliverTime string `json:"estimated_deliver_time,omitempty"`
}

// StatusData is the order payload of a shipment/v2 status response.
type StatusData struct {
	LabelID     string `json:"label_id"`
	PartnerID   string `json:"partner_id,omitempty"`
	Status      int    `json:"status"`
	StatusText  string `json:"status_text"`
	Created     string `json:"created,omitempty"`
	Modified    string `json:"modified,omitempty"`
	PickDate    string `json:"pick_date,omitempty"`
	DeliverDate string `json:"deliver_date,omitempty"`
	StorageDay  string `json:"storage_day,omitempty"`
}

// FeeRequest represents a GHTK shipment/fee request.
type FeeRequest struct {
	PickProvince  string `json:"pick_province"`
	PickDistrict  string `json:"pick_district"`
	Province      string `json:"province"`
	District      string `json:"district"`
	Ward          string `json:"ward,omitempty"`
	Address       string `json:"address,omitempty"`
	Weight        int    `json:"weight"` // grams
	Value         int64  `json:"value,omitempty"`
	Transport     string `json:"transport,omitempty"`
	DeliverOption string `json:"deliver_option,omitempty"`
}

// FeeData is the fee payload of a fee response.
type FeeData struct {
	Name         string `json:"name"`
	Fee          int64  `json:"fee"`
	InsuranceFee int64  `json:"insurance_fee"`
	IncludeVAT   bool   `json:"include_vat"`
	Delivery     bool   `json:"delivery"`
}

// APIError represents an error response from the GHTK API.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ghtk api error: %s", e.Message)
}
