// Package mock provides a mock carrier implementation for testing.
package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier"
)

// Client is a mock carrier for testing. The On* hooks override individual
// operations; unset hooks fall back to canned happy-path responses.
type Client struct {
	name carrier.Provider

	OnCreateOrder    func(ctx context.Context, req *carrier.CreateOrderRequest) (*carrier.CreateOrderResponse, error)
	OnGetOrderStatus func(ctx context.Context, trackingCode string) (*carrier.TrackingResponse, error)
	OnCancelOrder    func(ctx context.Context, req *carrier.CancelOrderRequest) (*carrier.CancelOrderResponse, error)
	OnCalculateFee   func(ctx context.Context, req *carrier.FeeRequest) (*carrier.FeeResponse, error)
}

// New creates a new mock carrier.
func New(name carrier.Provider) *Client {
	return &Client{name: name}
}

// Name returns the carrier identifier.
func (c *Client) Name() carrier.Provider {
	return c.name
}

// CreateOrder returns a mock shipment.
func (c *Client) CreateOrder(ctx context.Context, req *carrier.CreateOrderRequest) (*carrier.CreateOrderResponse, error) {
	if c.OnCreateOrder != nil {
		return c.OnCreateOrder(ctx, req)
	}

	eta := time.Now().Add(72 * time.Hour)
	return &carrier.CreateOrderResponse{
		OrderCode: fmt.Sprintf("%s-order-%d", c.name, time.Now().UnixNano()),
		TotalFee:  30000,
		Breakdown: carrier.FeeBreakdown{
			ServiceFee:   25000,
			InsuranceFee: 5000,
		},
		ExpectedDelivery: &eta,
	}, nil
}

// GetOrderStatus returns a mock tracking response.
func (c *Client) GetOrderStatus(ctx context.Context, trackingCode string) (*carrier.TrackingResponse, error) {
	if c.OnGetOrderStatus != nil {
		return c.OnGetOrderStatus(ctx, trackingCode)
	}

	now := time.Now()
	return &carrier.TrackingResponse{
		Status:          carrier.StatusShipped,
		CarrierStatus:   "delivering",
		CurrentLocation: "Quận 1, TP. Hồ Chí Minh",
		LastUpdate:      now,
		Events: []carrier.TrackingEvent{
			{Status: carrier.StatusProcessing, CarrierStatus: "picked", Timestamp: now.Add(-24 * time.Hour), Location: "Kho Thủ Đức"},
			{Status: carrier.StatusShipped, CarrierStatus: "delivering", Timestamp: now, Location: "Quận 1, TP. Hồ Chí Minh"},
		},
	}, nil
}

// CancelOrder cancels mock shipments.
func (c *Client) CancelOrder(ctx context.Context, req *carrier.CancelOrderRequest) (*carrier.CancelOrderResponse, error) {
	if c.OnCancelOrder != nil {
		return c.OnCancelOrder(ctx, req)
	}

	results := make([]carrier.CancelResult, len(req.OrderCodes))
	for i, code := range req.OrderCodes {
		results[i] = carrier.CancelResult{OrderCode: code, Cancelled: true}
	}
	return &carrier.CancelOrderResponse{Results: results}, nil
}

// CalculateFee returns a mock fee quote.
func (c *Client) CalculateFee(ctx context.Context, req *carrier.FeeRequest) (*carrier.FeeResponse, error) {
	if c.OnCalculateFee != nil {
		return c.OnCalculateFee(ctx, req)
	}

	return &carrier.FeeResponse{
		Carrier:  c.name,
		TotalFee: 30000,
		Breakdown: carrier.FeeBreakdown{
			ServiceFee:   25000,
			InsuranceFee: 5000,
		},
	}, nil
}
