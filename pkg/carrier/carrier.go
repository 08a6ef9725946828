// Package carrier provides an abstraction layer for Vietnamese shipping carriers.
package carrier

import (
	"context"
)

// Carrier defines the interface that all shipping carrier integrations must implement.
type Carrier interface {
	// Name returns the carrier identifier (e.g., "ghn", "ghtk").
	Name() Provider

	// CreateOrder registers a new shipment with the carrier and returns
	// the carrier-assigned tracking code and the computed fee.
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error)

	// GetOrderStatus fetches the current shipment status and the carrier's
	// tracking log for an existing tracking code.
	GetOrderStatus(ctx context.Context, trackingCode string) (*TrackingResponse, error)

	// CancelOrder attempts to cancel one or more shipments.
	CancelOrder(ctx context.Context, req *CancelOrderRequest) (*CancelOrderResponse, error)

	// CalculateFee returns a shipping fee quote. It has no side effects.
	CalculateFee(ctx context.Context, req *FeeRequest) (*FeeResponse, error)
}
