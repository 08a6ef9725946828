package carrier

import (
	"time"
)

// Provider identifies a shipping carrier.
type Provider string

const (
	ProviderGHN   Provider = "ghn"
	ProviderGHTK  Provider = "ghtk"
	ProviderOther Provider = "other"
)

// Status represents the normalized internal shipment status. It is the
// single vocabulary all carrier-specific statuses are reconciled into.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusReturned   Status = "returned"
)

// Terminal reports whether the status is a terminal state. Terminal states
// are sticky: once a shipment reaches one, a stale tracking poll must not
// regress it.
func (s Status) Terminal() bool {
	switch s {
	case StatusDelivered, StatusCancelled, StatusReturned:
		return true
	}
	return false
}

// ServiceLevel represents the requested delivery service tier.
type ServiceLevel string

const (
	ServiceStandard ServiceLevel = "standard"
	ServiceExpress  ServiceLevel = "express"
	ServiceEconomy  ServiceLevel = "economy"
)

// Address represents a Vietnamese shipping address.
type Address struct {
	Name     string
	Phone    string
	Street   string
	Ward     string
	District string
	Province string
}

// Parcel represents the physical package being shipped.
type Parcel struct {
	WeightGrams   int
	LengthCM      int
	WidthCM       int
	HeightCM      int
	DeclaredValue int64 // VND, for insurance
}

// Item represents a single order line inside a parcel.
type Item struct {
	Name     string
	Quantity int
	SKU      string
}

// ServiceOptions represents carrier service preferences for a shipment.
type ServiceOptions struct {
	Level       ServiceLevel
	CODAmount   int64 // VND collected on delivery, 0 if prepaid
	Note        string
	RequireNote string // e.g. "CHOXEMHANGKHONGTHU" (view only, no trial)
}

// TrackingEvent represents one entry of a carrier's tracking log,
// already reconciled into the internal status vocabulary.
type TrackingEvent struct {
	Status        Status
	CarrierStatus string
	Timestamp     time.Time
	Location      string
}

// FeeBreakdown itemizes a shipping fee quote. All amounts are VND.
type FeeBreakdown struct {
	ServiceFee   int64
	InsuranceFee int64
	CODFee       int64
}

// ============================================================================
// Request/Response Types
// ============================================================================

// CreateOrderRequest is the normalized request for creating a shipment.
type CreateOrderRequest struct {
	OrderNumber string // internal order reference, sent as client code
	Sender      Address
	Receiver    Address
	Parcel      Parcel
	Items       []Item
	Options     ServiceOptions
}

// CreateOrderResponse is the normalized response from creating a shipment.
type CreateOrderResponse struct {
	OrderCode        string // carrier-assigned tracking code
	TotalFee         int64  // VND
	Breakdown        FeeBreakdown
	ExpectedDelivery *time.Time
}

// TrackingResponse is the normalized response from a tracking query.
type TrackingResponse struct {
	Status          Status
	CarrierStatus   string
	CurrentLocation string
	LastUpdate      time.Time
	// Events are returned in the order the carrier reported them,
	// oldest first. No independent re-sorting is applied.
	Events []TrackingEvent
}

// CancelOrderRequest is the request for cancelling shipments.
type CancelOrderRequest struct {
	OrderCodes []string
	Reason     string
}

// CancelResult is the per-shipment outcome of a cancellation attempt.
type CancelResult struct {
	OrderCode string
	Cancelled bool
	Message   string
}

// CancelOrderResponse is the response from a cancellation attempt.
type CancelOrderResponse struct {
	Results []CancelResult
}

// AllCancelled reports whether every requested shipment was cancelled.
func (r *CancelOrderResponse) AllCancelled() bool {
	if len(r.Results) == 0 {
		return false
	}
	for _, res := range r.Results {
		if !res.Cancelled {
			return false
		}
	}
	return true
}

// FeeRequest is the request for a shipping fee quote.
type FeeRequest struct {
	From    Address
	To      Address
	Parcel  Parcel
	Options ServiceOptions
}

// FeeResponse is the response from a fee quote.
type FeeResponse struct {
	Carrier   Provider
	TotalFee  int64 // VND
	Breakdown FeeBreakdown
}
