package shipping

import (
	"time"

	"github.com/chihoangvnn/sunfoods-sub019/internal/store"
	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier"
)

// StatusUnknown is reported by TrackOrder when the carrier could not be
// reached; the persisted record keeps its last known status.
const StatusUnknown = carrier.Status("unknown")

// ShippingRequest is the normalized input for creating a shipment for a
// vendor order. The sender address is supplied by the caller and is not
// persisted by this layer.
type ShippingRequest struct {
	VendorOrderID string
	OrderNumber   string
	Receiver      carrier.Address
	Parcel        carrier.Parcel
	Items         []carrier.Item
	Options       carrier.ServiceOptions
}

// CreateShippingResult is the outcome of a shipment creation attempt.
// Expected failures are reported through Success/Error, never as a
// returned error.
type CreateShippingResult struct {
	Success          bool
	OrderCode        string
	TrackingNumber   string
	TotalFee         int64
	ExpectedDelivery *time.Time
	Error            string
}

// TrackingResult is the outcome of a tracking poll.
type TrackingResult struct {
	Success         bool
	Status          carrier.Status
	CurrentLocation string
	LastUpdate      time.Time
	// History is the carrier's log re-shaped into {status, date, location}
	// tuples, in the order the carrier reported them.
	History []store.TrackingHistoryRecord
	Error   string
}

// CancelShippingResult is the outcome of a cancellation attempt.
type CancelShippingResult struct {
	Success bool
	Error   string
}

// FeeResult is the outcome of a fee quote. Quotes have no persistence
// side effects.
type FeeResult struct {
	Success    bool
	Fee        int64
	FeeDetails *carrier.FeeBreakdown
	Error      string
}
