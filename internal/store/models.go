package store

import (
	"time"

	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier"
	"github.com/google/uuid"
)

// VendorOrder is the persisted vendor-order record. The shipping layer is
// its only writer once shipment creation has been attempted.
type VendorOrder struct {
	ID               string           `gorm:"primaryKey"`
	OrderNumber      string           `gorm:"index"`
	ShippingProvider carrier.Provider `gorm:"size:16"`
	ShippingCode     string           `gorm:"index"` // empty until a shipment is created
	Status           carrier.Status   `gorm:"size:16;index"`

	// Milestone timestamps, each set at-most-once when the corresponding
	// status is first reached.
	ProcessingAt *time.Time
	ShippedAt    *time.Time
	DeliveredAt  *time.Time
	CancelledAt  *time.Time

	Notes OrderNotes `gorm:"type:jsonb;serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderNotes is the structured audit trail of a vendor order: an
// append-only sequence of tagged events plus the latest tracking snapshot.
// The snapshot is the only part replaced on each poll; events are never
// rewritten.
type OrderNotes struct {
	Events       []AuditEvent      `json:"events,omitempty"`
	TrackingData *TrackingSnapshot `json:"trackingData,omitempty"`
}

// AuditKind tags an audit event.
type AuditKind string

const (
	AuditCreated        AuditKind = "created"
	AuditCreateFailed   AuditKind = "create_failed"
	AuditTrackingUpdate AuditKind = "tracking_update"
	AuditCancelled      AuditKind = "cancelled"
	AuditCancelFailed   AuditKind = "cancel_failed"
)

// AuditEvent is one entry of the audit trail.
type AuditEvent struct {
	ID      string                 `json:"id"`
	Kind    AuditKind              `json:"kind"`
	At      time.Time              `json:"at"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Append adds a new tagged event to the trail, preserving all prior events.
func (n *OrderNotes) Append(kind AuditKind, message string, details map[string]interface{}) {
	n.Events = append(n.Events, AuditEvent{
		ID:      uuid.New().String(),
		Kind:    kind,
		At:      time.Now().UTC(),
		Message: message,
		Details: details,
	})
}

// LastEvent returns the most recent audit event, or nil if there is none.
func (n *OrderNotes) LastEvent() *AuditEvent {
	if len(n.Events) == 0 {
		return nil
	}
	return &n.Events[len(n.Events)-1]
}

// TrackingSnapshot holds the latest carrier tracking poll. It is replaced
// wholesale on each poll; the rest of the notes structure is untouched.
type TrackingSnapshot struct {
	CarrierStatus string                  `json:"carrierStatus"`
	Status        carrier.Status          `json:"status"`
	Location      string                  `json:"location,omitempty"`
	LastUpdate    time.Time               `json:"lastUpdate"`
	PolledAt      time.Time               `json:"polledAt"`
	Events        []TrackingHistoryRecord `json:"events,omitempty"`
}

// TrackingHistoryRecord is one reshaped carrier log entry, kept in the
// order the carrier reported it.
type TrackingHistoryRecord struct {
	Status   string    `json:"status"`
	Date     time.Time `json:"date"`
	Location string    `json:"location,omitempty"`
}

// ShopeeStatus is the marketplace-native order status vocabulary.
type ShopeeStatus string

const (
	ShopeeUnpaid           ShopeeStatus = "unpaid"
	ShopeeToShip           ShopeeStatus = "to_ship"
	ShopeeShipped          ShopeeStatus = "shipped"
	ShopeeToConfirmReceive ShopeeStatus = "to_confirm_receive"
	ShopeeCompleted        ShopeeStatus = "completed"
	ShopeeCancelled        ShopeeStatus = "cancelled"
	ShopeeToReturn         ShopeeStatus = "to_return"
	ShopeeInCancel         ShopeeStatus = "in_cancel"
)

// ShopeeOrder is the persisted marketplace order record the fulfillment
// queue is projected from.
type ShopeeOrder struct {
	ID                string       `gorm:"primaryKey"`
	OrderNumber       string       `gorm:"index"`
	BusinessAccountID string       `gorm:"index"`
	OrderStatus       ShopeeStatus `gorm:"size:24;index"`
	TrackingNumber    string
	ShippingCarrier   string
	TotalAmount       int64 // VND
	Items             OrderItems   `gorm:"type:jsonb;serializer:json"`
	CustomerInfo      CustomerInfo `gorm:"type:jsonb;serializer:json"`
	EstimatedDelivery *time.Time
	DeliveredAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// OrderItems is the ordered list of line items of a marketplace order.
type OrderItems []OrderItem

// OrderItem is a single marketplace order line.
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	SKU      string `json:"sku,omitempty"`
}

// CustomerInfo holds the buyer contact details of a marketplace order.
type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}
