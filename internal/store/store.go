// Package store defines the persistence contracts for vendor and
// marketplace orders, with a GORM implementation for Postgres and an
// in-memory implementation for tests and mock wiring.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// VendorOrderUpdate is a partial update of a vendor order. Nil fields are
// left untouched; UpdatedAt is always bumped.
type VendorOrderUpdate struct {
	ShippingProvider *carrier.Provider
	ShippingCode     *string
	Status           *carrier.Status
	ProcessingAt     *time.Time
	ShippedAt        *time.Time
	DeliveredAt      *time.Time
	CancelledAt      *time.Time
	Notes            *OrderNotes
}

// VendorOrderStore is the persistence contract the shipping layer consumes.
type VendorOrderStore interface {
	// GetVendorOrder returns the vendor order with the given id, or
	// ErrNotFound.
	GetVendorOrder(ctx context.Context, id string) (*VendorOrder, error)

	// UpdateVendorOrder applies a partial update and returns the updated
	// record, or ErrNotFound.
	UpdateVendorOrder(ctx context.Context, id string, upd VendorOrderUpdate) (*VendorOrder, error)
}

// ShopeeOrderFilter narrows a marketplace order listing.
type ShopeeOrderFilter struct {
	BusinessAccountID string
	Statuses          []ShopeeStatus
	CreatedAfter      *time.Time
}

// ShopeeOrderUpdate is a partial update of a marketplace order. Nil fields
// are left untouched; UpdatedAt is always bumped.
type ShopeeOrderUpdate struct {
	OrderStatus       *ShopeeStatus
	TrackingNumber    *string
	ShippingCarrier   *string
	EstimatedDelivery *time.Time
	DeliveredAt       *time.Time
}

// ShopeeOrderStore is the persistence contract the fulfillment queue and
// the marketplace ingestion consume.
type ShopeeOrderStore interface {
	// CreateShopeeOrder persists a newly ingested marketplace order.
	CreateShopeeOrder(ctx context.Context, order *ShopeeOrder) error

	// GetShopeeOrder returns the order with the given id, or ErrNotFound.
	GetShopeeOrder(ctx context.Context, id string) (*ShopeeOrder, error)

	// ListShopeeOrders returns all orders matching the filter.
	ListShopeeOrders(ctx context.Context, filter ShopeeOrderFilter) ([]ShopeeOrder, error)

	// UpdateShopeeOrder applies a partial update and returns the updated
	// record, or ErrNotFound.
	UpdateShopeeOrder(ctx context.Context, id string, upd ShopeeOrderUpdate) (*ShopeeOrder, error)
}
