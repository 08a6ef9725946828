package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory implementation of VendorOrderStore and
// ShopeeOrderStore, used by tests and mock-mode wiring.
type MemoryStore struct {
	mu           sync.RWMutex
	vendorOrders map[string]VendorOrder
	shopeeOrders map[string]ShopeeOrder
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		vendorOrders: make(map[string]VendorOrder),
		shopeeOrders: make(map[string]ShopeeOrder),
	}
}

// PutVendorOrder seeds or replaces a vendor order.
func (s *MemoryStore) PutVendorOrder(order VendorOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vendorOrders[order.ID] = order
}

// GetVendorOrder returns a copy of the vendor order with the given id.
func (s *MemoryStore) GetVendorOrder(ctx context.Context, id string) (*VendorOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.vendorOrders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &order, nil
}

// UpdateVendorOrder applies a partial update to a vendor order.
func (s *MemoryStore) UpdateVendorOrder(ctx context.Context, id string, upd VendorOrderUpdate) (*VendorOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.vendorOrders[id]
	if !ok {
		return nil, ErrNotFound
	}

	if upd.ShippingProvider != nil {
		order.ShippingProvider = *upd.ShippingProvider
	}
	if upd.ShippingCode != nil {
		order.ShippingCode = *upd.ShippingCode
	}
	if upd.Status != nil {
		order.Status = *upd.Status
	}
	if upd.ProcessingAt != nil {
		order.ProcessingAt = upd.ProcessingAt
	}
	if upd.ShippedAt != nil {
		order.ShippedAt = upd.ShippedAt
	}
	if upd.DeliveredAt != nil {
		order.DeliveredAt = upd.DeliveredAt
	}
	if upd.CancelledAt != nil {
		order.CancelledAt = upd.CancelledAt
	}
	if upd.Notes != nil {
		order.Notes = *upd.Notes
	}
	order.UpdatedAt = time.Now()

	s.vendorOrders[id] = order
	return &order, nil
}

// CreateShopeeOrder persists a marketplace order.
func (s *MemoryStore) CreateShopeeOrder(ctx context.Context, order *ShopeeOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	s.shopeeOrders[order.ID] = *order
	return nil
}

// PutShopeeOrder seeds or replaces a marketplace order.
func (s *MemoryStore) PutShopeeOrder(order ShopeeOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shopeeOrders[order.ID] = order
}

// GetShopeeOrder returns a copy of the marketplace order with the given id.
func (s *MemoryStore) GetShopeeOrder(ctx context.Context, id string) (*ShopeeOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.shopeeOrders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &order, nil
}

// ListShopeeOrders returns all marketplace orders matching the filter,
// oldest first.
func (s *MemoryStore) ListShopeeOrders(ctx context.Context, filter ShopeeOrderFilter) ([]ShopeeOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var orders []ShopeeOrder
	for _, order := range s.shopeeOrders {
		if filter.BusinessAccountID != "" && order.BusinessAccountID != filter.BusinessAccountID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, order.OrderStatus) {
			continue
		}
		if filter.CreatedAfter != nil && order.CreatedAt.Before(*filter.CreatedAfter) {
			continue
		}
		orders = append(orders, order)
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
	return orders, nil
}

// UpdateShopeeOrder applies a partial update to a marketplace order.
func (s *MemoryStore) UpdateShopeeOrder(ctx context.Context, id string, upd ShopeeOrderUpdate) (*ShopeeOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.shopeeOrders[id]
	if !ok {
		return nil, ErrNotFound
	}

	if upd.OrderStatus != nil {
		order.OrderStatus = *upd.OrderStatus
	}
	if upd.TrackingNumber != nil {
		order.TrackingNumber = *upd.TrackingNumber
	}
	if upd.ShippingCarrier != nil {
		order.ShippingCarrier = *upd.ShippingCarrier
	}
	if upd.EstimatedDelivery != nil {
		order.EstimatedDelivery = upd.EstimatedDelivery
	}
	if upd.DeliveredAt != nil {
		order.DeliveredAt = upd.DeliveredAt
	}
	order.UpdatedAt = time.Now()

	s.shopeeOrders[id] = order
	return &order, nil
}

func containsStatus(statuses []ShopeeStatus, status ShopeeStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
