package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormStore implements VendorOrderStore and ShopeeOrderStore on Postgres.
type GormStore struct {
	db *gorm.DB
}

// Open connects to Postgres and migrates the order tables.
func Open(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&VendorOrder{}, &ShopeeOrder{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

// NewGormStore wraps an existing GORM handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// GetVendorOrder returns the vendor order with the given id.
func (s *GormStore) GetVendorOrder(ctx context.Context, id string) (*VendorOrder, error) {
	var order VendorOrder
	if err := s.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// UpdateVendorOrder applies a partial update to a vendor order.
func (s *GormStore) UpdateVendorOrder(ctx context.Context, id string, upd VendorOrderUpdate) (*VendorOrder, error) {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if upd.ShippingProvider != nil {
		updates["shipping_provider"] = *upd.ShippingProvider
	}
	if upd.ShippingCode != nil {
		updates["shipping_code"] = *upd.ShippingCode
	}
	if upd.Status != nil {
		updates["status"] = *upd.Status
	}
	if upd.ProcessingAt != nil {
		updates["processing_at"] = *upd.ProcessingAt
	}
	if upd.ShippedAt != nil {
		updates["shipped_at"] = *upd.ShippedAt
	}
	if upd.DeliveredAt != nil {
		updates["delivered_at"] = *upd.DeliveredAt
	}
	if upd.CancelledAt != nil {
		updates["cancelled_at"] = *upd.CancelledAt
	}
	if upd.Notes != nil {
		updates["notes"] = *upd.Notes
	}

	res := s.db.WithContext(ctx).Model(&VendorOrder{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetVendorOrder(ctx, id)
}

// CreateShopeeOrder persists a newly ingested marketplace order.
func (s *GormStore) CreateShopeeOrder(ctx context.Context, order *ShopeeOrder) error {
	return s.db.WithContext(ctx).Create(order).Error
}

// GetShopeeOrder returns the marketplace order with the given id.
func (s *GormStore) GetShopeeOrder(ctx context.Context, id string) (*ShopeeOrder, error) {
	var order ShopeeOrder
	if err := s.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListShopeeOrders returns all marketplace orders matching the filter.
func (s *GormStore) ListShopeeOrders(ctx context.Context, filter ShopeeOrderFilter) ([]ShopeeOrder, error) {
	query := s.db.WithContext(ctx).Model(&ShopeeOrder{})
	if filter.BusinessAccountID != "" {
		query = query.Where("business_account_id = ?", filter.BusinessAccountID)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("order_status IN ?", filter.Statuses)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}

	var orders []ShopeeOrder
	if err := query.Order("created_at ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateShopeeOrder applies a partial update to a marketplace order.
func (s *GormStore) UpdateShopeeOrder(ctx context.Context, id string, upd ShopeeOrderUpdate) (*ShopeeOrder, error) {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if upd.OrderStatus != nil {
		updates["order_status"] = *upd.OrderStatus
	}
	if upd.TrackingNumber != nil {
		updates["tracking_number"] = *upd.TrackingNumber
	}
	if upd.ShippingCarrier != nil {
		updates["shipping_carrier"] = *upd.ShippingCarrier
	}
	if upd.EstimatedDelivery != nil {
		updates["estimated_delivery"] = *upd.EstimatedDelivery
	}
	if upd.DeliveredAt != nil {
		updates["delivered_at"] = *upd.DeliveredAt
	}

	res := s.db.WithContext(ctx).Model(&ShopeeOrder{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetShopeeOrder(ctx, id)
}
