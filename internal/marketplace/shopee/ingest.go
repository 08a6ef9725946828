// Package shopee ingests marketplace order payloads into the local order
// store. Payloads are validated at the boundary so malformed upstream data
// fails fast with a typed error instead of leaking into persisted fields.
package shopee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chihoangvnn/sunfoods-sub019/internal/store"
	"github.com/go-playground/validator/v10"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// ErrNilStore indicates the ingestor was constructed without a store.
var ErrNilStore = errors.New("shopee: order store is nil")

// ValidationError wraps a payload that failed schema validation.
type ValidationError struct {
	Cause error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid shopee payload: %v", e.Cause)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// OrderPayload is the upstream Shopee order shape, as pushed by the
// marketplace API. Field names follow the Shopee OpenAPI vocabulary.
type OrderPayload struct {
	OrderSN           string           `json:"ordersn" validate:"required"`
	BusinessAccountID string           `json:"business_account_id" validate:"required"`
	OrderStatus       string           `json:"order_status" validate:"required"`
	TotalAmount       int64            `json:"total_amount" validate:"gte=0"`
	TrackingNumber    string           `json:"tracking_number"`
	ShippingCarrier   string           `json:"shipping_carrier"`
	CreateTime        int64            `json:"create_time" validate:"required,gt=0"`
	RecipientAddress  RecipientAddress `json:"recipient_address" validate:"required"`
	Items             []ItemPayload    `json:"item_list" validate:"required,min=1,dive"`
}

// RecipientAddress is the buyer contact block of an order payload.
type RecipientAddress struct {
	Name        string `json:"name" validate:"required"`
	Phone       string `json:"phone"`
	FullAddress string `json:"full_address"`
}

// ItemPayload is one order line of an order payload.
type ItemPayload struct {
	ItemName string `json:"item_name" validate:"required"`
	ItemSKU  string `json:"item_sku"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// orderStatusMap translates Shopee OpenAPI order statuses to the local
// vocabulary.
var orderStatusMap = map[string]store.ShopeeStatus{
	"UNPAID":             store.ShopeeUnpaid,
	"READY_TO_SHIP":      store.ShopeeToShip,
	"PROCESSED":          store.ShopeeToShip,
	"SHIPPED":            store.ShopeeShipped,
	"TO_CONFIRM_RECEIVE": store.ShopeeToConfirmReceive,
	"COMPLETED":          store.ShopeeCompleted,
	"CANCELLED":          store.ShopeeCancelled,
	"TO_RETURN":          store.ShopeeToReturn,
	"IN_CANCEL":          store.ShopeeInCancel,
}

// Ingestor converts validated Shopee payloads into stored orders.
type Ingestor struct {
	store    store.ShopeeOrderStore
	validate *validator.Validate
	logger   *otelzap.Logger
}

// NewIngestor creates a Shopee order ingestor.
func NewIngestor(st store.ShopeeOrderStore, logger *otelzap.Logger) (*Ingestor, error) {
	if st == nil {
		return nil, ErrNilStore
	}
	return &Ingestor{
		store:    st,
		validate: validator.New(),
		logger:   logger,
	}, nil
}

// IngestJSON decodes, validates, and persists a raw order payload.
func (i *Ingestor) IngestJSON(ctx context.Context, raw []byte) (*store.ShopeeOrder, error) {
	var payload OrderPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &ValidationError{Cause: err}
	}
	return i.Ingest(ctx, &payload)
}

// Ingest validates and persists an order payload.
func (i *Ingestor) Ingest(ctx context.Context, payload *OrderPayload) (*store.ShopeeOrder, error) {
	if err := i.validate.Struct(payload); err != nil {
		return nil, &ValidationError{Cause: err}
	}

	status, ok := orderStatusMap[payload.OrderStatus]
	if !ok {
		return nil, &ValidationError{Cause: fmt.Errorf("unknown order_status %q", payload.OrderStatus)}
	}

	items := make(store.OrderItems, len(payload.Items))
	for idx, item := range payload.Items {
		items[idx] = store.OrderItem{
			Name:     item.ItemName,
			SKU:      item.ItemSKU,
			Quantity: item.Quantity,
		}
	}

	order := &store.ShopeeOrder{
		ID:                payload.OrderSN,
		OrderNumber:       payload.OrderSN,
		BusinessAccountID: payload.BusinessAccountID,
		OrderStatus:       status,
		TrackingNumber:    payload.TrackingNumber,
		ShippingCarrier:   payload.ShippingCarrier,
		TotalAmount:       payload.TotalAmount,
		Items:             items,
		CustomerInfo: store.CustomerInfo{
			Name:    payload.RecipientAddress.Name,
			Phone:   payload.RecipientAddress.Phone,
			Address: payload.RecipientAddress.FullAddress,
		},
		CreatedAt: time.Unix(payload.CreateTime, 0).UTC(),
	}

	if err := i.store.CreateShopeeOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("persisting shopee order: %w", err)
	}

	i.logger.Info("Shopee order ingested",
		zap.String("order_sn", payload.OrderSN),
		zap.String("status", string(status)),
	)
	return order, nil
}
