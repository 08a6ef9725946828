package fulfillment

import (
	"context"
	"strings"
	"time"

	"github.com/chihoangvnn/sunfoods-sub019/internal/store"
	"github.com/google/uuid"
)

// ShippingLabel is the result of generating a label for a task.
type ShippingLabel struct {
	OrderID        string
	TrackingNumber string
	LabelID        string
	Carrier        string
	ShippingCost   int64 // VND
	GeneratedAt    time.Time
}

// LabelGenerator produces a shipping label for a marketplace order. The
// default implementation synthesizes labels locally; a carrier-backed
// implementation can be swapped in without touching the queue service.
type LabelGenerator interface {
	Generate(ctx context.Context, order *store.ShopeeOrder) (*ShippingLabel, error)
}

// SyntheticLabelGenerator fabricates tracking numbers and estimates the
// shipping cost from the delivery address and order value.
type SyntheticLabelGenerator struct {
	Carrier string
}

// NewSyntheticLabelGenerator creates a generator for the given carrier name.
func NewSyntheticLabelGenerator(carrierName string) *SyntheticLabelGenerator {
	return &SyntheticLabelGenerator{Carrier: carrierName}
}

const (
	baseShippingCost   = 20000
	remoteSurcharge    = 12000
	highValueSurcharge = 8000
	highValueFloor     = 500000
)

// Generate synthesizes a label for the order.
func (g *SyntheticLabelGenerator) Generate(ctx context.Context, order *store.ShopeeOrder) (*ShippingLabel, error) {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:10])

	cost := int64(baseShippingCost)
	if !isMetroAddress(order.CustomerInfo.Address) {
		cost += remoteSurcharge
	}
	if order.TotalAmount > highValueFloor {
		cost += highValueSurcharge
	}

	return &ShippingLabel{
		OrderID:        order.ID,
		TrackingNumber: "VN" + suffix,
		LabelID:        "LBL-" + order.OrderNumber + "-" + suffix[:4],
		Carrier:        g.Carrier,
		ShippingCost:   cost,
		GeneratedAt:    time.Now().UTC(),
	}, nil
}

// isMetroAddress reports whether the address is in one of the two metro
// regions with base-rate delivery.
func isMetroAddress(address string) bool {
	lower := strings.ToLower(address)
	return strings.Contains(lower, "hồ chí minh") ||
		strings.Contains(lower, "ho chi minh") ||
		strings.Contains(lower, "hà nội") ||
		strings.Contains(lower, "ha noi")
}
