// Package shipping orchestrates shipment creation, tracking, and
// cancellation for vendor orders against a single carrier, reconciling the
// carrier's status vocabulary into the internal one and persisting every
// outcome on the shared vendor-order record.
package shipping

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chihoangvnn/sunfoods-sub019/internal/store"
	"github.com/chihoangvnn/sunfoods-sub019/internal/telemetry"
	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Construction errors. These are caller programming errors and the only
// failures that surface as Go errors; every runtime failure is captured in
// the returned result objects.
var (
	ErrNilCarrier = errors.New("shipping: carrier is nil")
	ErrNilStore   = errors.New("shipping: vendor order store is nil")
	ErrNilLogger  = errors.New("shipping: logger is nil")
)

const (
	errOrderNotFound  = "vendor order not found"
	errNoTrackingCode = "no tracking code: shipment was never created"
)

// Service orchestrates shipping operations for one carrier.
type Service struct {
	carrier carrier.Carrier
	store   store.VendorOrderStore
	logger  *otelzap.Logger
	metrics *telemetry.Metrics

	// Writes are serialized per vendor-order id so a manual cancel racing
	// a tracking poll cannot interleave read-modify-write cycles.
	locks sync.Map
}

// New creates a shipping service for the given carrier. Metrics may be nil.
func New(c carrier.Carrier, st store.VendorOrderStore, logger *otelzap.Logger, metrics *telemetry.Metrics) (*Service, error) {
	if c == nil {
		return nil, ErrNilCarrier
	}
	if st == nil {
		return nil, ErrNilStore
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	return &Service{
		carrier: c,
		store:   st,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Carrier returns the provider this service ships with.
func (s *Service) Carrier() carrier.Provider {
	return s.carrier.Name()
}

func (s *Service) lock(id string) func() {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *Service) record(op, status string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordRequest(op, string(s.carrier.Name()), status, time.Since(start).Seconds())
	}
}

// CreateShippingOrder builds the carrier request, creates the shipment, and
// persists the outcome on the vendor order. On success the order moves to
// processing with the carrier tracking code recorded; on failure it stays
// pending with the error recorded in the audit trail and no tracking code.
func (s *Service) CreateShippingOrder(ctx context.Context, req ShippingRequest, sender carrier.Address) CreateShippingResult {
	start := time.Now()
	unlock := s.lock(req.VendorOrderID)
	defer unlock()

	order, err := s.store.GetVendorOrder(ctx, req.VendorOrderID)
	if err != nil {
		s.record("create", "error", start)
		if errors.Is(err, store.ErrNotFound) {
			return CreateShippingResult{Error: errOrderNotFound}
		}
		return CreateShippingResult{Error: err.Error()}
	}

	orderNumber := req.OrderNumber
	if orderNumber == "" {
		orderNumber = order.OrderNumber
	}

	resp, err := s.carrier.CreateOrder(ctx, &carrier.CreateOrderRequest{
		OrderNumber: orderNumber,
		Sender:      sender,
		Receiver:    req.Receiver,
		Parcel:      req.Parcel,
		Items:       req.Items,
		Options:     req.Options,
	})
	if err != nil {
		s.logger.Error("Shipment creation failed",
			zap.String("vendor_order_id", req.VendorOrderID),
			zap.String("carrier", string(s.carrier.Name())),
			zap.Error(err),
		)
		s.persistCreateFailure(ctx, order, err)
		s.record("create", "failure", start)
		return CreateShippingResult{Error: err.Error()}
	}

	now := time.Now().UTC()
	provider := s.carrier.Name()
	status := carrier.StatusProcessing

	notes := order.Notes
	notes.Append(store.AuditCreated, "shipment created", map[string]interface{}{
		"orderCode":        resp.OrderCode,
		"totalFee":         resp.TotalFee,
		"serviceFee":       resp.Breakdown.ServiceFee,
		"insuranceFee":     resp.Breakdown.InsuranceFee,
		"expectedDelivery": resp.ExpectedDelivery,
		"sender":           sender,
		"receiver":         req.Receiver,
	})

	upd := store.VendorOrderUpdate{
		ShippingProvider: &provider,
		ShippingCode:     &resp.OrderCode,
		Status:           &status,
		Notes:            &notes,
	}
	if order.ProcessingAt == nil {
		upd.ProcessingAt = &now
	}

	if _, err := s.store.UpdateVendorOrder(ctx, order.ID, upd); err != nil {
		s.logger.Error("Persisting shipment failed",
			zap.String("vendor_order_id", order.ID),
			zap.Error(err),
		)
		s.record("create", "error", start)
		return CreateShippingResult{Error: err.Error()}
	}

	s.logger.Info("Shipment created",
		zap.String("vendor_order_id", order.ID),
		zap.String("carrier", string(provider)),
		zap.String("order_code", resp.OrderCode),
		zap.Int64("total_fee", resp.TotalFee),
	)
	s.record("create", "success", start)

	return CreateShippingResult{
		Success:          true,
		OrderCode:        resp.OrderCode,
		TrackingNumber:   resp.OrderCode,
		TotalFee:         resp.TotalFee,
		ExpectedDelivery: resp.ExpectedDelivery,
	}
}

// persistCreateFailure records a failed creation attempt. The order keeps
// its pre-shipment pending status and gains an audit event; the tracking
// code stays unset.
func (s *Service) persistCreateFailure(ctx context.Context, order *store.VendorOrder, cause error) {
	status := carrier.StatusPending
	notes := order.Notes
	notes.Append(store.AuditCreateFailed, cause.Error(), map[string]interface{}{
		"carrier": string(s.carrier.Name()),
	})
	if _, err := s.store.UpdateVendorOrder(ctx, order.ID, store.VendorOrderUpdate{
		Status: &status,
		Notes:  &notes,
	}); err != nil {
		s.logger.Error("Persisting create failure note failed",
			zap.String("vendor_order_id", order.ID),
			zap.Error(err),
		)
	}
}

// TrackOrder polls the carrier for the current shipment status, reconciles
// it into the internal vocabulary, and persists the transition. Terminal
// statuses are sticky: a stale poll never regresses delivered, cancelled,
// or returned. Milestone timestamps are set at most once. On any failure
// the record is left untouched.
func (s *Service) TrackOrder(ctx context.Context, vendorOrderID string) TrackingResult {
	start := time.Now()
	unlock := s.lock(vendorOrderID)
	defer unlock()

	order, err := s.store.GetVendorOrder(ctx, vendorOrderID)
	if err != nil {
		s.record("track", "error", start)
		if errors.Is(err, store.ErrNotFound) {
			return trackingFailure(errOrderNotFound)
		}
		return trackingFailure(err.Error())
	}
	if order.ShippingCode == "" {
		s.record("track", "error", start)
		return trackingFailure(errNoTrackingCode)
	}

	resp, err := s.carrier.GetOrderStatus(ctx, order.ShippingCode)
	if err != nil {
		s.logger.Error("Tracking poll failed",
			zap.String("vendor_order_id", vendorOrderID),
			zap.String("shipping_code", order.ShippingCode),
			zap.Error(err),
		)
		s.record("track", "failure", start)
		return trackingFailure(err.Error())
	}

	newStatus := resp.Status
	if order.Status.Terminal() {
		newStatus = order.Status
	}

	history := make([]store.TrackingHistoryRecord, len(resp.Events))
	for i, ev := range resp.Events {
		history[i] = store.TrackingHistoryRecord{
			Status:   ev.CarrierStatus,
			Date:     ev.Timestamp,
			Location: ev.Location,
		}
	}

	now := time.Now().UTC()
	notes := order.Notes
	if newStatus != order.Status {
		notes.Append(store.AuditTrackingUpdate, "status changed", map[string]interface{}{
			"from":          string(order.Status),
			"to":            string(newStatus),
			"carrierStatus": resp.CarrierStatus,
		})
	}
	notes.TrackingData = &store.TrackingSnapshot{
		CarrierStatus: resp.CarrierStatus,
		Status:        newStatus,
		Location:      resp.CurrentLocation,
		LastUpdate:    resp.LastUpdate,
		PolledAt:      now,
		Events:        history,
	}

	upd := store.VendorOrderUpdate{
		Status: &newStatus,
		Notes:  &notes,
	}
	switch newStatus {
	case carrier.StatusProcessing:
		if order.ProcessingAt == nil {
			upd.ProcessingAt = &now
		}
	case carrier.StatusShipped:
		if order.ShippedAt == nil {
			upd.ShippedAt = &now
		}
	case carrier.StatusDelivered:
		if order.DeliveredAt == nil {
			upd.DeliveredAt = &now
		}
	case carrier.StatusCancelled:
		if order.CancelledAt == nil {
			upd.CancelledAt = &now
		}
	}

	if _, err := s.store.UpdateVendorOrder(ctx, order.ID, upd); err != nil {
		s.logger.Error("Persisting tracking update failed",
			zap.String("vendor_order_id", order.ID),
			zap.Error(err),
		)
		s.record("track", "error", start)
		return trackingFailure(err.Error())
	}

	s.record("track", "success", start)
	return TrackingResult{
		Success:         true,
		Status:          newStatus,
		CurrentLocation: resp.CurrentLocation,
		LastUpdate:      resp.LastUpdate,
		History:         history,
	}
}

func trackingFailure(msg string) TrackingResult {
	return TrackingResult{
		Status:  StatusUnknown,
		History: []store.TrackingHistoryRecord{},
		Error:   msg,
	}
}

// CancelOrder cancels the shipment with the carrier and records the
// cancellation. On failure the record is left in its prior state so the
// action can be retried.
func (s *Service) CancelOrder(ctx context.Context, vendorOrderID, reason string) CancelShippingResult {
	start := time.Now()
	unlock := s.lock(vendorOrderID)
	defer unlock()

	order, err := s.store.GetVendorOrder(ctx, vendorOrderID)
	if err != nil {
		s.record("cancel", "error", start)
		if errors.Is(err, store.ErrNotFound) {
			return CancelShippingResult{Error: errOrderNotFound}
		}
		return CancelShippingResult{Error: err.Error()}
	}
	if order.ShippingCode == "" {
		s.record("cancel", "error", start)
		return CancelShippingResult{Error: errNoTrackingCode}
	}

	resp, err := s.carrier.CancelOrder(ctx, &carrier.CancelOrderRequest{
		OrderCodes: []string{order.ShippingCode},
		Reason:     reason,
	})
	if err != nil {
		s.logger.Error("Cancellation failed",
			zap.String("vendor_order_id", vendorOrderID),
			zap.String("shipping_code", order.ShippingCode),
			zap.Error(err),
		)
		s.record("cancel", "failure", start)
		return CancelShippingResult{Error: err.Error()}
	}
	if !resp.AllCancelled() {
		msg := "carrier refused cancellation"
		for _, r := range resp.Results {
			if !r.Cancelled && r.Message != "" {
				msg = r.Message
				break
			}
		}
		s.record("cancel", "failure", start)
		return CancelShippingResult{Error: msg}
	}

	now := time.Now().UTC()
	status := carrier.StatusCancelled
	notes := order.Notes
	notes.Append(store.AuditCancelled, reason, map[string]interface{}{
		"shippingCode": order.ShippingCode,
	})

	upd := store.VendorOrderUpdate{
		Status: &status,
		Notes:  &notes,
	}
	if order.CancelledAt == nil {
		upd.CancelledAt = &now
	}

	if _, err := s.store.UpdateVendorOrder(ctx, order.ID, upd); err != nil {
		s.logger.Error("Persisting cancellation failed",
			zap.String("vendor_order_id", order.ID),
			zap.Error(err),
		)
		s.record("cancel", "error", start)
		return CancelShippingResult{Error: err.Error()}
	}

	s.logger.Info("Shipment cancelled",
		zap.String("vendor_order_id", order.ID),
		zap.String("shipping_code", order.ShippingCode),
		zap.String("reason", reason),
	)
	s.record("cancel", "success", start)
	return CancelShippingResult{Success: true}
}

// CalculateShippingFee returns a fee quote. It never touches persistence.
func (s *Service) CalculateShippingFee(ctx context.Context, req carrier.FeeRequest) FeeResult {
	start := time.Now()

	resp, err := s.carrier.CalculateFee(ctx, &req)
	if err != nil {
		s.logger.Error("Fee quote failed",
			zap.String("carrier", string(s.carrier.Name())),
			zap.Error(err),
		)
		s.record("fee", "failure", start)
		return FeeResult{Error: err.Error()}
	}

	s.record("fee", "success", start)
	breakdown := resp.Breakdown
	return FeeResult{
		Success:    true,
		Fee:        resp.TotalFee,
		FeeDetails: &breakdown,
	}
}
