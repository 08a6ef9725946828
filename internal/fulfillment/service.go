// Package fulfillment builds the operational queue over marketplace orders:
// it projects shippable orders into prioritized tasks, computes fulfillment
// statistics, and drives single and batch state transitions.
package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/chihoangvnn/sunfoods-sub019/internal/store"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Construction errors.
var (
	ErrNilStore          = errors.New("fulfillment: shopee order store is nil")
	ErrNilLabelGenerator = errors.New("fulfillment: label generator is nil")
	ErrNilLogger         = errors.New("fulfillment: logger is nil")
)

// Default value thresholds for priority derivation, in VND.
const (
	DefaultHighValueThreshold = 1000000
	DefaultLowValueThreshold  = 100000
)

// statsWindow bounds the efficiency calculation to recent orders.
const statsWindow = 30 * 24 * time.Hour

// shippableStatuses is the marketplace status set the queue is built from.
var shippableStatuses = []store.ShopeeStatus{
	store.ShopeeToShip,
	store.ShopeeShipped,
	store.ShopeeToConfirmReceive,
}

// Config holds tunables for the fulfillment queue.
type Config struct {
	HighValueThreshold int64 // VND, above which a task is high priority
	LowValueThreshold  int64 // VND, below which a task is low priority
}

// FulfillmentTask is the derived, never-persisted operational view of a
// marketplace order. It is recomputed on every query and carries no
// identity beyond the source order id.
type FulfillmentTask struct {
	OrderID         string
	OrderNumber     string
	CustomerName    string
	Status          TaskStatus
	Priority        Priority
	Items           store.OrderItems
	ShippingAddress string
	TotalAmount     int64
	CreatedAt       time.Time
	DueDate         time.Time
}

// Stats summarizes the fulfillment workload for an account.
type Stats struct {
	PendingTasks   int
	ShippedTasks   int
	CompletedTasks int
	// Efficiency is the percentage of orders created in the last 30 days
	// delivered within the SLA window. 100 when there are no recent orders.
	Efficiency float64
}

// QueueFilter optionally narrows the queue to specific marketplace statuses
// within the shippable set.
type QueueFilter struct {
	Statuses []store.ShopeeStatus
}

// TaskUpdates carries optional shipping fields applied alongside a status
// transition.
type TaskUpdates struct {
	TrackingNumber    string
	ShippingCarrier   string
	EstimatedDelivery *time.Time
}

// BatchAction is a bulk operation applied to each order independently.
type BatchAction string

const (
	ActionMarkProcessing BatchAction = "mark_processing"
	ActionMarkShipped    BatchAction = "mark_shipped"
	ActionMarkDelivered  BatchAction = "mark_delivered"
	ActionGenerateLabels BatchAction = "generate_labels"
)

// BatchItemResult records the outcome for a single order in a batch.
type BatchItemResult struct {
	OrderID string
	Success bool
	Data    interface{}
	Error   string
}

// BatchResult is the aggregate outcome of a batch operation.
type BatchResult struct {
	Processed  int
	Successful int
	Failed     int
	Results    []BatchItemResult
}

// Service is the fulfillment queue service.
type Service struct {
	store     store.ShopeeOrderStore
	labels    LabelGenerator
	logger    *otelzap.Logger
	highValue int64
	lowValue  int64

	// Transitions are serialized per order id so two concurrent delivered
	// marks cannot both observe an unset delivery time.
	locks sync.Map
}

// New creates a fulfillment service. Zero thresholds fall back to defaults.
func New(cfg Config, st store.ShopeeOrderStore, labels LabelGenerator, logger *otelzap.Logger) (*Service, error) {
	if st == nil {
		return nil, ErrNilStore
	}
	if labels == nil {
		return nil, ErrNilLabelGenerator
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	highValue := cfg.HighValueThreshold
	if highValue == 0 {
		highValue = DefaultHighValueThreshold
	}
	lowValue := cfg.LowValueThreshold
	if lowValue == 0 {
		lowValue = DefaultLowValueThreshold
	}

	return &Service{
		store:     st,
		labels:    labels,
		logger:    logger,
		highValue: highValue,
		lowValue:  lowValue,
	}, nil
}

func (s *Service) lock(id string) func() {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// GetFulfillmentQueue returns the prioritized task list for an account:
// shippable orders projected into tasks, sorted by priority descending and
// due date ascending. It is a pure read-side projection.
func (s *Service) GetFulfillmentQueue(ctx context.Context, businessAccountID string, filter QueueFilter) ([]FulfillmentTask, error) {
	statuses := shippableStatuses
	if len(filter.Statuses) > 0 {
		statuses = intersectShippable(filter.Statuses)
		// a filter naming only non-shippable statuses matches nothing
		if len(statuses) == 0 {
			return []FulfillmentTask{}, nil
		}
	}

	orders, err := s.store.ListShopeeOrders(ctx, store.ShopeeOrderFilter{
		BusinessAccountID: businessAccountID,
		Statuses:          statuses,
	})
	if err != nil {
		return nil, fmt.Errorf("listing shippable orders: %w", err)
	}

	now := time.Now()
	tasks := make([]FulfillmentTask, len(orders))
	for i := range orders {
		tasks[i] = s.projectTask(&orders[i], now)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		ri, rj := priorityRank[tasks[i].Priority], priorityRank[tasks[j].Priority]
		if ri != rj {
			return ri > rj
		}
		return tasks[i].DueDate.Before(tasks[j].DueDate)
	})
	return tasks, nil
}

// projectTask derives the fulfillment view of one order.
func (s *Service) projectTask(order *store.ShopeeOrder, now time.Time) FulfillmentTask {
	return FulfillmentTask{
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerName:    order.CustomerInfo.Name,
		Status:          taskStatus(order),
		Priority:        derivePriority(order.TotalAmount, now.Sub(order.CreatedAt), s.highValue, s.lowValue),
		Items:           order.Items,
		ShippingAddress: order.CustomerInfo.Address,
		TotalAmount:     order.TotalAmount,
		CreatedAt:       order.CreatedAt,
		DueDate:         order.CreatedAt.Add(SLAWindow),
	}
}

// GetFulfillmentStats counts orders by coarse bucket and computes the
// 30-day on-time delivery percentage.
func (s *Service) GetFulfillmentStats(ctx context.Context, businessAccountID string) (*Stats, error) {
	orders, err := s.store.ListShopeeOrders(ctx, store.ShopeeOrderFilter{
		BusinessAccountID: businessAccountID,
	})
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}

	stats := &Stats{}
	cutoff := time.Now().Add(-statsWindow)
	recent, onTime := 0, 0

	for i := range orders {
		order := &orders[i]
		switch order.OrderStatus {
		case store.ShopeeUnpaid, store.ShopeeToShip:
			stats.PendingTasks++
		case store.ShopeeShipped, store.ShopeeToConfirmReceive:
			stats.ShippedTasks++
		case store.ShopeeCompleted:
			stats.CompletedTasks++
		}

		if order.CreatedAt.Before(cutoff) {
			continue
		}
		recent++
		if order.DeliveredAt != nil && !order.DeliveredAt.After(order.CreatedAt.Add(SLAWindow)) {
			onTime++
		}
	}

	if recent == 0 {
		stats.Efficiency = 100
	} else {
		stats.Efficiency = float64(onTime) / float64(recent) * 100
	}
	return stats, nil
}

// UpdateTaskStatus transitions a task, mapping the fulfillment-facing
// status back to the marketplace status and applying optional shipping
// updates. Marking a task delivered records the delivery time at most once.
func (s *Service) UpdateTaskStatus(ctx context.Context, taskID string, status TaskStatus, updates *TaskUpdates) (*store.ShopeeOrder, error) {
	orderStatus, err := orderStatusFor(status)
	if err != nil {
		return nil, err
	}

	unlock := s.lock(taskID)
	defer unlock()

	order, err := s.store.GetShopeeOrder(ctx, taskID)
	if err != nil {
		return nil, err
	}

	upd := store.ShopeeOrderUpdate{OrderStatus: &orderStatus}
	if updates != nil {
		if updates.TrackingNumber != "" {
			upd.TrackingNumber = &updates.TrackingNumber
		}
		if updates.ShippingCarrier != "" {
			upd.ShippingCarrier = &updates.ShippingCarrier
		}
		if updates.EstimatedDelivery != nil {
			upd.EstimatedDelivery = updates.EstimatedDelivery
		}
	}
	if status == TaskDelivered && order.DeliveredAt == nil {
		now := time.Now().UTC()
		upd.DeliveredAt = &now
	}

	updated, err := s.store.UpdateShopeeOrder(ctx, taskID, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Task status updated",
		zap.String("order_id", taskID),
		zap.String("status", string(status)),
	)
	return updated, nil
}

// GenerateShippingLabel produces a label via the configured generator and
// moves the task to ready_to_ship with the new tracking number recorded.
func (s *Service) GenerateShippingLabel(ctx context.Context, taskID string) (*ShippingLabel, error) {
	order, err := s.store.GetShopeeOrder(ctx, taskID)
	if err != nil {
		return nil, err
	}

	label, err := s.labels.Generate(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("generating label: %w", err)
	}

	if _, err := s.UpdateTaskStatus(ctx, taskID, TaskReadyToShip, &TaskUpdates{
		TrackingNumber:  label.TrackingNumber,
		ShippingCarrier: label.Carrier,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("Shipping label generated",
		zap.String("order_id", taskID),
		zap.String("tracking_number", label.TrackingNumber),
		zap.Int64("shipping_cost", label.ShippingCost),
	)
	return label, nil
}

// BatchProcessOrders applies one action to each order independently. One
// item's failure never aborts the batch; every order gets exactly one
// result entry.
func (s *Service) BatchProcessOrders(ctx context.Context, orderIDs []string, action BatchAction) BatchResult {
	result := BatchResult{
		Processed: len(orderIDs),
		Results:   make([]BatchItemResult, 0, len(orderIDs)),
	}

	for _, id := range orderIDs {
		data, err := s.applyAction(ctx, id, action)
		item := BatchItemResult{OrderID: id, Success: err == nil, Data: data}
		if err != nil {
			item.Error = err.Error()
			result.Failed++
		} else {
			result.Successful++
		}
		result.Results = append(result.Results, item)
	}

	s.logger.Info("Batch processed",
		zap.String("action", string(action)),
		zap.Int("processed", result.Processed),
		zap.Int("successful", result.Successful),
		zap.Int("failed", result.Failed),
	)
	return result
}

func (s *Service) applyAction(ctx context.Context, orderID string, action BatchAction) (interface{}, error) {
	switch action {
	case ActionMarkProcessing:
		return s.UpdateTaskStatus(ctx, orderID, TaskProcessing, nil)
	case ActionMarkShipped:
		return s.UpdateTaskStatus(ctx, orderID, TaskShipped, nil)
	case ActionMarkDelivered:
		return s.UpdateTaskStatus(ctx, orderID, TaskDelivered, nil)
	case ActionGenerateLabels:
		return s.GenerateShippingLabel(ctx, orderID)
	}
	return nil, fmt.Errorf("unknown batch action %q", action)
}

// intersectShippable keeps only statuses from the shippable set.
func intersectShippable(statuses []store.ShopeeStatus) []store.ShopeeStatus {
	out := make([]store.ShopeeStatus, 0, len(statuses))
	for _, st := range statuses {
		for _, shippable := range shippableStatuses {
			if st == shippable {
				out = append(out, st)
				break
			}
		}
	}
	return out
}
