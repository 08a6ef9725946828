package fulfillment

import (
	"fmt"
	"time"

	"github.com/chihoangvnn/sunfoods-sub019/internal/store"
)

// TaskStatus is the fulfillment-facing status vocabulary, projected from
// the marketplace-native order status.
type TaskStatus string

const (
	TaskPending     TaskStatus = "pending"
	TaskProcessing  TaskStatus = "processing"
	TaskReadyToShip TaskStatus = "ready_to_ship"
	TaskShipped     TaskStatus = "shipped"
	TaskDelivered   TaskStatus = "delivered"
	TaskFailed      TaskStatus = "failed"
)

// Priority ranks a fulfillment task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var priorityRank = map[Priority]int{
	PriorityLow:    0,
	PriorityNormal: 1,
	PriorityHigh:   2,
	PriorityUrgent: 3,
}

// SLAWindow is the fixed window an order must be delivered within.
const SLAWindow = 72 * time.Hour

// urgentAge is the order age past which a task becomes urgent regardless
// of its value-derived priority.
const urgentAge = 48 * time.Hour

// taskStatus projects a marketplace order status into the fulfillment
// vocabulary. A to_ship order with a tracking number already assigned is
// ready to ship; without one it still needs processing.
func taskStatus(order *store.ShopeeOrder) TaskStatus {
	switch order.OrderStatus {
	case store.ShopeeToShip:
		if order.TrackingNumber != "" {
			return TaskReadyToShip
		}
		return TaskProcessing
	case store.ShopeeUnpaid:
		return TaskPending
	case store.ShopeeShipped:
		return TaskShipped
	case store.ShopeeToConfirmReceive, store.ShopeeCompleted:
		return TaskDelivered
	case store.ShopeeCancelled, store.ShopeeToReturn, store.ShopeeInCancel:
		return TaskFailed
	}
	return TaskPending
}

// orderStatusFor inverts taskStatus: it maps a fulfillment-facing status
// back to the marketplace status to persist.
func orderStatusFor(status TaskStatus) (store.ShopeeStatus, error) {
	switch status {
	case TaskPending:
		return store.ShopeeUnpaid, nil
	case TaskProcessing, TaskReadyToShip:
		return store.ShopeeToShip, nil
	case TaskShipped:
		return store.ShopeeShipped, nil
	case TaskDelivered:
		return store.ShopeeCompleted, nil
	case TaskFailed:
		return store.ShopeeCancelled, nil
	}
	return "", fmt.Errorf("unknown task status %q", status)
}

// derivePriority assigns a priority from order value and age. Value
// thresholds are evaluated first; the age check runs after and overwrites
// the value-derived priority when the order is older than 48 hours.
func derivePriority(total int64, age time.Duration, highValue, lowValue int64) Priority {
	priority := PriorityNormal
	if total > highValue {
		priority = PriorityHigh
	} else if total < lowValue {
		priority = PriorityLow
	}
	if age > urgentAge {
		priority = PriorityUrgent
	}
	return priority
}
