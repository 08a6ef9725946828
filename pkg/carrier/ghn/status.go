package ghn

import (
	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier"
)

// statusMap reconciles GHN status codes into the internal vocabulary.
// Unknown codes fall back to pending so that new carrier statuses degrade
// to "not yet shipped" instead of failing.
var statusMap = map[string]carrier.Status{
	// waiting for / in pickup
	"ready_to_pick":         carrier.StatusProcessing,
	"picking":               carrier.StatusProcessing,
	"money_collect_picking": carrier.StatusProcessing,
	"picked":                carrier.StatusProcessing,
	"storing":               carrier.StatusProcessing,
	"sorting":               carrier.StatusProcessing,

	// moving towards the receiver
	"transporting":             carrier.StatusShipped,
	"delivering":               carrier.StatusShipped,
	"money_collect_delivering": carrier.StatusShipped,

	// terminal
	"delivered": carrier.StatusDelivered,
	"cancel":    carrier.StatusCancelled,

	// return flow
	"return":              carrier.StatusReturned,
	"returning":           carrier.StatusReturned,
	"return_transporting": carrier.StatusReturned,
	"return_sorting":      carrier.StatusReturned,
	"returned":            carrier.StatusReturned,

	// failures and exceptions need human attention
	"delivery_fail":     carrier.StatusPending,
	"waiting_to_return": carrier.StatusPending,
	"return_fail":       carrier.StatusPending,
	"exception":         carrier.StatusPending,
	"damage":            carrier.StatusPending,
	"lost":              carrier.StatusPending,
}

// MapStatus maps a GHN status code to the internal status vocabulary.
// It is total: any unrecognized code resolves to pending.
func MapStatus(status string) carrier.Status {
	if mapped, ok := statusMap[status]; ok {
		return mapped
	}
	return carrier.StatusPending
}

// KnownStatuses returns all GHN status codes with an explicit mapping.
func KnownStatuses() []string {
	codes := make([]string, 0, len(statusMap))
	for code := range statusMap {
		codes = append(codes, code)
	}
	return codes
}
