package ghtk

import (
	"strconv"

	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier"
)

// statusMap reconciles GHTK numeric status codes into the internal
// vocabulary. Keys are the decimal codes as GHTK reports them. Unknown
// codes fall back to pending so that new carrier statuses degrade to
// "not yet shipped" instead of failing.
var statusMap = map[string]carrier.Status{
	// pre-pickup
	"1": carrier.StatusPending, // chưa tiếp nhận

	// accepted / pickup flow
	"2":   carrier.StatusProcessing, // đã tiếp nhận
	"12":  carrier.StatusProcessing, // đang lấy hàng
	"3":   carrier.StatusProcessing, // đã lấy hàng, đã nhập kho
	"123": carrier.StatusProcessing, // shipper báo đã lấy hàng

	// out for delivery
	"4": carrier.StatusShipped, // đã điều phối giao hàng / đang giao

	// delivered / settled
	"5":  carrier.StatusDelivered, // đã giao hàng, chưa đối soát
	"6":  carrier.StatusDelivered, // đã đối soát
	"45": carrier.StatusDelivered, // shipper báo đã giao

	// cancelled
	"-1": carrier.StatusCancelled, // huỷ đơn hàng

	// return flow
	"11": carrier.StatusReturned, // đã đối soát công nợ trả hàng
	"13": carrier.StatusReturned, // đơn hàng bồi hoàn
	"20": carrier.StatusReturned, // đang trả hàng
	"21": carrier.StatusReturned, // đã trả hàng

	// failures and delays need human attention
	"7":   carrier.StatusPending, // không lấy được hàng
	"8":   carrier.StatusPending, // hoãn lấy hàng
	"9":   carrier.StatusPending, // không giao được hàng
	"10":  carrier.StatusPending, // delay giao hàng
	"49":  carrier.StatusPending, // shipper báo không giao được
	"127": carrier.StatusPending, // shipper báo không lấy được
	"128": carrier.StatusPending, // shipper báo delay lấy
	"410": carrier.StatusPending, // shipper báo delay giao
}

// MapStatus maps a GHTK status code to the internal status vocabulary.
// It is total: any unrecognized code resolves to pending.
func MapStatus(code string) carrier.Status {
	if mapped, ok := statusMap[code]; ok {
		return mapped
	}
	return carrier.StatusPending
}

// MapStatusCode maps a numeric GHTK status code.
func MapStatusCode(code int) carrier.Status {
	return MapStatus(strconv.Itoa(code))
}

// KnownStatuses returns all GHTK status codes with an explicit mapping.
func KnownStatuses() []string {
	codes := make([]string, 0, len(statusMap))
	for code := range statusMap {
		codes = append(codes, code)
	}
	return codes
}
