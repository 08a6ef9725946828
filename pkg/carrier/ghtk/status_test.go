package ghtk_test

import (
	"testing"

	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier"
	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier/ghtk"
	"github.com/stretchr/testify/assert"
)

func TestMapStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected carrier.Status
	}{
		// pre-pickup
		{"1", carrier.StatusPending},

		// accepted / pickup flow
		{"2", carrier.StatusProcessing},
		{"12", carrier.StatusProcessing},
		{"3", carrier.StatusProcessing},
		{"123", carrier.StatusProcessing},

		// out for delivery
		{"4", carrier.StatusShipped},

		// delivered and settled
		{"5", carrier.StatusDelivered},
		{"6", carrier.StatusDelivered},
		{"45", carrier.StatusDelivered},

		// cancelled
		{"-1", carrier.StatusCancelled},

		// return flow
		{"11", carrier.StatusReturned},
		{"13", carrier.StatusReturned},
		{"20", carrier.StatusReturned},
		{"21", carrier.StatusReturned},

		// failures and delays stay pending for manual follow-up
		{"7", carrier.StatusPending},
		{"8", carrier.StatusPending},
		{"9", carrier.StatusPending},
		{"10", carrier.StatusPending},
		{"49", carrier.StatusPending},
		{"127", carrier.StatusPending},
		{"128", carrier.StatusPending},
		{"410", carrier.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, ghtk.MapStatus(tt.code))
		})
	}
}

func TestMapStatus_UnknownFallsBackToPending(t *testing.T) {
	assert.Equal(t, carrier.StatusPending, ghtk.MapStatus("999"))
	assert.Equal(t, carrier.StatusPending, ghtk.MapStatus(""))
	assert.Equal(t, carrier.StatusPending, ghtk.MapStatus("not-a-number"))
}

func TestMapStatusCode(t *testing.T) {
	assert.Equal(t, carrier.StatusShipped, ghtk.MapStatusCode(4))
	assert.Equal(t, carrier.StatusCancelled, ghtk.MapStatusCode(-1))
	assert.Equal(t, carrier.StatusPending, ghtk.MapStatusCode(999))
}

func TestKnownStatuses_AllMapped(t *testing.T) {
	codes := ghtk.KnownStatuses()
	assert.NotEmpty(t, codes)
	for _, code := range codes {
		assert.NotEmpty(t, ghtk.MapStatus(code), "status %q must map to something", code)
	}
}
