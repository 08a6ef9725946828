package carrier_test

import (
	"context"
	"testing"

	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier"
	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := carrier.NewRegistry()
	registry.Register(mock.New(carrier.ProviderGHN))
	registry.Register(mock.New(carrier.ProviderGHTK))

	assert.Equal(t, 2, registry.Count())

	c, err := registry.Get(carrier.ProviderGHN)
	require.NoError(t, err)
	assert.Equal(t, carrier.ProviderGHN, c.Name())

	_, err = registry.Get("unknown")
	assert.ErrorIs(t, err, carrier.ErrCarrierNotFound)
}

func TestRegistry_Names(t *testing.T) {
	registry := carrier.NewRegistry()
	registry.Register(mock.New(carrier.ProviderGHN))
	registry.Register(mock.New(carrier.ProviderGHTK))

	names := registry.Names()
	assert.ElementsMatch(t, []carrier.Provider{carrier.ProviderGHN, carrier.ProviderGHTK}, names)
}

func TestRegistry_CompareFees(t *testing.T) {
	registry := carrier.NewRegistry()

	ghn := mock.New(carrier.ProviderGHN)
	ghn.OnCalculateFee = func(ctx context.Context, req *carrier.FeeRequest) (*carrier.FeeResponse, error) {
		return &carrier.FeeResponse{Carrier: carrier.ProviderGHN, TotalFee: 32000}, nil
	}
	ghtk := mock.New(carrier.ProviderGHTK)
	ghtk.OnCalculateFee = func(ctx context.Context, req *carrier.FeeRequest) (*carrier.FeeResponse, error) {
		return &carrier.FeeResponse{Carrier: carrier.ProviderGHTK, TotalFee: 27000}, nil
	}
	registry.Register(ghn)
	registry.Register(ghtk)

	quotes, errs := registry.CompareFees(context.Background(), &carrier.FeeRequest{})

	assert.Empty(t, errs)
	require.Len(t, quotes, 2)
	fees := map[carrier.Provider]int64{}
	for _, q := range quotes {
		fees[q.Carrier] = q.TotalFee
	}
	assert.Equal(t, int64(32000), fees[carrier.ProviderGHN])
	assert.Equal(t, int64(27000), fees[carrier.ProviderGHTK])
}

func TestRegistry_CompareFees_OneCarrierFails(t *testing.T) {
	registry := carrier.NewRegistry()

	ghn := mock.New(carrier.ProviderGHN)
	ghtk := mock.New(carrier.ProviderGHTK)
	ghtk.OnCalculateFee = func(ctx context.Context, req *carrier.FeeRequest) (*carrier.FeeResponse, error) {
		return nil, carrier.ErrServiceUnavailable
	}
	registry.Register(ghn)
	registry.Register(ghtk)

	quotes, errs := registry.CompareFees(context.Background(), &carrier.FeeRequest{})

	// one carrier failing never hides the other's quote
	require.Len(t, quotes, 1)
	assert.Equal(t, carrier.ProviderGHN, quotes[0].Carrier)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], carrier.ErrServiceUnavailable)
}

func TestRegistry_CompareFees_Empty(t *testing.T) {
	registry := carrier.NewRegistry()

	quotes, errs := registry.CompareFees(context.Background(), &carrier.FeeRequest{})

	assert.Nil(t, quotes)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], carrier.ErrCarrierNotFound)
}

func TestRegistry_FeesFromCarriers(t *testing.T) {
	registry := carrier.NewRegistry()
	registry.Register(mock.New(carrier.ProviderGHN))
	registry.Register(mock.New(carrier.ProviderGHTK))

	quotes, errs := registry.FeesFromCarriers(context.Background(), &carrier.FeeRequest{},
		[]carrier.Provider{carrier.ProviderGHN, "unknown"})

	require.Len(t, quotes, 1)
	assert.Equal(t, carrier.ProviderGHN, quotes[0].Carrier)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], carrier.ErrCarrierNotFound)
}
