package ghtk_test

import (
	"context"
	"testing"
	"time"

	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier"
	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier/ghtk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newTestClient(mockClient *ghtk.MockAPIClient) *ghtk.Client {
	logger := otelzap.New(zap.NewNop())
	return ghtk.NewWithAPIClient(
		ghtk.Config{},
		mockClient,
		logger,
		nil,
	)
}

func testCreateRequest() *carrier.CreateOrderRequest {
	return &carrier.CreateOrderRequest{
		OrderNumber: "SF-2024-002",
		Sender: carrier.Address{
			Name:     "Sunfoods",
			Phone:    "0909000001",
			Street:   "12 Nguyễn Huệ",
			Ward:     "Phường Bến Nghé",
			District: "Quận 1",
			Province: "Hồ Chí Minh",
		},
		Receiver: carrier.Address{
			Name:     "Trần Thị B",
			Phone:    "0987654321",
			Street:   "89 Trần Phú",
			Ward:     "Phường Lộc Thọ",
			District: "Nha Trang",
			Province: "Khánh Hòa",
		},
		Parcel: carrier.Parcel{
			WeightGrams:   1200,
			DeclaredValue: 450000,
		},
		Items: []carrier.Item{
			{Name: "Trà ô long 250g", Quantity: 1, SKU: "TEA-OOLONG-250"},
			{Name: "Mật ong rừng 500ml", Quantity: 1, SKU: "HONEY-500"},
		},
		Options: carrier.ServiceOptions{
			Level:     carrier.ServiceStandard,
			CODAmount: 450000,
		},
	}
}

func TestClient_Name(t *testing.T) {
	client := newTestClient(ghtk.NewMockAPIClient())
	assert.Equal(t, carrier.ProviderGHTK, client.Name())
}

func TestClient_CreateOrder_Success(t *testing.T) {
	mockAPI := ghtk.NewMockAPIClient()
	client := newTestClient(mockAPI)

	resp, err := client.CreateOrder(context.Background(), testCreateRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, resp.OrderCode)
	// GHTK reports fee and insurance separately; the total is their sum
	assert.Equal(t, int64(30000), resp.TotalFee)
	assert.Equal(t, int64(28000), resp.Breakdown.ServiceFee)
	assert.Equal(t, int64(2000), resp.Breakdown.InsuranceFee)
	assert.NotNil(t, resp.ExpectedDelivery)
}

func TestClient_CreateOrder_APIError(t *testing.T) {
	mockAPI := ghtk.NewMockAPIClient()
	mockAPI.SimulateErrors = true
	client := newTestClient(mockAPI)

	_, err := client.CreateOrder(context.Background(), testCreateRequest())

	assert.Error(t, err)
}

func TestClient_CreateOrder_PassesWireFields(t *testing.T) {
	mockAPI := ghtk.NewMockAPIClient()
	var captured *ghtk.CreateOrderRequest
	mockAPI.OnCreateOrder = func(ctx context.Context, req *ghtk.CreateOrderRequest) (*ghtk.OrderData, error) {
		captured = req
		return &ghtk.OrderData{Label: "S1.A1.TEST", Fee: 25000}, nil
	}
	client := newTestClient(mockAPI)

	_, err := client.CreateOrder(context.Background(), testCreateRequest())

	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, "SF-2024-002", captured.Order.ID)
	assert.Equal(t, "Trần Thị B", captured.Order.Name)
	assert.Equal(t, "Khánh Hòa", captured.Order.Province)
	assert.Equal(t, int64(450000), captured.Order.PickMoney)
	// COD order is never freeship
	assert.Equal(t, 0, captured.Order.IsFreeship)
	assert.Equal(t, "road", captured.Order.Transport)
	// parcel weight is split across products, in kilograms
	require.Len(t, captured.Products, 2)
	assert.InDelta(t, 0.6, captured.Products[0].Weight, 0.001)
}

func TestClient_CreateOrder_PrepaidIsFreeship(t *testing.T) {
	mockAPI := ghtk.NewMockAPIClient()
	var captured *ghtk.CreateOrderRequest
	mockAPI.OnCreateOrder = func(ctx context.Context, req *ghtk.CreateOrderRequest) (*ghtk.OrderData, error) {
		captured = req
		return &ghtk.OrderData{Label: "S1.A1.TEST"}, nil
	}
	client := newTestClient(mockAPI)

	req := testCreateRequest()
	req.Options.CODAmount = 0
	_, err := client.CreateOrder(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 1, captured.Order.IsFreeship)
	assert.Equal(t, int64(0), captured.Order.PickMoney)
}

func TestClient_GetOrderStatus_Success(t *testing.T) {
	mockAPI := ghtk.NewMockAPIClient()
	client := newTestClient(mockAPI)

	resp, err := client.GetOrderStatus(context.Background(), "S1.A1.17373471")

	require.NoError(t, err)
	assert.Equal(t, carrier.StatusShipped, resp.Status)
	assert.Equal(t, "4", resp.CarrierStatus)
	// GHTK exposes only the current state
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "4", resp.Events[0].CarrierStatus)
	assert.False(t, resp.LastUpdate.IsZero())
}

func TestClient_GetOrderStatus_DeliveredCode(t *testing.T) {
	mockAPI := ghtk.NewMockAPIClient()
	mockAPI.OnGetOrderStatus = func(ctx context.Context, label string) (*ghtk.StatusData, error) {
		return &ghtk.StatusData{
			LabelID:    label,
			Status:     6,
			StatusText: "Đã đối soát",
			Modified:   "2024-03-08 14:30:00",
		}, nil
	}
	client := newTestClient(mockAPI)

	resp, err := client.GetOrderStatus(context.Background(), "S1.A1.17373471")

	require.NoError(t, err)
	assert.Equal(t, carrier.StatusDelivered, resp.Status)
	assert.Equal(t, time.Date(2024, 3, 8, 14, 30, 0, 0, time.UTC), resp.LastUpdate)
}

func TestClient_CancelOrder_Success(t *testing.T) {
	mockAPI := ghtk.NewMockAPIClient()
	client := newTestClient(mockAPI)

	resp, err := client.CancelOrder(context.Background(), &carrier.CancelOrderRequest{
		OrderCodes: []string{"S1.A1.111", "S1.A1.222"},
		Reason:     "customer request",
	})

	require.NoError(t, err)
	assert.Len(t, resp.Results, 2)
	assert.True(t, resp.AllCancelled())
}

func TestClient_CancelOrder_PartialFailure(t *testing.T) {
	mockAPI := ghtk.NewMockAPIClient()
	mockAPI.OnCancelOrder = func(ctx context.Context, label string) error {
		if label == "S1.A1.222" {
			return &ghtk.APIError{Message: "đơn hàng đang giao"}
		}
		return nil
	}
	client := newTestClient(mockAPI)

	resp, err := client.CancelOrder(context.Background(), &carrier.CancelOrderRequest{
		OrderCodes: []string{"S1.A1.111", "S1.A1.222"},
	})

	require.NoError(t, err)
	assert.False(t, resp.AllCancelled())
	assert.True(t, resp.Results[0].Cancelled)
	assert.False(t, resp.Results[1].Cancelled)
	assert.Contains(t, resp.Results[1].Message, "đơn hàng đang giao")
}

func TestClient_CalculateFee_Success(t *testing.T) {
	mockAPI := ghtk.NewMockAPIClient()
	client := newTestClient(mockAPI)

	resp, err := client.CalculateFee(context.Background(), &carrier.FeeRequest{
		From:   carrier.Address{District: "Quận 1", Province: "Hồ Chí Minh"},
		To:     carrier.Address{District: "Nha Trang", Province: "Khánh Hòa"},
		Parcel: carrier.Parcel{WeightGrams: 1200, DeclaredValue: 450000},
	})

	require.NoError(t, err)
	assert.Equal(t, carrier.ProviderGHTK, resp.Carrier)
	assert.Equal(t, int64(23500), resp.TotalFee)
	assert.Equal(t, int64(22000), resp.Breakdown.ServiceFee)
}

func TestClient_CalculateFee_ExpressUsesFly(t *testing.T) {
	mockAPI := ghtk.NewMockAPIClient()
	var captured *ghtk.FeeRequest
	mockAPI.OnCalculateFee = func(ctx context.Context, req *ghtk.FeeRequest) (*ghtk.FeeData, error) {
		captured = req
		return &ghtk.FeeData{Fee: 40000}, nil
	}
	client := newTestClient(mockAPI)

	_, err := client.CalculateFee(context.Background(), &carrier.FeeRequest{
		Options: carrier.ServiceOptions{Level: carrier.ServiceExpress},
	})

	require.NoError(t, err)
	assert.Equal(t, "fly", captured.Transport)
}
