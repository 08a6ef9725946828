package ghn_test

import (
	"context"
	"testing"
	"time"

	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier"
	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier/ghn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newTestClient(mockClient *ghn.MockAPIClient) *ghn.Client {
	logger := otelzap.New(zap.NewNop())
	return ghn.NewWithAPIClient(
		ghn.Config{},
		mockClient,
		logger,
		nil,
	)
}

func testCreateRequest() *carrier.CreateOrderRequest {
	return &carrier.CreateOrderRequest{
		OrderNumber: "SF-2024-001",
		Sender: carrier.Address{
			Name:     "Sunfoods",
			Phone:    "0909000001",
			Street:   "12 Nguyễn Huệ",
			Ward:     "Phường Bến Nghé",
			District: "Quận 1",
			Province: "Hồ Chí Minh",
		},
		Receiver: carrier.Address{
			Name:     "Nguyễn Văn A",
			Phone:    "0912345678",
			Street:   "45 Lê Lợi",
			Ward:     "Phường Phú Hội",
			District: "Thành phố Huế",
			Province: "Thừa Thiên Huế",
		},
		Parcel: carrier.Parcel{
			WeightGrams:   500,
			LengthCM:      20,
			WidthCM:       15,
			HeightCM:      10,
			DeclaredValue: 350000,
		},
		Items: []carrier.Item{
			{Name: "Hạt điều rang muối 500g", Quantity: 2, SKU: "CASHEW-500"},
		},
		Options: carrier.ServiceOptions{
			Level:     carrier.ServiceStandard,
			CODAmount: 350000,
		},
	}
}

func TestClient_Name(t *testing.T) {
	client := newTestClient(ghn.NewMockAPIClient())
	assert.Equal(t, carrier.ProviderGHN, client.Name())
}

func TestClient_CreateOrder_Success(t *testing.T) {
	mockAPI := ghn.NewMockAPIClient()
	client := newTestClient(mockAPI)

	resp, err := client.CreateOrder(context.Background(), testCreateRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, resp.OrderCode)
	assert.Equal(t, int64(30000), resp.TotalFee)
	assert.NotNil(t, resp.ExpectedDelivery)
}

func TestClient_CreateOrder_APIError(t *testing.T) {
	mockAPI := ghn.NewMockAPIClient()
	mockAPI.SimulateErrors = true
	client := newTestClient(mockAPI)

	_, err := client.CreateOrder(context.Background(), testCreateRequest())

	assert.Error(t, err)
}

func TestClient_CreateOrder_PassesWireFields(t *testing.T) {
	mockAPI := ghn.NewMockAPIClient()
	var captured *ghn.CreateOrderRequest
	mockAPI.OnCreateOrder = func(ctx context.Context, req *ghn.CreateOrderRequest) (*ghn.CreateOrderData, error) {
		captured = req
		return &ghn.CreateOrderData{OrderCode: "GHNTEST01", TotalFee: 31000}, nil
	}
	client := newTestClient(mockAPI)

	_, err := client.CreateOrder(context.Background(), testCreateRequest())

	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, "SF-2024-001", captured.ClientOrderCode)
	assert.Equal(t, "Nguyễn Văn A", captured.ToName)
	assert.Equal(t, "Thừa Thiên Huế", captured.ToProvinceName)
	assert.Equal(t, int64(350000), captured.CODAmount)
	assert.Equal(t, 500, captured.Weight)
	// service_type_id 2 is GHN standard
	assert.Equal(t, 2, captured.ServiceTypeID)
	// shipments are sealed unless the caller opts in
	assert.Equal(t, "KHONGCHOXEMHANG", captured.RequiredNote)
	require.Len(t, captured.Items, 1)
	assert.Equal(t, "CASHEW-500", captured.Items[0].Code)
}

func TestClient_GetOrderStatus_Success(t *testing.T) {
	mockAPI := ghn.NewMockAPIClient()
	client := newTestClient(mockAPI)

	resp, err := client.GetOrderStatus(context.Background(), "GHN12345")

	require.NoError(t, err)
	assert.Equal(t, carrier.StatusShipped, resp.Status)
	assert.Equal(t, "delivering", resp.CarrierStatus)
	assert.Len(t, resp.Events, 4)
	// carrier log order is preserved, oldest first
	assert.Equal(t, "ready_to_pick", resp.Events[0].CarrierStatus)
	assert.Equal(t, "delivering", resp.Events[3].CarrierStatus)
	assert.Equal(t, "Bưu cục Hải Châu", resp.CurrentLocation)
}

func TestClient_GetOrderStatus_UnknownCarrierStatus(t *testing.T) {
	mockAPI := ghn.NewMockAPIClient()
	mockAPI.OnGetOrderDetail = func(ctx context.Context, orderCode string) (*ghn.OrderDetailData, error) {
		return &ghn.OrderDetailData{
			OrderCode: orderCode,
			Status:    "brand_new_status",
		}, nil
	}
	client := newTestClient(mockAPI)

	resp, err := client.GetOrderStatus(context.Background(), "GHN12345")

	require.NoError(t, err)
	assert.Equal(t, carrier.StatusPending, resp.Status)
	assert.Equal(t, "brand_new_status", resp.CarrierStatus)
	assert.Empty(t, resp.Events)
}

func TestClient_CancelOrder_Success(t *testing.T) {
	mockAPI := ghn.NewMockAPIClient()
	client := newTestClient(mockAPI)

	resp, err := client.CancelOrder(context.Background(), &carrier.CancelOrderRequest{
		OrderCodes: []string{"GHN111", "GHN222"},
		Reason:     "customer request",
	})

	require.NoError(t, err)
	assert.Len(t, resp.Results, 2)
	assert.True(t, resp.AllCancelled())
}

func TestClient_CancelOrder_PartialRefusal(t *testing.T) {
	mockAPI := ghn.NewMockAPIClient()
	mockAPI.OnCancelOrders = func(ctx context.Context, orderCodes []string) ([]ghn.CancelResultData, error) {
		return []ghn.CancelResultData{
			{OrderCode: "GHN111", Result: true},
			{OrderCode: "GHN222", Result: false, Message: "order already delivering"},
		}, nil
	}
	client := newTestClient(mockAPI)

	resp, err := client.CancelOrder(context.Background(), &carrier.CancelOrderRequest{
		OrderCodes: []string{"GHN111", "GHN222"},
	})

	require.NoError(t, err)
	assert.False(t, resp.AllCancelled())
	assert.Equal(t, "order already delivering", resp.Results[1].Message)
}

func TestClient_CalculateFee_Success(t *testing.T) {
	mockAPI := ghn.NewMockAPIClient()
	client := newTestClient(mockAPI)

	resp, err := client.CalculateFee(context.Background(), &carrier.FeeRequest{
		From:   carrier.Address{District: "Quận 1", Province: "Hồ Chí Minh"},
		To:     carrier.Address{District: "Cầu Giấy", Province: "Hà Nội"},
		Parcel: carrier.Parcel{WeightGrams: 800},
	})

	require.NoError(t, err)
	assert.Equal(t, carrier.ProviderGHN, resp.Carrier)
	assert.Equal(t, int64(25000), resp.TotalFee)
	assert.Equal(t, int64(22000), resp.Breakdown.ServiceFee)
}

func TestClient_CalculateFee_APIError(t *testing.T) {
	mockAPI := ghn.NewMockAPIClient()
	mockAPI.SimulateErrors = true
	client := newTestClient(mockAPI)

	_, err := client.CalculateFee(context.Background(), &carrier.FeeRequest{})

	assert.Error(t, err)
}

func TestClient_SimulatedLatency(t *testing.T) {
	mockAPI := ghn.NewMockAPIClient()
	mockAPI.SimulateLatency = 10 * time.Millisecond
	client := newTestClient(mockAPI)

	start := time.Now()
	_, err := client.CalculateFee(context.Background(), &carrier.FeeRequest{})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}
