package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chihoangvnn/sunfoods-sub019/internal/fulfillment"
	"github.com/chihoangvnn/sunfoods-sub019/internal/marketplace/shopee"
	"github.com/chihoangvnn/sunfoods-sub019/internal/server"
	"github.com/chihoangvnn/sunfoods-sub019/internal/shipping"
	"github.com/chihoangvnn/sunfoods-sub019/internal/store"
	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier"
	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, st *store.MemoryStore) http.Handler {
	t.Helper()

	logger := otelzap.New(zap.NewNop())

	registry := carrier.NewRegistry()
	ghn := mock.New(carrier.ProviderGHN)
	registry.Register(ghn)

	shippingSvc, err := shipping.New(ghn, st, logger, nil)
	require.NoError(t, err)

	fulfillmentSvc, err := fulfillment.New(fulfillment.Config{}, st,
		fulfillment.NewSyntheticLabelGenerator("ghn"), logger)
	require.NoError(t, err)

	ingestor, err := shopee.NewIngestor(st, logger)
	require.NoError(t, err)

	srv := server.New(server.Config{Port: 8080},
		registry,
		map[carrier.Provider]*shipping.Service{carrier.ProviderGHN: shippingSvc},
		fulfillmentSvc,
		ingestor,
		logger,
		nil,
	)
	return srv.Handler()
}

func TestServer_Health(t *testing.T) {
	handler := newTestServer(t, store.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServer_CreateShippingOrder(t *testing.T) {
	st := store.NewMemoryStore()
	st.PutVendorOrder(store.VendorOrder{
		ID:          "VO-1",
		OrderNumber: "SF-2024-001",
		Status:      carrier.StatusPending,
	})
	handler := newTestServer(t, st)

	body := strings.NewReader(`{
		"vendor_order_id": "VO-1",
		"receiver": {"Name": "Nguyễn Văn A", "Phone": "0912345678", "Province": "Hồ Chí Minh"},
		"parcel": {"WeightGrams": 500},
		"options": {"CODAmount": 350000}
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/shipping/ghn/orders", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var result shipping.CreateShippingResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.OrderCode)
}

func TestServer_CreateShippingOrder_UnknownCarrier(t *testing.T) {
	handler := newTestServer(t, store.NewMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/api/shipping/vnpost/orders", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_CreateShippingOrder_InvalidJSON(t *testing.T) {
	handler := newTestServer(t, store.NewMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/api/shipping/ghn/orders", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_TrackOrder_FailureIsResultNotHTTPError(t *testing.T) {
	st := store.NewMemoryStore()
	st.PutVendorOrder(store.VendorOrder{ID: "VO-1", Status: carrier.StatusPending})
	handler := newTestServer(t, st)

	body := strings.NewReader(`{"vendor_order_id": "VO-1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/shipping/ghn/track", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// expected shipping failures surface in the result body, not the status
	assert.Equal(t, http.StatusOK, rec.Code)

	var result shipping.TrackingResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "no tracking code")
}

func TestServer_CompareFees(t *testing.T) {
	handler := newTestServer(t, store.NewMemoryStore())

	body := strings.NewReader(`{"Parcel": {"WeightGrams": 800}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/shipping/fees/compare", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Quotes []carrier.FeeResponse `json:"quotes"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Quotes, 1)
	assert.Equal(t, carrier.ProviderGHN, resp.Quotes[0].Carrier)
}

func TestServer_FulfillmentQueue(t *testing.T) {
	st := store.NewMemoryStore()
	st.PutShopeeOrder(store.ShopeeOrder{
		ID:                "O-1",
		BusinessAccountID: "acct-1",
		OrderStatus:       store.ShopeeToShip,
		TotalAmount:       300000,
		CreatedAt:         time.Now().Add(-time.Hour),
	})
	handler := newTestServer(t, st)

	req := httptest.NewRequest(http.MethodGet, "/api/fulfillment/acct-1/queue", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var tasks []fulfillment.FulfillmentTask
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "O-1", tasks[0].OrderID)
}

func TestServer_FulfillmentQueue_NonShippableFilter(t *testing.T) {
	st := store.NewMemoryStore()
	st.PutShopeeOrder(store.ShopeeOrder{
		ID:                "O-1",
		BusinessAccountID: "acct-1",
		OrderStatus:       store.ShopeeToShip,
		TotalAmount:       300000,
		CreatedAt:         time.Now().Add(-time.Hour),
	})
	handler := newTestServer(t, st)

	req := httptest.NewRequest(http.MethodGet, "/api/fulfillment/acct-1/queue?status=cancelled", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var tasks []fulfillment.FulfillmentTask
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tasks))
	assert.Empty(t, tasks)
}

func TestServer_FulfillmentStats(t *testing.T) {
	st := store.NewMemoryStore()
	st.PutShopeeOrder(store.ShopeeOrder{
		ID: "O-1", BusinessAccountID: "acct-1", OrderStatus: store.ShopeeToShip, CreatedAt: time.Now(),
	})
	handler := newTestServer(t, st)

	req := httptest.NewRequest(http.MethodGet, "/api/fulfillment/acct-1/stats", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var stats fulfillment.Stats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	assert.Equal(t, 1, stats.PendingTasks)
}

func TestServer_UpdateTaskStatus_NotFound(t *testing.T) {
	handler := newTestServer(t, store.NewMemoryStore())

	body := strings.NewReader(`{"status": "shipped"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/fulfillment/tasks/missing/status", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_BatchProcess(t *testing.T) {
	st := store.NewMemoryStore()
	st.PutShopeeOrder(store.ShopeeOrder{
		ID: "O-1", BusinessAccountID: "acct-1", OrderStatus: store.ShopeeToShip, CreatedAt: time.Now(),
	})
	handler := newTestServer(t, st)

	body := strings.NewReader(`{"order_ids": ["O-1", "O-2"], "action": "mark_shipped"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/fulfillment/batch", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var result fulfillment.BatchResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.Failed)
}

func TestServer_IngestShopeeOrder(t *testing.T) {
	st := store.NewMemoryStore()
	handler := newTestServer(t, st)

	body := strings.NewReader(`{
		"ordersn": "2403081234ABCD",
		"business_account_id": "acct-1",
		"order_status": "READY_TO_SHIP",
		"total_amount": 350000,
		"create_time": 1709900000,
		"recipient_address": {"name": "Nguyễn Văn A"},
		"item_list": [{"item_name": "Hạt điều", "quantity": 1}]
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/marketplace/shopee/orders", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestServer_IngestShopeeOrder_ValidationFailure(t *testing.T) {
	handler := newTestServer(t, store.NewMemoryStore())

	body := strings.NewReader(`{"ordersn": ""}`)
	req := httptest.NewRequest(http.MethodPost, "/api/marketplace/shopee/orders", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
