package ghn

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnCreateOrder    func(ctx context.Context, req *CreateOrderRequest) (*CreateOrderData, error)
	OnGetOrderDetail func(ctx context.Context, orderCode string) (*OrderDetailData, error)
	OnCancelOrders   func(ctx context.Context, orderCodes []string) ([]CancelResultData, error)
	OnCalculateFee   func(ctx context.Context, req *FeeRequest) (*FeeData, error)
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

func (m *MockAPIClient) simulate() error {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}
	if m.SimulateErrors {
		return &APIError{Code: 400, Message: "Simulated API error"}
	}
	return nil
}

// CreateOrder returns a mock create response.
func (m *MockAPIClient) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderData, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnCreateOrder != nil {
		return m.OnCreateOrder(ctx, req)
	}

	return &CreateOrderData{
		OrderCode:            "GHN" + uuid.New().String()[:8],
		SortCode:             "19-01-02",
		TotalFee:             30000,
		ExpectedDeliveryTime: time.Now().AddDate(0, 0, 3).Format(time.RFC3339),
		Fee: FeeData{
			Total:        30000,
			ServiceFee:   27500,
			InsuranceFee: 2500,
		},
	}, nil
}

// GetOrderDetail returns a mock tracking response.
func (m *MockAPIClient) GetOrderDetail(ctx context.Context, orderCode string) (*OrderDetailData, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnGetOrderDetail != nil {
		return m.OnGetOrderDetail(ctx, orderCode)
	}

	now := time.Now()
	return &OrderDetailData{
		OrderCode: orderCode,
		Status:    "delivering",
		Leadtime:  now.AddDate(0, 0, 1).Format(time.RFC3339),
		Log: []LogEntry{
			{Status: "ready_to_pick", UpdatedDate: now.Add(-48 * time.Hour).Format(time.RFC3339), Location: "Kho Quận 1"},
			{Status: "picked", UpdatedDate: now.Add(-36 * time.Hour).Format(time.RFC3339), Location: "Kho Quận 1"},
			{Status: "transporting", UpdatedDate: now.Add(-24 * time.Hour).Format(time.RFC3339), Location: "Kho trung chuyển Đà Nẵng"},
			{Status: "delivering", UpdatedDate: now.Add(-2 * time.Hour).Format(time.RFC3339), Location: "Bưu cục Hải Châu"},
		},
	}, nil
}

// CancelOrders returns a mock cancellation response.
func (m *MockAPIClient) CancelOrders(ctx context.Context, orderCodes []string) ([]CancelResultData, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnCancelOrders != nil {
		return m.OnCancelOrders(ctx, orderCodes)
	}

	results := make([]CancelResultData, len(orderCodes))
	for i, code := range orderCodes {
		results[i] = CancelResultData{OrderCode: code, Result: true}
	}
	return results, nil
}

// CalculateFee returns a mock fee quote.
func (m *MockAPIClient) CalculateFee(ctx context.Context, req *FeeRequest) (*FeeData, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnCalculateFee != nil {
		return m.OnCalculateFee(ctx, req)
	}

	return &FeeData{
		Total:        25000,
		ServiceFee:   22000,
		InsuranceFee: 3000,
	}, nil
}
