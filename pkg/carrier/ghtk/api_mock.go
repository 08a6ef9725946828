package ghtk

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnCreateOrder    func(ctx context.Context, req *CreateOrderRequest) (*OrderData, error)
	OnGetOrderStatus func(ctx context.Context, label string) (*StatusData, error)
	OnCancelOrder    func(ctx context.Context, label string) error
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
		return &APIError{Message: "Simulated API error"}
	}
	return nil
}

// CreateOrder returns a mock create response.
func (m *MockAPIClient) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderData, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnCreateOrder != nil {
		return m.OnCreateOrder(ctx, req)
	}

	return &OrderData{
		Label:                "S1.A1." + uuid.New().String()[:8],
		PartnerID:            req.Order.ID,
		Fee:                  28000,
		InsuranceFee:         2000,
		EstimatedPickTime:    "Sáng " + time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		EstimatedDeliverTime: "Chiều " + time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
	}, nil
}

// GetOrderStatus returns a mock status response.
func (m *MockAPIClient) GetOrderStatus(ctx context.Context, label string) (*StatusData, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnGetOrderStatus != nil {
		return m.OnGetOrderStatus(ctx, label)
	}

	now := time.Now()
	return &StatusData{
		LabelID:    label,
		Status:     4,
		StatusText: "Đã điều phối giao hàng/Đang giao hàng",
		Created:    now.Add(-48 * time.Hour).Format("2006-01-02 15:04:05"),
		Modified:   now.Add(-1 * time.Hour).Format("2006-01-02 15:04:05"),
		PickDate:   now.Add(-36 * time.Hour).Format("2006-01-02"),
	}, nil
}

// CancelOrder returns a mock cancellation response.
func (m *MockAPIClient) CancelOrder(ctx context.Context, label string) error {
	if err := m.simulate(); err != nil {
		return err
	}
	if m.OnCancelOrder != nil {
		return m.OnCancelOrder(ctx, label)
	}
	if label == "" {
		return &APIError{Message: fmt.Sprintf("label %q not found", label)}
	}
	return nil
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
		Name:         "area1",
		Fee:          22000,
		InsuranceFee: 1500,
		IncludeVAT:   true,
		Delivery:     true,
	}, nil
}
