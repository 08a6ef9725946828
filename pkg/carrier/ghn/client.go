// Package ghn provides integration with the Giao Hàng Nhanh (GHN) shipping API.
package ghn

import (
	"context"
	"time"

	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const carrierName = carrier.ProviderGHN

// GHN service_type_id values.
const (
	serviceTypeExpress  = 1
	serviceTypeStandard = 2
	serviceTypeEconomy  = 5
)

// Config holds GHN configuration.
type Config struct {
	Token   string
	ShopID  string
	BaseURL string
	UseMock bool
}

// Client is the GHN carrier client.
type Client struct {
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new GHN client.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL: cfg.BaseURL,
			Token:   cfg.Token,
			ShopID:  cfg.ShopID,
			Timeout: 30 * time.Second,
		})
	}

	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// NewWithAPIClient creates a new GHN client with a custom API client.
func NewWithAPIClient(cfg Config, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// Name returns the carrier name.
func (c *Client) Name() carrier.Provider {
	return carrierName
}

// CreateOrder registers a shipment with GHN.
func (c *Client) CreateOrder(ctx context.Context, req *carrier.CreateOrderRequest) (*carrier.CreateOrderResponse, error) {
	c.logger.Info("Creating GHN order",
		zap.String("order_number", req.OrderNumber),
		zap.String("receiver", req.Receiver.Name),
		zap.Int64("cod_amount", req.Options.CODAmount),
	)

	apiResp, err := c.apiClient.CreateOrder(ctx, createRequestToAPI(req))
	if err != nil {
		c.logger.Error("GHN API error", zap.Error(err))
		return nil, err
	}

	return createDataToCarrier(apiResp), nil
}

// GetOrderStatus fetches tracking information from GHN.
func (c *Client) GetOrderStatus(ctx context.Context, trackingCode string) (*carrier.TrackingResponse, error) {
	c.logger.Info("Getting GHN order status",
		zap.String("order_code", trackingCode),
	)

	apiResp, err := c.apiClient.GetOrderDetail(ctx, trackingCode)
	if err != nil {
		c.logger.Error("GHN API error", zap.Error(err))
		return nil, err
	}

	return detailDataToCarrier(apiResp), nil
}

// CancelOrder cancels shipments with GHN.
func (c *Client) CancelOrder(ctx context.Context, req *carrier.CancelOrderRequest) (*carrier.CancelOrderResponse, error) {
	c.logger.Info("Cancelling GHN orders",
		zap.Strings("order_codes", req.OrderCodes),
		zap.String("reason", req.Reason),
	)

	apiResp, err := c.apiClient.CancelOrders(ctx, req.OrderCodes)
	if err != nil {
		c.logger.Error("GHN API error", zap.Error(err))
		return nil, err
	}

	results := make([]carrier.CancelResult, len(apiResp))
	for i, r := range apiResp {
		results[i] = carrier.CancelResult{
			OrderCode: r.OrderCode,
			Cancelled: r.Result,
			Message:   r.Message,
		}
	}
	return &carrier.CancelOrderResponse{Results: results}, nil
}

// CalculateFee fetches a fee quote from GHN.
func (c *Client) CalculateFee(ctx context.Context, req *carrier.FeeRequest) (*carrier.FeeResponse, error) {
	c.logger.Info("Calculating GHN fee",
		zap.String("to_province", req.To.Province),
		zap.Int("weight_grams", req.Parcel.WeightGrams),
	)

	apiReq := &FeeRequest{
		FromDistrictName: req.From.District,
		FromProvinceName: req.From.Province,
		ToWardName:       req.To.Ward,
		ToDistrictName:   req.To.District,
		ToProvinceName:   req.To.Province,
		Weight:           req.Parcel.WeightGrams,
		Length:           req.Parcel.LengthCM,
		Width:            req.Parcel.WidthCM,
		Height:           req.Parcel.HeightCM,
		InsuranceValue:   req.Parcel.DeclaredValue,
		CODValue:         req.Options.CODAmount,
		ServiceTypeID:    serviceTypeID(req.Options.Level),
	}

	apiResp, err := c.apiClient.CalculateFee(ctx, apiReq)
	if err != nil {
		c.logger.Error("GHN API error", zap.Error(err))
		return nil, err
	}

	return &carrier.FeeResponse{
		Carrier:  carrierName,
		TotalFee: apiResp.Total,
		Breakdown: carrier.FeeBreakdown{
			ServiceFee:   apiResp.ServiceFee,
			InsuranceFee: apiResp.InsuranceFee,
			CODFee:       apiResp.CODFee,
		},
	}, nil
}

// ============================================================================
// Conversion helpers
// ============================================================================

func createRequestToAPI(req *carrier.CreateOrderRequest) *CreateOrderRequest {
	items := make([]OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = OrderItem{
			Name:     item.Name,
			Code:     item.SKU,
			Quantity: item.Quantity,
		}
	}

	requiredNote := req.Options.RequireNote
	if requiredNote == "" {
		requiredNote = "KHONGCHOXEMHANG"
	}

	return &CreateOrderRequest{
		ClientOrderCode:  req.OrderNumber,
		PaymentTypeID:    1, // shop pays shipping
		RequiredNote:     requiredNote,
		Note:             req.Options.Note,
		FromName:         req.Sender.Name,
		FromPhone:        req.Sender.Phone,
		FromAddress:      req.Sender.Street,
		FromWardName:     req.Sender.Ward,
		FromDistrictName: req.Sender.District,
		FromProvinceName: req.Sender.Province,
		ToName:           req.Receiver.Name,
		ToPhone:          req.Receiver.Phone,
		ToAddress:        req.Receiver.Street,
		ToWardName:       req.Receiver.Ward,
		ToDistrictName:   req.Receiver.District,
		ToProvinceName:   req.Receiver.Province,
		CODAmount:        req.Options.CODAmount,
		InsuranceValue:   req.Parcel.DeclaredValue,
		Weight:           req.Parcel.WeightGrams,
		Length:           req.Parcel.LengthCM,
		Width:            req.Parcel.WidthCM,
		Height:           req.Parcel.HeightCM,
		ServiceTypeID:    serviceTypeID(req.Options.Level),
		Items:            items,
	}
}

func createDataToCarrier(data *CreateOrderData) *carrier.CreateOrderResponse {
	var expected *time.Time
	if data.ExpectedDeliveryTime != "" {
		if t, err := time.Parse(time.RFC3339, data.ExpectedDeliveryTime); err == nil {
			expected = &t
		}
	}

	return &carrier.CreateOrderResponse{
		OrderCode: data.OrderCode,
		TotalFee:  data.TotalFee,
		Breakdown: carrier.FeeBreakdown{
			ServiceFee:   data.Fee.ServiceFee,
			InsuranceFee: data.Fee.InsuranceFee,
			CODFee:       data.Fee.CODFee,
		},
		ExpectedDelivery: expected,
	}
}

func detailDataToCarrier(data *OrderDetailData) *carrier.TrackingResponse {
	events := make([]carrier.TrackingEvent, len(data.Log))
	var lastUpdate time.Time
	var lastLocation string

	// Carrier order is preserved, oldest first as GHN reports it.
	for i, entry := range data.Log {
		ts, err := time.Parse(time.RFC3339, entry.UpdatedDate)
		if err != nil {
			ts = time.Time{}
		}
		events[i] = carrier.TrackingEvent{
			Status:        MapStatus(entry.Status),
			CarrierStatus: entry.Status,
			Timestamp:     ts,
			Location:      entry.Location,
		}
		if entry.Location != "" {
			lastLocation = entry.Location
		}
		if ts.After(lastUpdate) {
			lastUpdate = ts
		}
	}

	return &carrier.TrackingResponse{
		Status:          MapStatus(data.Status),
		CarrierStatus:   data.Status,
		CurrentLocation: lastLocation,
		LastUpdate:      lastUpdate,
		Events:          events,
	}
}

func serviceTypeID(level carrier.ServiceLevel) int {
	switch level {
	case carrier.ServiceExpress:
		return serviceTypeExpress
	case carrier.ServiceEconomy:
		return serviceTypeEconomy
	default:
		return serviceTypeStandard
	}
}
