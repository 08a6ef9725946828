// Package ghtk provides integration with the Giao Hàng Tiết Kiệm (GHTK) shipping API.
package ghtk

import (
	"context"
	"strconv"
	"time"

	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const carrierName = carrier.ProviderGHTK

// ghtkTimeLayout is the timestamp format GHTK uses in status responses.
const ghtkTimeLayout = "2006-01-02 15:04:05"

// Config holds GHTK configuration.
type Config struct {
	Token   string
	BaseURL string
	UseMock bool
}

// Client is the GHTK carrier client.
type Client struct {
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new GHTK client.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL: cfg.BaseURL,
			Token:   cfg.Token,
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

// NewWithAPIClient creates a new GHTK client with a custom API client.
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

// CreateOrder registers a shipment with GHTK.
func (c *Client) CreateOrder(ctx context.Context, req *carrier.CreateOrderRequest) (*carrier.CreateOrderResponse, error) {
	c.logger.Info("Creating GHTK order",
		zap.String("order_number", req.OrderNumber),
		zap.String("receiver", req.Receiver.Name),
		zap.Int64("pick_money", req.Options.CODAmount),
	)

	apiResp, err := c.apiClient.CreateOrder(ctx, createRequestToAPI(req))
	if err != nil {
		c.logger.Error("GHTK API error", zap.Error(err))
		return nil, err
	}

	return &carrier.CreateOrderResponse{
		OrderCode: apiResp.Label,
		TotalFee:  apiResp.Fee + apiResp.InsuranceFee,
		Breakdown: carrier.FeeBreakdown{
			ServiceFee:   apiResp.Fee,
			InsuranceFee: apiResp.InsuranceFee,
		},
		ExpectedDelivery: parseEstimate(apiResp.EstimatedDeliverTime),
	}, nil
}

// GetOrderStatus fetches tracking information from GHTK.
// GHTK exposes only the current state, not a full log, so the returned
// history holds a single event for the latest state.
func (c *Client) GetOrderStatus(ctx context.Context, trackingCode string) (*carrier.TrackingResponse, error) {
	c.logger.Info("Getting GHTK order status",
		zap.String("label", trackingCode),
	)

	apiResp, err := c.apiClient.GetOrderStatus(ctx, trackingCode)
	if err != nil {
		c.logger.Error("GHTK API error", zap.Error(err))
		return nil, err
	}

	code := strconv.Itoa(apiResp.Status)
	status := MapStatus(code)

	var lastUpdate time.Time
	if apiResp.Modified != "" {
		if t, err := time.Parse(ghtkTimeLayout, apiResp.Modified); err == nil {
			lastUpdate = t
		}
	}

	return &carrier.TrackingResponse{
		Status:        status,
		CarrierStatus: code,
		LastUpdate:    lastUpdate,
		Events: []carrier.TrackingEvent{
			{
				Status:        status,
				CarrierStatus: code,
				Timestamp:     lastUpdate,
				Location:      apiResp.StatusText,
			},
		},
	}, nil
}

// CancelOrder cancels shipments with GHTK. The GHTK API cancels one label
// per call, so labels are cancelled sequentially with per-label results.
func (c *Client) CancelOrder(ctx context.Context, req *carrier.CancelOrderRequest) (*carrier.CancelOrderResponse, error) {
	c.logger.Info("Cancelling GHTK orders",
		zap.Strings("labels", req.OrderCodes),
		zap.String("reason", req.Reason),
	)

	results := make([]carrier.CancelResult, len(req.OrderCodes))
	for i, label := range req.OrderCodes {
		err := c.apiClient.CancelOrder(ctx, label)
		results[i] = carrier.CancelResult{
			OrderCode: label,
			Cancelled: err == nil,
		}
		if err != nil {
			c.logger.Error("GHTK cancel failed", zap.String("label", label), zap.Error(err))
			results[i].Message = err.Error()
		}
	}
	return &carrier.CancelOrderResponse{Results: results}, nil
}

// CalculateFee fetches a fee quote from GHTK.
func (c *Client) CalculateFee(ctx context.Context, req *carrier.FeeRequest) (*carrier.FeeResponse, error) {
	c.logger.Info("Calculating GHTK fee",
		zap.String("province", req.To.Province),
		zap.Int("weight_grams", req.Parcel.WeightGrams),
	)

	apiReq := &FeeRequest{
		PickProvince: req.From.Province,
		PickDistrict: req.From.District,
		Province:     req.To.Province,
		District:     req.To.District,
		Ward:         req.To.Ward,
		Address:      req.To.Street,
		Weight:       req.Parcel.WeightGrams,
		Value:        req.Parcel.DeclaredValue,
		Transport:    transport(req.Options.Level),
	}

	apiResp, err := c.apiClient.CalculateFee(ctx, apiReq)
	if err != nil {
		c.logger.Error("GHTK API error", zap.Error(err))
		return nil, err
	}

	return &carrier.FeeResponse{
		Carrier:  carrierName,
		TotalFee: apiResp.Fee + apiResp.InsuranceFee,
		Breakdown: carrier.FeeBreakdown{
			ServiceFee:   apiResp.Fee,
			InsuranceFee: apiResp.InsuranceFee,
		},
	}, nil
}

// ============================================================================
// Conversion helpers
// ============================================================================

func createRequestToAPI(req *carrier.CreateOrderRequest) *CreateOrderRequest {
	products := make([]Product, len(req.Items))
	perItemWeight := float64(req.Parcel.WeightGrams) / 1000
	if len(req.Items) > 0 {
		perItemWeight = perItemWeight / float64(len(req.Items))
	}
	for i, item := range req.Items {
		products[i] = Product{
			Name:        item.Name,
			Weight:      perItemWeight,
			Quantity:    item.Quantity,
			ProductCode: item.SKU,
		}
	}

	freeship := 0
	if req.Options.CODAmount == 0 {
		freeship = 1
	}

	return &CreateOrderRequest{
		Products: products,
		Order: OrderInfo{
			ID:           req.OrderNumber,
			PickName:     req.Sender.Name,
			PickAddress:  req.Sender.Street,
			PickProvince: req.Sender.Province,
			PickDistrict: req.Sender.District,
			PickWard:     req.Sender.Ward,
			PickTel:      req.Sender.Phone,
			Name:         req.Receiver.Name,
			Address:      req.Receiver.Street,
			Province:     req.Receiver.Province,
			District:     req.Receiver.District,
			Ward:         req.Receiver.Ward,
			Hamlet:       "Khác",
			Tel:          req.Receiver.Phone,
			Note:         req.Options.Note,
			IsFreeship:   freeship,
			PickMoney:    req.Options.CODAmount,
			Value:        req.Parcel.DeclaredValue,
			Transport:    transport(req.Options.Level),
		},
	}
}

// parseEstimate extracts the date from GHTK estimates like
// "Chiều 2024-03-08". The leading time-of-day word is advisory only.
func parseEstimate(s string) *time.Time {
	if len(s) < 10 {
		return nil
	}
	if t, err := time.Parse("2006-01-02", s[len(s)-10:]); err == nil {
		return &t
	}
	return nil
}

func transport(level carrier.ServiceLevel) string {
	if level == carrier.ServiceExpress {
		return "fly"
	}
	return "road"
}
