package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/chihoangvnn/sunfoods-sub019/internal/fulfillment"
	"github.com/chihoangvnn/sunfoods-sub019/internal/marketplace/shopee"
	"github.com/chihoangvnn/sunfoods-sub019/internal/shipping"
	"github.com/chihoangvnn/sunfoods-sub019/internal/telemetry"
	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Server is the HTTP server exposing the shipping and fulfillment services.
type Server struct {
	port          int
	defaultSender carrier.Address
	registry      *carrier.Registry
	shipping      map[carrier.Provider]*shipping.Service
	fulfillment   *fulfillment.Service
	ingestor      *shopee.Ingestor
	logger        *otelzap.Logger
	metrics       *telemetry.Metrics
}

// Config holds server configuration.
type Config struct {
	Port int
	// DefaultSender is the shipping origin used when a create request does
	// not carry its own sender block.
	DefaultSender carrier.Address
}

// New creates a new server instance.
func New(
	cfg Config,
	registry *carrier.Registry,
	shippingServices map[carrier.Provider]*shipping.Service,
	fulfillmentService *fulfillment.Service,
	ingestor *shopee.Ingestor,
	logger *otelzap.Logger,
	metrics *telemetry.Metrics,
) *Server {
	return &Server{
		port:          cfg.Port,
		defaultSender: cfg.DefaultSender,
		registry:      registry,
		shipping:      shippingServices,
		fulfillment:   fulfillmentService,
		ingestor:      ingestor,
		logger:        logger,
		metrics:       metrics,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", s.handleHealth)

	// Prometheus metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	// Shipping operations, one route family per carrier
	mux.HandleFunc("POST /api/shipping/{carrier}/orders", s.handleCreateShippingOrder)
	mux.HandleFunc("POST /api/shipping/{carrier}/track", s.handleTrackOrder)
	mux.HandleFunc("POST /api/shipping/{carrier}/cancel", s.handleCancelOrder)
	mux.HandleFunc("POST /api/shipping/{carrier}/fee", s.handleCalculateFee)
	mux.HandleFunc("POST /api/shipping/fees/compare", s.handleCompareFees)

	// Fulfillment queue
	mux.HandleFunc("GET /api/fulfillment/{account}/queue", s.handleFulfillmentQueue)
	mux.HandleFunc("GET /api/fulfillment/{account}/stats", s.handleFulfillmentStats)
	mux.HandleFunc("POST /api/fulfillment/tasks/{id}/status", s.handleUpdateTaskStatus)
	mux.HandleFunc("POST /api/fulfillment/tasks/{id}/label", s.handleGenerateLabel)
	mux.HandleFunc("POST /api/fulfillment/batch", s.handleBatchProcess)

	// Marketplace ingestion
	mux.HandleFunc("POST /api/marketplace/shopee/orders", s.handleIngestShopeeOrder)

	return mux
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// shippingService resolves the orchestration service for a carrier path
// segment.
func (s *Server) shippingService(r *http.Request) (*shipping.Service, error) {
	name := carrier.Provider(r.PathValue("carrier"))
	svc, ok := s.shipping[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", carrier.ErrCarrierNotFound, name)
	}
	return svc, nil
}
