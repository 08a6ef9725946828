package main

import (
	"context"

	"github.com/chihoangvnn/sunfoods-sub019/internal/config"
	"github.com/chihoangvnn/sunfoods-sub019/internal/store"
	"github.com/chihoangvnn/sunfoods-sub019/internal/telemetry"
	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier"
	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier/ghn"
	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier/ghtk"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// dataStore is the combined persistence surface the services share.
type dataStore interface {
	store.VendorOrderStore
	store.ShopeeOrderStore
}

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initMetrics() *telemetry.Metrics {
	return telemetry.NewMetrics()
}

func initTracer(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return func(context.Context) error { return nil }, nil
	}

	_, shutdown, err := telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
	return shutdown, err
}

func initStore(cfg *config.Config) (dataStore, error) {
	if cfg.UseMemoryDB || cfg.DatabaseURL == "" {
		return store.NewMemoryStore(), nil
	}
	return store.Open(cfg.DatabaseURL)
}

func initCarrierRegistry(cfg *config.Config, logger *otelzap.Logger) *carrier.Registry {
	registry := carrier.NewRegistry()

	var tracer trace.Tracer
	if cfg.OTELEnabled {
		tracer = otel.GetTracerProvider().Tracer(cfg.ServiceName)
	}

	// Register enabled carriers
	if cfg.GHNEnabled {
		registry.Register(ghn.New(ghn.Config{
			Token:   cfg.GHNToken,
			ShopID:  cfg.GHNShopID,
			BaseURL: cfg.GHNBaseURL,
			UseMock: cfg.GHNUseMock,
		}, logger, tracer))
	}

	if cfg.GHTKEnabled {
		registry.Register(ghtk.New(ghtk.Config{
			Token:   cfg.GHTKToken,
			BaseURL: cfg.GHTKBaseURL,
			UseMock: cfg.GHTKUseMock,
		}, logger, tracer))
	}

	return registry
}

func defaultSender(cfg *config.Config) carrier.Address {
	return carrier.Address{
		Name:     cfg.SenderName,
		Phone:    cfg.SenderPhone,
		Street:   cfg.SenderStreet,
		Ward:     cfg.SenderWard,
		District: cfg.SenderDistrict,
		Province: cfg.SenderProvince,
	}
}
