package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"80"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL"`
	UseMemoryDB bool   `envconfig:"USE_MEMORY_DB" default:"false"`

	// GHN (Giao Hàng Nhanh)
	GHNToken   string `envconfig:"GHN_TOKEN"`
	GHNShopID  string `envconfig:"GHN_SHOP_ID"`
	GHNBaseURL string `envconfig:"GHN_BASE_URL" default:"https://online-gateway.ghn.vn/shiip/public-api"`
	GHNEnabled bool   `envconfig:"GHN_ENABLED" default:"true"`
	GHNUseMock bool   `envconfig:"GHN_USE_MOCK" default:"false"`

	// GHTK (Giao Hàng Tiết Kiệm)
	GHTKToken   string `envconfig:"GHTK_TOKEN"`
	GHTKBaseURL string `envconfig:"GHTK_BASE_URL" default:"https://services.giaohangtietkiem.vn"`
	GHTKEnabled bool   `envconfig:"GHTK_ENABLED" default:"true"`
	GHTKUseMock bool   `envconfig:"GHTK_USE_MOCK" default:"false"`

	// Sender (shipping origin used when the caller does not supply one)
	SenderName     string `envconfig:"SENDER_NAME"`
	SenderPhone    string `envconfig:"SENDER_PHONE"`
	SenderStreet   string `envconfig:"SENDER_STREET"`
	SenderWard     string `envconfig:"SENDER_WARD"`
	SenderDistrict string `envconfig:"SENDER_DISTRICT"`
	SenderProvince string `envconfig:"SENDER_PROVINCE"`

	// Fulfillment
	HighValueThreshold int64  `envconfig:"FULFILLMENT_HIGH_VALUE_VND" default:"1000000"`
	LowValueThreshold  int64  `envconfig:"FULFILLMENT_LOW_VALUE_VND" default:"100000"`
	LabelCarrier       string `envconfig:"FULFILLMENT_LABEL_CARRIER" default:"ghn"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"true"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://jaeger-collector.observability.svc.cluster.local:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"sunfoods-fulfillment"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Bool("ghn.enabled", c.GHNEnabled),
		attribute.Bool("ghtk.enabled", c.GHTKEnabled),
	}
}
