package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chihoangvnn/sunfoods-sub019/internal/fulfillment"
	"github.com/chihoangvnn/sunfoods-sub019/internal/marketplace/shopee"
	"github.com/chihoangvnn/sunfoods-sub019/internal/server"
	"github.com/chihoangvnn/sunfoods-sub019/internal/shipping"
	"github.com/chihoangvnn/sunfoods-sub019/pkg/carrier"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "sunfoods",
	Short:   "Sunfoods fulfillment - multi-carrier shipping and order fulfillment service",
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Initialize telemetry
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	metrics := initMetrics()

	tracerShutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
	} else {
		defer tracerShutdown(ctx)
	}

	// Carrier registry with all enabled carriers
	registry := initCarrierRegistry(cfg, logger)

	// Persistence
	st, err := initStore(cfg)
	if err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}

	// One orchestration service per registered carrier
	shippingServices := make(map[carrier.Provider]*shipping.Service, registry.Count())
	for _, c := range registry.All() {
		svc, err := shipping.New(c, st, logger, metrics)
		if err != nil {
			return fmt.Errorf("initializing shipping service for %s: %w", c.Name(), err)
		}
		shippingServices[c.Name()] = svc
	}

	fulfillmentService, err := fulfillment.New(fulfillment.Config{
		HighValueThreshold: cfg.HighValueThreshold,
		LowValueThreshold:  cfg.LowValueThreshold,
	}, st, fulfillment.NewSyntheticLabelGenerator(cfg.LabelCarrier), logger)
	if err != nil {
		return fmt.Errorf("initializing fulfillment service: %w", err)
	}

	ingestor, err := shopee.NewIngestor(st, logger)
	if err != nil {
		return fmt.Errorf("initializing shopee ingestor: %w", err)
	}

	logger.Info("Starting Sunfoods fulfillment service",
		zap.Int("port", cfg.Port),
		zap.String("version", cfg.Version),
		zap.Int("carriers", registry.Count()),
	)

	// Start HTTP server
	srv := server.New(server.Config{
		Port:          cfg.Port,
		DefaultSender: defaultSender(cfg),
	}, registry, shippingServices, fulfillmentService, ingestor, logger, metrics)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
