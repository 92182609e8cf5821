package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	zanders "github.com/ammoready/zanders-go"
	"github.com/ammoready/zanders-go/config"
	"github.com/ammoready/zanders-go/logger"
	"github.com/ammoready/zanders-go/soap"
)

const defaultChunkSize = 100

func main() {
	// Parse flags
	var (
		username string
		password string
		logLevel string
		timeout  time.Duration
	)

	flag.StringVar(&username, "username", os.Getenv("ZANDERS_USERNAME"), "Vendor account username")
	flag.StringVar(&password, "password", os.Getenv("ZANDERS_PASSWORD"), "Vendor account password")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.DurationVar(&timeout, "timeout", 2*time.Minute, "Overall command timeout")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	creds := zanders.Credentials{Username: username, Password: password}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	switch command {
	case "catalog":
		runCatalog(ctx, log, cfg, creds)
	case "order":
		runOrder(ctx, log, cfg, creds, args[1:])
	case "tracking":
		runTracking(ctx, log, cfg, creds, args[1:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func runCatalog(ctx context.Context, log *zap.Logger, cfg *config.Config, creds zanders.Credentials) {
	catalog, err := zanders.NewCatalog(creds, cfg, zanders.WithCatalogLogger(log))
	if err != nil {
		log.Fatal("Failed to create catalog reader", zap.Error(err))
	}

	var total int
	err = catalog.Each(ctx, defaultChunkSize, func(items []zanders.CatalogItem) error {
		total += len(items)
		return nil
	})
	if err != nil {
		log.Fatal("Catalog download failed", zap.Error(err))
	}

	log.Info("Catalog downloaded", zap.Int("items", total))
}

func runOrder(ctx context.Context, log *zap.Logger, cfg *config.Config, creds zanders.Credentials, args []string) {
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	orderNumber := args[0]

	orders := newOrderService(log, cfg, creds)

	info, err := orders.GetOrder(ctx, orderNumber)
	if err != nil {
		log.Fatal("Order lookup failed", zap.Error(err))
	}
	if !info.Success {
		log.Fatal("Vendor rejected the request",
			zap.String("error_code", info.ErrorCode.String()),
			zap.String("message", info.ErrorCode.Message()))
	}

	fmt.Printf("Order %s\n", info.OrderNumber)
	fmt.Printf("  Purchase order: %s\n", info.PurchaseOrderNumber)
	fmt.Printf("  Ordered:        %s\n", info.OrderDate)
	fmt.Printf("  Ships:          %s\n", info.OrderShipDate)
	fmt.Printf("  Subtotal:       %s\n", info.Subtotal.StringFixed(2))
	fmt.Printf("  Freight:        %s\n", info.Freight.StringFixed(2))
	fmt.Printf("  Grand total:    %s\n", info.GrandTotal.StringFixed(2))
}

func runTracking(ctx context.Context, log *zap.Logger, cfg *config.Config, creds zanders.Credentials, args []string) {
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	orderNumber := args[0]

	orders := newOrderService(log, cfg, creds)

	info, err := orders.GetTrackingInfo(ctx, orderNumber)
	if err != nil {
		log.Fatal("Tracking lookup failed", zap.Error(err))
	}
	if !info.Success {
		if info.ErrorMessage != "" {
			log.Warn(info.ErrorMessage, zap.String("order_number", orderNumber))
			return
		}
		log.Fatal("Vendor rejected the request",
			zap.String("error_code", info.ErrorCode.String()),
			zap.String("message", info.ErrorCode.Message()))
	}

	fmt.Printf("Shipment for order %s\n", orderNumber)
	fmt.Printf("  Carrier:  %s (%s)\n", info.Company, info.Via)
	fmt.Printf("  Tracking: %s\n", info.TrackingNumber)
	fmt.Printf("  Weight:   %s\n", info.Weight)
	fmt.Printf("  URL:      %s\n", info.URL)
}

func newOrderService(log *zap.Logger, cfg *config.Config, creds zanders.Credentials) *zanders.OrderService {
	orderClient := soap.NewClient(cfg.Endpoints.OrderURL,
		soap.WithLogger(log), soap.WithDebug(cfg.Debug))
	addressClient := soap.NewClient(cfg.Endpoints.AddressURL,
		soap.WithLogger(log), soap.WithDebug(cfg.Debug))

	addresses, err := zanders.NewAddressService(creds, addressClient, zanders.WithAddressLogger(log))
	if err != nil {
		log.Fatal("Failed to create address service", zap.Error(err))
	}

	orders, err := zanders.NewOrderService(creds, orderClient, addresses, zanders.WithOrderLogger(log))
	if err != nil {
		log.Fatal("Failed to create order service", zap.Error(err))
	}

	return orders
}

func printUsage() {
	fmt.Println("Usage: zandersctl [flags] <command> [args]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  catalog              Download the inventory catalog and report the item count")
	fmt.Println("  order <number>       Show vendor state for an order")
	fmt.Println("  tracking <number>    Show shipment tracking for an order")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
