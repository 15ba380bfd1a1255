package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catalog-service/config"
	"catalog-service/handlers"
	"catalog-service/logging"
	"catalog-service/rabbitmq"
	"catalog-service/store"
	"catalog-service/tracing"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Set Gin mode based on environment
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.TracingEnabled {
		exporter, err := tracing.NewWriterExporter(os.Stdout)
		if err != nil {
			logger.Fatal("Failed to create trace exporter", zap.Error(err))
		}
		provider := tracing.NewProvider(handlers.ServiceName, exporter)
		defer func() {
			if err := provider.Shutdown(context.Background()); err != nil {
				logger.Warn("Failed to shut down tracer provider", zap.Error(err))
			}
		}()
	}

	var publisher handlers.EventPublisher = rabbitmq.NoopPublisher{}
	if cfg.EventsEnabled() {
		channelPool, err := rabbitmq.NewChannelPool(cfg.RabbitMQURL, cfg.RabbitMQQueue, cfg.ChannelPoolSize, logger)
		if err != nil {
			logger.Fatal("Failed to create RabbitMQ channel pool", zap.Error(err))
		}
		defer channelPool.Close()
		publisher = rabbitmq.NewPublisher(channelPool, cfg.RabbitMQQueue, logger)
	} else {
		logger.Info("RABBITMQ_URL not set, change events are disabled")
	}

	productStore := store.NewProductStore(cfg.DataFile, logger)
	orderStore := store.NewOrderStore(cfg.OrdersFile, logger)

	router := handlers.NewRouter(handlers.RouterConfig{
		Logger:         logger,
		Products:       handlers.NewProductHandler(productStore, publisher, logger),
		Orders:         handlers.NewOrderHandler(orderStore, publisher, logger),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting Catalog Service",
			zap.String("port", cfg.Port),
			zap.String("data_file", cfg.DataFile),
			zap.String("orders_file", cfg.OrdersFile))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info("Received shutdown signal, draining requests")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}

	logger.Info("Catalog Service shut down gracefully")
}
