package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"tablepay/internal/auth"
	"tablepay/internal/config"
	"tablepay/internal/gateway"
	"tablepay/internal/handlers"
	"tablepay/internal/kafka"
	"tablepay/internal/logger"
	"tablepay/internal/middleware"
	rediswrap "tablepay/internal/redis"
	"tablepay/internal/services"
	"tablepay/internal/storage"

	"github.com/gin-gonic/gin"
)

// Global logger instance
var log *logger.Logger

func main() {
	log = logger.NewLogger()
	defer log.Close()

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn("ENV", "Error loading .env file, using environment variables")
	}

	log.LogProcess("STARTUP", "Pay-at-table service starting up...")

	cfg := config.Load()
	log.Info("CONFIG", "Configuration loaded successfully")

	log.LogProcess("DATABASE", "Initializing MySQL database...")
	store, err := storage.NewMySQLStore(cfg.Database, log)
	if err != nil {
		log.Fatal("DATABASE", "Failed to initialize MySQL: "+err.Error())
	}
	defer store.Close()
	log.LogDatabase("INIT", "mysql", "MySQL storage initialized successfully")

	log.LogProcess("KAFKA", "Initializing Kafka producer...")
	kafkaProducer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.MockMode, log)
	if err != nil {
		log.Fatal("KAFKA", "Failed to create Kafka producer: "+err.Error())
	}
	defer kafkaProducer.Close()
	log.LogKafka("INIT", "producer", "Kafka producer initialized successfully")

	log.LogProcess("KAFKA", "Initializing Kafka consumer...")
	kafkaConsumer, err := kafka.NewOrderConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		log.Fatal("KAFKA", "Failed to create Kafka consumer: "+err.Error())
	}
	defer kafkaConsumer.Close()
	log.LogKafka("INIT", "consumer", "Kafka consumer initialized successfully")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	settlementLock := rediswrap.NewLock(redisClient)
	log.LogProcess("SERVICE", "Redis settlement lock initialized")

	mockGateway := gateway.New(gateway.Config{
		Currency:          cfg.Gateway.DefaultCurrency,
		CardFailureRate:   cfg.Gateway.CardFailureRate,
		WalletFailureRate: cfg.Gateway.WalletFailureRate,
		Latency:           cfg.Gateway.SimulatedLatency,
	}, log)
	log.LogProcess("GATEWAY", "Mock payment gateway initialized")

	tokenService := auth.NewTokenService(cfg.Auth)

	// Initialize services
	paymentService := services.NewPaymentService(store, kafkaProducer, log, settlementLock, cfg.Gateway)
	gatewayService := services.NewGatewayService(mockGateway, paymentService, log)
	restaurantService := services.NewRestaurantService(store, log)
	log.LogProcess("SERVICE", "All services initialized")

	// Initialize handlers
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	gatewayHandler := handlers.NewGatewayHandler(gatewayService)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService)
	authHandler := handlers.NewAuthHandler(tokenService)
	log.LogProcess("HANDLER", "All handlers initialized")

	// Start Kafka consumer in background
	go func() {
		log.LogKafka("START", "consumer", "Starting Kafka consumer goroutine")
		if err := kafkaConsumer.ConsumeOrders(context.Background(), paymentService.ProcessOrderEvent); err != nil {
			log.Error("KAFKA", "Consumer error: "+err.Error())
		}
	}()

	router := setupRouter(paymentHandler, gatewayHandler, restaurantHandler, authHandler, tokenService)
	log.LogProcess("ROUTER", "HTTP router configured")

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.LogProcess("SERVER", "Starting HTTP server on port "+cfg.Server.Port)
		log.Info("STARTUP", "Pay-at-table service is ready to accept requests")
		log.Info("STARTUP", "Health check available at: http://localhost"+cfg.Server.Port+"/health")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", "Server failed to start: "+err.Error())
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Warn("SHUTDOWN", "Received shutdown signal, initiating graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("SHUTDOWN", "Server forced to shutdown: "+err.Error())
	}

	log.Info("SHUTDOWN", "Pay-at-table service shutdown completed")
}

func setupRouter(
	paymentHandler *handlers.PaymentHandler,
	gatewayHandler *handlers.GatewayHandler,
	restaurantHandler *handlers.RestaurantHandler,
	authHandler *handlers.AuthHandler,
	tokenService *auth.TokenService,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.EnhancedLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimit(log))
	router.Use(middleware.SecurityHeaders(log))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
			"service":   "tablepay",
			"version":   "1.0.0",
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Customer-facing QR lookups
		v1.GET("/menu/:qrCode", restaurantHandler.Menu)
		v1.GET("/tables/:qrCode", restaurantHandler.TableSession)

		// Split payment lifecycle
		payments := v1.Group("/payments")
		{
			payments.POST("/create-link", paymentHandler.CreateLink)
			payments.POST("/complete", paymentHandler.CompleteSplit)
			payments.GET("/check", paymentHandler.CheckPayment)
			payments.GET("/:id/splits", paymentHandler.ListSplits)
			payments.POST("/webhook", paymentHandler.Webhook)
		}

		// Gateway charge flow
		gw := v1.Group("/gateway")
		{
			gw.POST("/process", gatewayHandler.ProcessPayment)
			gw.POST("/validate-card", gatewayHandler.ValidateCard)
			gw.GET("/status/:transactionId", gatewayHandler.CheckStatus)
		}

		// Merchant auth and dashboard
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/verify", authHandler.Verify)
		}

		merchant := v1.Group("/merchant")
		merchant.Use(middleware.RequireAuth(tokenService, log))
		{
			merchant.GET("/restaurant", restaurantHandler.MerchantRestaurant)
			merchant.GET("/tables", restaurantHandler.MerchantTables)
			merchant.GET("/orders", restaurantHandler.MerchantOrders)
		}
	}

	log.LogProcess("ROUTER", "All routes registered successfully")
	return router
}
