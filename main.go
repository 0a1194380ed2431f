package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/zerontec/rork-nexusdelivery-sub001/config"
	"github.com/zerontec/rork-nexusdelivery-sub001/events"
	"github.com/zerontec/rork-nexusdelivery-sub001/handlers"
	"github.com/zerontec/rork-nexusdelivery-sub001/notifier"
	"github.com/zerontec/rork-nexusdelivery-sub001/realtime"
	"github.com/zerontec/rork-nexusdelivery-sub001/routes"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Initialize database and realtime transport
	config.InitDB()
	config.InitRedis()

	feed := realtime.NewPublisher(config.Redis, logger.With().Str("component", "realtime").Logger())
	producer := events.NewProducer(config.KafkaBrokers(), logger.With().Str("component", "events").Logger())
	handlers.Init(feed, producer, logger.With().Str("component", "handlers").Logger())

	// Notifier turns order events into per-user notifications
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	consumer := events.NewConsumer(config.KafkaBrokers(), "notifier", logger.With().Str("component", "notifier").Logger())
	n := notifier.New(config.DB, feed, logger.With().Str("component", "notifier").Logger())
	go consumer.Run(ctx, n.HandleOrderEvent)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for the mobile client and admin console
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "NexusDelivery API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the NexusDelivery API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"client", "business", "driver", "admin"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
