package config

import (
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zerontec/rork-nexusdelivery-sub001/models"
)

var DB *gorm.DB

// Redis backs the realtime change feed.
var Redis *redis.Client

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "nexus_delivery_super_secret_2024"))

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// DatabasePath returns the sqlite file backing the service.
func DatabasePath() string {
	return getEnv("DATABASE_PATH", "nexus_delivery.db")
}

// RedisAddr returns the address of the redis instance carrying change events.
func RedisAddr() string {
	return getEnv("REDIS_ADDR", "localhost:6379")
}

// KafkaBrokers returns the broker list for the order event topic.
func KafkaBrokers() string {
	return getEnv("KAFKA_BROKERS", "localhost:9092")
}

func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(DatabasePath()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.Profile{},
		&models.Business{},
		&models.Product{},
		&models.Driver{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated")
}

func InitRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr: RedisAddr(),
	})
}
