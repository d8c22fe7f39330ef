package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/emma-ortiz/OlivosVerdes-3/cart"
	"github.com/emma-ortiz/OlivosVerdes-3/catalog"
	"github.com/emma-ortiz/OlivosVerdes-3/checkout"
	"github.com/emma-ortiz/OlivosVerdes-3/middleware"
	"github.com/emma-ortiz/OlivosVerdes-3/models"
	"github.com/emma-ortiz/OlivosVerdes-3/routes"
	"github.com/emma-ortiz/OlivosVerdes-3/session"
)

func main() {
	log.Println("✅ Starting Olivos Verdes storefront...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.DeliveryProfile{},
		&models.Category{},
		&models.Product{},
		&models.Promotion{},
		&models.Order{},
		&models.OrderLine{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Session store (carts live here, keyed by the session cookie)
	sessions := session.NewRedisStore(initRedis())

	// Core services
	cat := catalog.New(db)
	carts := cart.NewManager(sessions, cat, shippingCost())
	checkoutSvc := checkout.NewService(carts, cat, checkout.NewProfileStore(db), checkout.NewOrderStore(db))

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Every visitor gets a session id; carts work without a login
	r.Use(middleware.EnsureSession)

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		DB:       db,
		Catalog:  cat,
		Carts:    carts,
		Checkout: checkoutSvc,
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// initRedis sets up the client backing the session store
func initRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
}

// shippingCost reads the flat delivery charge, defaulting to 40.00
func shippingCost() decimal.Decimal {
	raw := os.Getenv("SHIPPING_COST")
	if raw == "" {
		return decimal.RequireFromString("40.00")
	}
	cost, err := decimal.NewFromString(raw)
	if err != nil {
		log.Fatalf("❌ Invalid SHIPPING_COST %q: %v", raw, err)
	}
	return cost
}
