package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/tanu42012/zap-shift-server/internal/database"
	"github.com/tanu42012/zap-shift-server/internal/handlers"
	"github.com/tanu42012/zap-shift-server/internal/middleware"
	"github.com/tanu42012/zap-shift-server/internal/services"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Get underlying SQL DB instance
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Redis is optional; the role cache degrades to direct lookups
	if err := services.InitRedis(); err != nil {
		log.Printf("Redis initialization warning: %v", err)
	}

	// Firebase is optional; local JWTs are accepted when it is not configured
	if err := services.InitFirebase(); err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	if err := services.InitStripe(); err != nil {
		log.Fatalf("Failed to initialize Stripe: %v", err)
	}

	// Tracking feed hub
	hub := services.NewHub()
	go hub.Run()

	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	registerRoutes(r, db, hub)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func registerRoutes(r *gin.Engine, db *gorm.DB, hub *services.Hub) {
	r.GET("/", func(c *gin.Context) {
		c.String(200, "Parcel server is running")
	})

	// User routes
	r.POST("/users", handlers.CreateUser(db))
	r.GET("/users/:email/role", handlers.GetUserRole(db))
	r.GET("/users/search", handlers.SearchUsers(db))
	r.PATCH("/users/:id/role", middleware.RequireAuth(), middleware.RequireAdmin(db), handlers.UpdateUserRole(db))

	// Parcel routes
	r.GET("/parcels", handlers.GetParcels(db))
	r.GET("/parcels/:id", handlers.GetParcelByID(db))
	r.POST("/parcels", handlers.CreateParcel(db))
	r.DELETE("/parcels/:id", handlers.DeleteParcel(db))
	r.PATCH("/parcels/:id/assign-rider", handlers.AssignRider(db, hub))

	// Rider routes
	r.POST("/riders", handlers.CreateRider(db))
	r.GET("/riders/available", handlers.GetAvailableRiders(db))
	r.GET("/riders/pending", handlers.GetPendingRiders(db))
	r.GET("/riders/approved", handlers.GetApprovedRiders(db))
	r.PATCH("/riders/:id", handlers.UpdateRiderStatus(db))

	// Tracking routes
	r.POST("/tracking", handlers.CreateTrackingEvent(db, hub))
	r.GET("/tracking/:trackingId", handlers.GetTrackingEvents(db))
	r.GET("/tracking/:trackingId/ws", handlers.TrackingWebSocket(hub))

	// Payment routes
	r.GET("/payments", handlers.GetPayments(db))
	r.POST("/payments", handlers.RecordPayment(db))
	r.POST("/create-payment-intent", handlers.CreatePaymentIntent())
}
