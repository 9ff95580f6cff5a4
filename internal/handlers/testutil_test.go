package handlers

import (
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tanu42012/zap-shift-server/internal/middleware"
	"github.com/tanu42012/zap-shift-server/internal/models"
	"github.com/tanu42012/zap-shift-server/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique shared-cache DSN so every connection in the pool sees the same
	// in-memory database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Rider{},
		&models.Parcel{},
		&models.Payment{},
		&models.TrackingEvent{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupRouter mirrors the route table in cmd/api.
func setupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)

	hub := services.NewHub()
	go hub.Run()

	r := gin.New()

	r.POST("/users", CreateUser(db))
	r.GET("/users/:email/role", GetUserRole(db))
	r.GET("/users/search", SearchUsers(db))
	r.PATCH("/users/:id/role", middleware.RequireAuth(), middleware.RequireAdmin(db), UpdateUserRole(db))

	r.GET("/parcels", GetParcels(db))
	r.GET("/parcels/:id", GetParcelByID(db))
	r.POST("/parcels", CreateParcel(db))
	r.DELETE("/parcels/:id", DeleteParcel(db))
	r.PATCH("/parcels/:id/assign-rider", AssignRider(db, hub))

	r.POST("/riders", CreateRider(db))
	r.GET("/riders/available", GetAvailableRiders(db))
	r.GET("/riders/pending", GetPendingRiders(db))
	r.GET("/riders/approved", GetApprovedRiders(db))
	r.PATCH("/riders/:id", UpdateRiderStatus(db))

	r.POST("/tracking", CreateTrackingEvent(db, hub))
	r.GET("/tracking/:trackingId", GetTrackingEvents(db))

	r.GET("/payments", GetPayments(db))
	r.POST("/payments", RecordPayment(db))
	r.POST("/create-payment-intent", CreatePaymentIntent())

	return r
}

func seedParcel(t *testing.T, db *gorm.DB, mutate func(*models.Parcel)) models.Parcel {
	t.Helper()

	parcel := models.Parcel{
		TrackingID:          "TRK-" + uuid.NewString()[:8],
		Title:               "Documents",
		Type:                "document",
		CreatedBy:           "sender@example.com",
		PaymentStatus:       models.PaymentStatusPaid,
		DeliveryStatus:      models.DeliveryStatusNotCollected,
		SenderServiceCenter: "Pabna",
	}
	if mutate != nil {
		mutate(&parcel)
	}
	if err := db.Create(&parcel).Error; err != nil {
		t.Fatalf("failed to seed parcel: %v", err)
	}
	return parcel
}

func seedRider(t *testing.T, db *gorm.DB, mutate func(*models.Rider)) models.Rider {
	t.Helper()

	rider := models.Rider{
		Name:     "Rahim",
		Email:    "rahim@example.com",
		Phone:    "01700000000",
		District: "Pabna",
		Status:   models.RiderStatusActive,
	}
	if mutate != nil {
		mutate(&rider)
	}
	if err := db.Create(&rider).Error; err != nil {
		t.Fatalf("failed to seed rider: %v", err)
	}
	return rider
}
