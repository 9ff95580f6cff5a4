package handlers

import (
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tanu42012/zap-shift-server/internal/models"
	"github.com/tanu42012/zap-shift-server/internal/services"
	"gorm.io/gorm"
)

// GetPayments returns payment history, newest first, with optional filters
// and limit/skip pagination.
func GetPayments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Payment{})

		if userEmail := c.Query("userEmail"); userEmail != "" {
			query = query.Where("user_email = ?", userEmail)
		}
		if parcelID := c.Query("parcelId"); parcelID != "" {
			id, err := uuid.Parse(parcelID)
			if err != nil {
				c.JSON(400, gin.H{"message": "invalid parcel id"})
				return
			}
			query = query.Where("parcel_id = ?", id)
		}
		if transactionID := c.Query("transactionId"); transactionID != "" {
			query = query.Where("transaction_id = ?", transactionID)
		}

		limit := 50
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				c.JSON(400, gin.H{"message": "invalid limit"})
				return
			}
			limit = n
		}
		skip := 0
		if raw := c.Query("skip"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				c.JSON(400, gin.H{"message": "invalid skip"})
				return
			}
			skip = n
		}

		var payments []models.Payment
		err := query.Order("paid_at DESC").Offset(skip).Limit(limit).Find(&payments).Error
		if err != nil {
			log.Printf("GET /payments error: %v", err)
			c.JSON(500, gin.H{"error": "failed to load payment history"})
			return
		}

		c.JSON(200, payments)
	}
}

// RecordPayment marks the parcel paid and inserts the immutable payment
// record in one transaction. The amount is required but deliberately not
// validated against the parcel cost, and zero or negative values are
// accepted; this mirrors the upstream contract.
func RecordPayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			TransactionID string   `json:"transactionId" binding:"required"`
			Amount        *float64 `json:"amount" binding:"required"`
			ParcelID      string   `json:"parcelId" binding:"required"`
			UserEmail     string   `json:"userEmail" binding:"required,email"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": "Missing required payment fields"})
			return
		}

		parcelID, err := uuid.Parse(input.ParcelID)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid parcel ID"})
			return
		}

		payment := models.Payment{
			TransactionID: input.TransactionID,
			Amount:        *input.Amount,
			ParcelID:      parcelID,
			UserEmail:     input.UserEmail,
			PaidAt:        time.Now(),
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			// Matched-row count is not enforced; recording a payment against
			// an unknown parcel is accepted, as upstream did.
			if err := tx.Model(&models.Parcel{}).
				Where("id = ?", parcelID).
				Update("payment_status", models.PaymentStatusPaid).Error; err != nil {
				return err
			}
			return tx.Create(&payment).Error
		})
		if err != nil {
			log.Printf("POST /payments error: %v", err)
			c.JSON(500, gin.H{"error": "failed to record payment"})
			return
		}

		c.JSON(201, gin.H{
			"message":    "Payment recorded successfully",
			"insertedId": payment.ID,
		})
	}
}

// CreatePaymentIntent delegates to the payment gateway and returns the
// client secret.
func CreatePaymentIntent() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			AmountInCents int64 `json:"amountInCents"`
		}

		if err := c.ShouldBindJSON(&input); err != nil || input.AmountInCents <= 0 {
			c.JSON(400, gin.H{"error": "invalid amount"})
			return
		}

		clientSecret, err := services.CreatePaymentIntent(input.AmountInCents)
		if err != nil {
			log.Printf("POST /create-payment-intent error: %v", err)
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		c.JSON(200, gin.H{"clientSecret": clientSecret})
	}
}
