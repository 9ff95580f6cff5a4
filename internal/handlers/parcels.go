package handlers

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tanu42012/zap-shift-server/internal/models"
	"gorm.io/gorm"
)

// GetParcels lists parcels, optionally filtered by creator email,
// payment_status and delivery_status, newest first.
func GetParcels(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Parcel{})

		if email := c.Query("email"); email != "" {
			query = query.Where("created_by = ?", email)
		}
		if ps := c.Query("payment_status"); ps != "" {
			query = query.Where("payment_status = ?", ps)
		}
		if ds := c.Query("delivery_status"); ds != "" {
			query = query.Where("delivery_status = ?", ds)
		}

		var parcels []models.Parcel
		if err := query.Order("creation_date DESC").Find(&parcels).Error; err != nil {
			log.Printf("GET /parcels error: %v", err)
			c.JSON(500, gin.H{"message": "Failed to fetch parcels"})
			return
		}

		c.JSON(200, parcels)
	}
}

// GetParcelByID fetches one parcel
func GetParcelByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(400, gin.H{"message": "Invalid parcel ID"})
			return
		}

		var parcel models.Parcel
		if err := db.Where("id = ?", id).First(&parcel).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"message": "Parcel not found"})
				return
			}
			log.Printf("GET /parcels/:id error: %v", err)
			c.JSON(500, gin.H{"message": "Failed to fetch parcel"})
			return
		}

		c.JSON(200, parcel)
	}
}

// CreateParcel inserts a new parcel. Payment and delivery status always
// start at unpaid / not collected regardless of the request body.
func CreateParcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			TrackingID            string  `json:"tracking_id"`
			Title                 string  `json:"title" binding:"required"`
			Type                  string  `json:"type"`
			Weight                float64 `json:"weight"`
			Cost                  float64 `json:"cost"`
			CreatedBy             string  `json:"created_by" binding:"required,email"`
			SenderName            string  `json:"senderName"`
			SenderContact         string  `json:"senderContact"`
			SenderRegion          string  `json:"senderRegion"`
			SenderServiceCenter   string  `json:"senderServiceCenter" binding:"required"`
			SenderAddress         string  `json:"senderAddress"`
			ReceiverName          string  `json:"receiverName"`
			ReceiverContact       string  `json:"receiverContact"`
			ReceiverRegion        string  `json:"receiverRegion"`
			ReceiverServiceCenter string  `json:"receiverServiceCenter"`
			ReceiverAddress       string  `json:"receiverAddress"`
			PickupInstruction     string  `json:"pickupInstruction"`
			DeliveryInstruction   string  `json:"deliveryInstruction"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"message": err.Error()})
			return
		}

		parcel := models.Parcel{
			TrackingID:            input.TrackingID,
			Title:                 input.Title,
			Type:                  input.Type,
			Weight:                input.Weight,
			Cost:                  input.Cost,
			CreatedBy:             input.CreatedBy,
			SenderName:            input.SenderName,
			SenderContact:         input.SenderContact,
			SenderRegion:          input.SenderRegion,
			SenderServiceCenter:   input.SenderServiceCenter,
			SenderAddress:         input.SenderAddress,
			ReceiverName:          input.ReceiverName,
			ReceiverContact:       input.ReceiverContact,
			ReceiverRegion:        input.ReceiverRegion,
			ReceiverServiceCenter: input.ReceiverServiceCenter,
			ReceiverAddress:       input.ReceiverAddress,
			PickupInstruction:     input.PickupInstruction,
			DeliveryInstruction:   input.DeliveryInstruction,
			CreationDate:          time.Now(),
		}

		if err := db.Create(&parcel).Error; err != nil {
			log.Printf("POST /parcels error: %v", err)
			c.JSON(500, gin.H{"message": "Failed to create parcel"})
			return
		}

		c.JSON(201, gin.H{"insertedId": parcel.ID})
	}
}

// DeleteParcel removes a parcel by id
func DeleteParcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(400, gin.H{"message": "Invalid parcel ID"})
			return
		}

		result := db.Where("id = ?", id).Delete(&models.Parcel{})
		if result.Error != nil {
			log.Printf("DELETE /parcels/:id error: %v", result.Error)
			c.JSON(500, gin.H{"message": "Failed to delete parcel"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(404, gin.H{"message": "Parcel not found"})
			return
		}

		c.JSON(200, gin.H{"message": "Parcel deleted successfully"})
	}
}
