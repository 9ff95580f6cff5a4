package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tanu42012/zap-shift-server/internal/models"
	"github.com/tanu42012/zap-shift-server/internal/services"
	"gorm.io/gorm"
)

// CreateTrackingEvent appends an event to the tracking log and pushes it to
// live subscribers. A parcel_id, when supplied, must be a valid id of an
// existing parcel.
func CreateTrackingEvent(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			TrackingID string `json:"tracking_id" binding:"required"`
			ParcelID   string `json:"parcel_id"`
			Status     string `json:"status" binding:"required"`
			Message    string `json:"message"`
			UpdateBy   string `json:"update_by"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var parcelID *uuid.UUID
		if input.ParcelID != "" {
			id, err := uuid.Parse(input.ParcelID)
			if err != nil {
				c.JSON(400, gin.H{"error": "invalid parcel id"})
				return
			}
			var count int64
			if err := db.Model(&models.Parcel{}).Where("id = ?", id).Count(&count).Error; err != nil {
				log.Printf("POST /tracking error: %v", err)
				c.JSON(500, gin.H{"error": "failed to create tracking log"})
				return
			}
			if count == 0 {
				c.JSON(400, gin.H{"error": "unknown parcel id"})
				return
			}
			parcelID = &id
		}

		event := models.TrackingEvent{
			TrackingID: input.TrackingID,
			ParcelID:   parcelID,
			Status:     input.Status,
			Message:    input.Message,
			UpdateBy:   input.UpdateBy,
		}

		if err := db.Create(&event).Error; err != nil {
			log.Printf("POST /tracking error: %v", err)
			c.JSON(500, gin.H{"error": "failed to create tracking log"})
			return
		}

		if hub != nil {
			hub.BroadcastTrackingEvent(event)
		}

		c.JSON(200, gin.H{"success": true, "insertedId": event.ID})
	}
}

// GetTrackingEvents returns the event history for a tracking id, oldest
// first.
func GetTrackingEvents(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		trackingID := c.Param("trackingId")

		var events []models.TrackingEvent
		err := db.Where("tracking_id = ?", trackingID).
			Order("time ASC").
			Find(&events).Error
		if err != nil {
			log.Printf("GET /tracking/:trackingId error: %v", err)
			c.JSON(500, gin.H{"error": "failed to load tracking history"})
			return
		}

		c.JSON(200, events)
	}
}

// TrackingWebSocket streams new tracking events for one tracking id
func TrackingWebSocket(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		trackingID := c.Param("trackingId")
		services.HandleTrackingSocket(hub, c.Writer, c.Request, trackingID)
	}
}
