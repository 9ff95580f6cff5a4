package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tanu42012/zap-shift-server/internal/models"
	"github.com/tanu42012/zap-shift-server/internal/services"
	"gorm.io/gorm"
)

var (
	// errParcelNotEligible covers both a missing parcel and a parcel in the
	// wrong state, so callers cannot probe for existence.
	errParcelNotEligible = errors.New("parcel not eligible or not found")
	errRiderNotAvailable = errors.New("rider not available in district")
)

// assignRider matches an eligible parcel (paid, not collected) to an active
// rider in the parcel's sender district and links them: the parcel gets the
// rider reference, a "collecting" status and an assignment timestamp, and
// the rider's workload counter goes up by one. Both writes happen in one
// transaction.
//
// The parcel update repeats the eligibility predicates in its WHERE clause,
// so when two assignments race only one can claim the parcel; the loser
// matches zero rows and fails with errParcelNotEligible. The operation is
// deliberately not idempotent: a repeat call finds the parcel already
// collecting and fails the same way.
func assignRider(db *gorm.DB, parcelID, riderID uuid.UUID, now time.Time) (*models.Parcel, *models.Rider, error) {
	var parcel models.Parcel
	var rider models.Rider

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND payment_status = ? AND delivery_status = ?",
			parcelID, models.PaymentStatusPaid, models.DeliveryStatusNotCollected).
			First(&parcel).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errParcelNotEligible
			}
			return err
		}

		err = tx.Where("id = ? AND status = ? AND district = ?",
			riderID, models.RiderStatusActive, parcel.SenderServiceCenter).
			First(&rider).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errRiderNotAvailable
			}
			return err
		}

		result := tx.Model(&models.Parcel{}).
			Where("id = ? AND payment_status = ? AND delivery_status = ?",
				parcelID, models.PaymentStatusPaid, models.DeliveryStatusNotCollected).
			Updates(map[string]interface{}{
				"rider_id":          rider.ID,
				"delivery_status":   models.DeliveryStatusCollecting,
				"rider_assigned_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Lost the race: another request claimed the parcel between the
			// eligibility read and this update.
			return errParcelNotEligible
		}

		return tx.Model(&models.Rider{}).
			Where("id = ?", rider.ID).
			Update("active_parcels", gorm.Expr("active_parcels + ?", 1)).Error
	})
	if err != nil {
		return nil, nil, err
	}

	if err := db.Where("id = ?", parcelID).First(&parcel).Error; err != nil {
		return nil, nil, err
	}
	if err := db.Preload("AssignedParcels").Where("id = ?", riderID).First(&rider).Error; err != nil {
		return nil, nil, err
	}
	return &parcel, &rider, nil
}

// AssignRider handles PATCH /parcels/:id/assign-rider
func AssignRider(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		parcelID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(400, gin.H{"message": "Invalid IDs"})
			return
		}

		var input struct {
			RiderID string `json:"riderId"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"message": "Invalid IDs"})
			return
		}
		riderID, err := uuid.Parse(input.RiderID)
		if err != nil {
			c.JSON(400, gin.H{"message": "Invalid IDs"})
			return
		}

		parcel, rider, err := assignRider(db, parcelID, riderID, time.Now())
		switch {
		case errors.Is(err, errParcelNotEligible):
			c.JSON(404, gin.H{"message": "Parcel not eligible / not found"})
			return
		case errors.Is(err, errRiderNotAvailable):
			c.JSON(404, gin.H{"message": "Rider not found in district"})
			return
		case err != nil:
			log.Printf("Assign rider error: %v", err)
			c.JSON(500, gin.H{"message": "Internal server error"})
			return
		}

		// Best-effort tracking entry; the assignment is already committed.
		if parcel.TrackingID != "" {
			event := models.TrackingEvent{
				TrackingID: parcel.TrackingID,
				ParcelID:   &parcel.ID,
				Status:     "rider_assigned",
				Message:    "Rider " + rider.Name + " assigned",
				UpdateBy:   c.GetString("userEmail"),
			}
			if err := db.Create(&event).Error; err != nil {
				log.Printf("assign-rider tracking log error: %v", err)
			} else if hub != nil {
				hub.BroadcastTrackingEvent(event)
			}
		}

		c.JSON(200, gin.H{
			"message": "Rider assigned successfully",
			"parcel":  parcel,
			"rider":   rider,
		})
	}
}
