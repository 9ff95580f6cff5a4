package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tanu42012/zap-shift-server/internal/models"
	"github.com/tanu42012/zap-shift-server/internal/services"
	"gorm.io/gorm"
)

// CreateRider registers a rider application. Status always starts at
// pending; approval is a separate admin step.
func CreateRider(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name     string `json:"name" binding:"required"`
			Email    string `json:"email" binding:"required,email"`
			Phone    string `json:"phone"`
			Region   string `json:"region"`
			District string `json:"district" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"message": err.Error()})
			return
		}

		rider := models.Rider{
			Name:     input.Name,
			Email:    input.Email,
			Phone:    input.Phone,
			Region:   input.Region,
			District: input.District,
			Status:   models.RiderStatusPending,
		}

		if err := db.Create(&rider).Error; err != nil {
			log.Printf("POST /riders error: %v", err)
			c.JSON(500, gin.H{"message": "failed to create rider"})
			return
		}

		c.JSON(200, gin.H{"insertedId": rider.ID})
	}
}

// GetAvailableRiders lists active riders in a district
func GetAvailableRiders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		district := c.Query("district")
		if district == "" {
			c.JSON(400, gin.H{"message": "Missing district query param"})
			return
		}

		type riderSummary struct {
			ID       uuid.UUID `json:"id"`
			Name     string    `json:"name"`
			Phone    string    `json:"phone"`
			District string    `json:"district"`
		}

		var riders []riderSummary
		err := db.Model(&models.Rider{}).
			Select("id", "name", "phone", "district").
			Where("district = ? AND status = ?", district, models.RiderStatusActive).
			Find(&riders).Error
		if err != nil {
			log.Printf("GET /riders/available error: %v", err)
			c.JSON(500, gin.H{"message": "Server error"})
			return
		}

		c.JSON(200, riders)
	}
}

// GetPendingRiders lists rider applications awaiting review, newest first
func GetPendingRiders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var riders []models.Rider
		err := db.Where("status = ?", models.RiderStatusPending).
			Order("applied_at DESC").
			Find(&riders).Error
		if err != nil {
			log.Printf("GET /riders/pending error: %v", err)
			c.JSON(500, gin.H{"error": "internal server error"})
			return
		}

		c.JSON(200, riders)
	}
}

// GetApprovedRiders lists active riders
func GetApprovedRiders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var riders []models.Rider
		err := db.Where("status = ?", models.RiderStatusActive).Find(&riders).Error
		if err != nil {
			log.Printf("GET /riders/approved error: %v", err)
			c.JSON(500, gin.H{"error": "internal server error"})
			return
		}

		c.JSON(200, riders)
	}
}

// UpdateRiderStatus approves or rejects a pending rider. Approval promotes
// the matching user account to the rider role in the same transaction; the
// promotion is best-effort and may match no user, in which case the rider
// update alone is authoritative.
func UpdateRiderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid rider ID"})
			return
		}

		var input struct {
			Status string `json:"status"`
			Email  string `json:"email"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": "Invalid status"})
			return
		}
		if input.Status != models.RiderStatusActive && input.Status != models.RiderStatusRejected {
			c.JSON(400, gin.H{"error": "Invalid status"})
			return
		}

		var rider models.Rider
		if err := db.Where("id = ?", id).First(&rider).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "No rider updated"})
				return
			}
			log.Printf("PATCH /riders/:id error: %v", err)
			c.JSON(500, gin.H{"error": "internal server error"})
			return
		}

		// active and reject are terminal states
		if rider.Status != models.RiderStatusPending {
			c.JSON(400, gin.H{"error": "Rider already " + rider.Status})
			return
		}

		email := input.Email
		if email == "" {
			email = rider.Email
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&rider).Update("status", input.Status).Error; err != nil {
				return err
			}
			if input.Status == models.RiderStatusActive && email != "" {
				// Best-effort: zero matched rows is not an error.
				if err := tx.Model(&models.User{}).
					Where("email = ?", email).
					Update("role", models.RoleRider).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Printf("PATCH /riders/:id error: %v", err)
			c.JSON(500, gin.H{"error": "Failed to update rider status"})
			return
		}

		if input.Status == models.RiderStatusActive && email != "" {
			services.InvalidateUserRole(c.Request.Context(), email)
		}

		c.JSON(200, gin.H{"modifiedCount": 1})
	}
}
