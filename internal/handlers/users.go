package handlers

import (
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tanu42012/zap-shift-server/internal/models"
	"github.com/tanu42012/zap-shift-server/internal/services"
	"gorm.io/gorm"
)

// CreateUser inserts a user if the email is not already present. An existing
// email is not an error: the login timestamp is refreshed and inserted:false
// is returned.
func CreateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string `json:"email" binding:"required,email"`
			Name  string `json:"name"`
			Role  string `json:"role"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"message": err.Error()})
			return
		}

		var existing models.User
		err := db.Where("email = ?", input.Email).First(&existing).Error
		if err == nil {
			db.Model(&existing).Update("last_log_in", time.Now())
			c.JSON(200, gin.H{"message": "user already exists", "inserted": false})
			return
		}
		if err != gorm.ErrRecordNotFound {
			log.Printf("POST /users error: %v", err)
			c.JSON(500, gin.H{"message": "failed to create user"})
			return
		}

		user := models.User{
			Email:     input.Email,
			Name:      input.Name,
			Role:      input.Role,
			LastLogIn: time.Now(),
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("POST /users error: %v", err)
			c.JSON(500, gin.H{"message": "failed to create user"})
			return
		}

		c.JSON(200, gin.H{"insertedId": user.ID, "inserted": true})
	}
}

// GetUserRole returns the role for an email, defaulting to "user".
func GetUserRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"message": "User not found"})
				return
			}
			log.Printf("GET /users/:email/role error: %v", err)
			c.JSON(500, gin.H{"message": "internal server error"})
			return
		}

		role := user.Role
		if role == "" {
			role = models.RoleUser
		}
		c.JSON(200, gin.H{"role": role})
	}
}

// SearchUsers performs a case-insensitive substring match on email, capped
// at 20 results with a slim projection.
func SearchUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		emailQuery := c.Query("email")
		if emailQuery == "" {
			c.JSON(400, gin.H{"message": "Missing email query ?email="})
			return
		}

		type userMatch struct {
			ID        uuid.UUID `json:"id"`
			Email     string    `json:"email"`
			Role      string    `json:"role"`
			CreatedAt time.Time `json:"created_at"`
		}

		var users []userMatch
		pattern := "%" + strings.ToLower(emailQuery) + "%"
		err := db.Model(&models.User{}).
			Select("id", "email", "role", "created_at").
			Where("LOWER(email) LIKE ?", pattern).
			Limit(20).
			Find(&users).Error
		if err != nil {
			log.Printf("GET /users/search error: %v", err)
			c.JSON(500, gin.H{"message": "error searching users"})
			return
		}

		c.JSON(200, users)
	}
}

// UpdateUserRole is admin-only; role must be "admin" or "user".
func UpdateUserRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(400, gin.H{"message": "invalid user id"})
			return
		}

		var input struct {
			Role string `json:"role"`
		}
		if err := c.ShouldBindJSON(&input); err != nil || (input.Role != models.RoleAdmin && input.Role != models.RoleUser) {
			c.JSON(400, gin.H{"message": "invalid role"})
			return
		}

		var user models.User
		if err := db.Where("id = ?", id).First(&user).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"message": "User not found"})
				return
			}
			log.Printf("PATCH /users/:id/role error: %v", err)
			c.JSON(500, gin.H{"message": "failed to update user"})
			return
		}

		if err := db.Model(&user).Update("role", input.Role).Error; err != nil {
			log.Printf("PATCH /users/:id/role error: %v", err)
			c.JSON(500, gin.H{"message": "failed to update user"})
			return
		}

		services.InvalidateUserRole(c.Request.Context(), user.Email)

		c.JSON(200, gin.H{"message": "user role updated to " + input.Role, "modifiedCount": 1})
	}
}
