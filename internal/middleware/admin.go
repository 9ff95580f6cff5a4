package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/tanu42012/zap-shift-server/internal/models"
	"github.com/tanu42012/zap-shift-server/internal/services"
	"gorm.io/gorm"
)

// RequireAdmin authorizes admin-only operations. It must run after
// RequireAuth. The role lookup goes through the Redis cache first and falls
// back to the users table; an unknown email or a non-admin role is 403,
// distinct from the 401 an unauthenticated request gets.
func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("userEmail")
		if email == "" {
			c.JSON(403, gin.H{"message": "forbidden access"})
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		role := services.GetCachedUserRole(ctx, email)
		if role == "" {
			var user models.User
			if err := db.Where("email = ?", email).First(&user).Error; err != nil {
				if err != gorm.ErrRecordNotFound {
					log.Printf("RequireAdmin lookup error: %v", err)
					c.JSON(500, gin.H{"message": "internal server error"})
					c.Abort()
					return
				}
				c.JSON(403, gin.H{"message": "forbidden access"})
				c.Abort()
				return
			}
			role = user.Role
			services.SetCachedUserRole(ctx, email, role)
		}

		if role != models.RoleAdmin {
			c.JSON(403, gin.H{"message": "forbidden access"})
			c.Abort()
			return
		}

		c.Next()
	}
}
