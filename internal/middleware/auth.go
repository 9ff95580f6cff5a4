package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/tanu42012/zap-shift-server/internal/services"
	"github.com/tanu42012/zap-shift-server/pkg/utils"
)

// RequireAuth verifies the bearer token and stores the principal's email in
// the context. A missing token is 401, a token that fails verification is
// 403. Firebase ID tokens are verified when the Admin SDK is configured;
// otherwise local HS256 tokens are accepted (dev and test mode).
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(401, gin.H{"message": "unauthorized access"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.JSON(401, gin.H{"message": "unauthorized access"})
			c.Abort()
			return
		}
		tokenString := parts[1]

		if services.AuthClient != nil {
			email, err := services.VerifyIDToken(c.Request.Context(), tokenString)
			if err != nil {
				c.JSON(403, gin.H{"message": "forbidden access"})
				c.Abort()
				return
			}
			c.Set("userEmail", email)
			c.Next()
			return
		}

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.JSON(403, gin.H{"message": "forbidden access"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(403, gin.H{"message": "forbidden access"})
			c.Abort()
			return
		}

		email, _ := claims["email"].(string)
		if email == "" {
			c.JSON(403, gin.H{"message": "forbidden access"})
			c.Abort()
			return
		}

		c.Set("userEmail", email)
		c.Next()
	}
}
