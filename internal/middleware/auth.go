package middleware

import (
	"net/http"
	"passlink/internal/db"
	"passlink/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

// LoadUser retrieves user from session and sets to context
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if userID != nil {
			var user models.User
			if err := db.DB.First(&user, userID).Error; err == nil {
				c.Set(CheckUserKey, &user)
			}
		}
		c.Next()
	}
}

// AuthRequired ensures a user is logged in
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// CurrentUser 取当前登录用户，未登录返回 nil
func CurrentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}
