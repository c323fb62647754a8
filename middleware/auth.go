package middleware

import (
	"net/http"

	"github.com/etlasneha/greenzone/models"
	"github.com/etlasneha/greenzone/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SessionMiddleware resolves the caller's identity from the session
// cookie and verifies it against the user store. The role carried in the
// cookie is never used for authorization; the store is authoritative.
func SessionMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(utils.SessionCookieName)
		if err != nil || raw == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}

		claim := utils.ParseSessionToken(raw)
		if claim.Email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}

		var user models.User
		if err := db.Where("email = ?", claim.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}

		c.Set(string(utils.UserContextKey), &utils.Identity{
			UserID: user.ID,
			Email:  user.Email,
			Name:   user.Name,
			Role:   user.Role,
		})

		c.Next()
	}
}

// AdminMiddleware gates admin-only routes. It must run after
// SessionMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := utils.GetIdentity(c)
		if identity == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}
		if !identity.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized: not an admin."})
			c.Abort()
			return
		}
		c.Next()
	}
}
