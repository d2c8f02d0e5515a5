package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopadmin/shopadmin-golang/internal/auth"
	"github.com/shopadmin/shopadmin-golang/internal/store"
)

// AuthMiddleware guards a route group: it requires a "Bearer <token>" header,
// validates the token and confirms the user still exists. The user ID lands
// in the context under "userID" for downstream handlers.
func AuthMiddleware(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be in the format 'Bearer {token}'"})
			return
		}

		userID, err := auth.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// A token can outlive its account.
		if _, err := s.GetUser(userID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
