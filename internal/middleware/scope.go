package middleware

import "github.com/gin-gonic/gin"

const userIDKey = "userID"

// UserScope reads the caller identity from the X-User-ID header and
// stores it on the context. Authentication itself lives outside this
// service; the header is trusted input from the gateway.
func UserScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader("X-User-ID"); id != "" {
			c.Set(userIDKey, id)
		}
		c.Next()
	}
}

// UserID returns the scoped user id, or empty when none was supplied.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
