package middlewares

import (
	"strings"

	"laundrypos/pkg/resp"
	"laundrypos/utils"

	"github.com/gin-gonic/gin"
)

// WSAuthMiddleware accepts the token from ?token= since browsers cannot set
// headers on a websocket handshake, falling back to the Authorization header.
func WSAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			h := c.GetHeader("Authorization")
			if strings.HasPrefix(h, "Bearer ") {
				tokenStr = strings.TrimPrefix(h, "Bearer ")
			}
		}
		if tokenStr == "" {
			resp.Unauthorized(c, "missing token")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			resp.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}
		utils.SetSession(c, claims.Session())
		c.Next()
	}
}
