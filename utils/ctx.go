package utils

import (
	"laundrypos/checkout"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

func SetSession(c *gin.Context, s checkout.Session) {
	c.Set(sessionKey, s)
}

// CurrentSession returns the session stored by the auth middleware, or the
// zero session when the route is public.
func CurrentSession(c *gin.Context) checkout.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(checkout.Session); ok {
			return s
		}
	}
	return checkout.Session{}
}

func CurrentWorkerID(c *gin.Context) uint {
	return CurrentSession(c).WorkerID
}
