package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookie names the visitor's session id cookie; the cart lives
// under this id in the session store.
const SessionCookie = "session_id"

const sessionMaxAge = 30 * 24 * time.Hour

// EnsureSession guarantees every request carries a session id, issuing a
// cookie for first-time visitors. Carts work for anonymous visitors too,
// so this runs before authentication.
func EnsureSession(c *gin.Context) {
	sid, err := c.Cookie(SessionCookie)
	if err != nil || sid == "" {
		sid = uuid.NewString()
		c.SetCookie(SessionCookie, sid, int(sessionMaxAge.Seconds()), "/", "", false, true)
	}
	c.Set("session_id", sid)
	c.Next()
}
