package httpserver

import (
	"net/http"
	"time"

	"gamestore/internal/service/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "sid"
	// principalHeader carries the authenticated identity injected by the
	// fronting auth layer. Login itself happens upstream of this service.
	principalHeader = "X-Authenticated-Email"

	customerKeyCtx = "customerKey"

	sessionCookieMaxAge = int(30 * 24 * time.Hour / time.Second)
)

// identityMiddleware pins a session cookie on first contact and resolves the
// stable customer key every request runs under.
func identityMiddleware(svc IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessionCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(sessionCookie, sid, sessionCookieMaxAge, "/", "", false, true)
		}

		key, err := svc.Resolve(c.Request.Context(), identity.Request{
			Principal: c.GetHeader(principalHeader),
			SessionID: sid,
		})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "identity unavailable"})
			return
		}

		c.Set(customerKeyCtx, key)
		c.Next()
	}
}

func customerKey(c *gin.Context) string {
	return c.GetString(customerKeyCtx)
}
