package ginserver

import (
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"staybase/internal/domain/identity"
)

const callerContextKey = "caller"

// IdentityMiddleware trusts the gateway-injected identity headers. Requests
// without them proceed as anonymous; role gates fire per route.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := identity.Caller{
			ID:    strings.TrimSpace(c.GetHeader("X-User-Id")),
			Email: strings.TrimSpace(c.GetHeader("X-User-Email")),
			Role:  identity.ParseRole(c.GetHeader("X-User-Role")),
		}
		c.Set(callerContextKey, caller)
		c.Next()
	}
}

func callerFrom(c *gin.Context) identity.Caller {
	if v, ok := c.Get(callerContextKey); ok {
		if caller, ok := v.(identity.Caller); ok {
			return caller
		}
	}
	return identity.Caller{}
}

// requireCaller aborts with 401 when the gateway supplied no identity.
func requireCaller(c *gin.Context) (identity.Caller, bool) {
	caller := callerFrom(c)
	if !caller.Known() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return identity.Caller{}, false
	}
	return caller, true
}
