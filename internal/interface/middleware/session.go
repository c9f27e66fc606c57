package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-account-service/pkg/helpers"
)

const CtxSessionIDKey = "sessionID"

// Session copies the session token presented in the cookie into the Gin
// context. It never rejects a request: use cases decide what an anonymous
// session may do.
func Session(cookies *helpers.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := cookies.Session(c); token != "" {
			c.Set(CtxSessionIDKey, token)
		}
		c.Next()
	}
}
