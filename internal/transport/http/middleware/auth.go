package middleware

import (
	"net/http"
	"strings"

	"github.com/ErlanBelekov/authd/internal/principal"
	"github.com/ErlanBelekov/authd/internal/token"
	"github.com/gin-gonic/gin"
)

const errUnauthorized = "Unauthorized"

type tokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// Auth validates a Bearer JWT and sets "userID" in the gin context and the
// request context.
func Auth(verifier tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		claims, err := verifier.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		c.Set("userID", claims.UserID)
		c.Request = c.Request.WithContext(principal.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}
