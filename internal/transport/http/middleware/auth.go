package middleware

import (
	"net/http"

	"github.com/RusilKoirala/rusil-stream/internal/auth"
	"github.com/gin-gonic/gin"
)

const errUnauthorized = "Not authenticated"

// Auth establishes request identity from the session cookie (or a
// Bearer header) and sets "userID"/"userEmail" in the gin context.
// Verification failure of any kind means "no identity": the request is
// rejected with 401, never an error.
func Auth(sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.TokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		claims, ok := sessions.Verify(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Next()
	}
}
