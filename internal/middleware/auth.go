package middleware

import (
	"net/http"
	"strings"

	"synergysphere/config"
	"synergysphere/internal/auth"
	"synergysphere/internal/domain"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// AuthRequired validates the bearer JWT and stores the caller's identity in
// the gin context.
func AuthRequired(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(identityKey, domain.Identity{UserID: claims.UserID, Email: claims.Email})
		c.Next()
	}
}

// GetIdentity returns the authenticated caller. The zero Identity is returned
// outside AuthRequired.
func GetIdentity(c *gin.Context) domain.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}
	}
	id, _ := v.(domain.Identity)
	return id
}

// SetIdentity is used by tests that mount handlers without a token.
func SetIdentity(c *gin.Context, id domain.Identity) {
	c.Set(identityKey, id)
}
