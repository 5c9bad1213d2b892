package middlewares

import (
	"net/http"
	"strings"

	"github.com/geocoder89/enrollhub/internal/auth"
	"github.com/geocoder89/enrollhub/internal/identity"
	"github.com/gin-gonic/gin"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	jwt TokenVerifier
}

func NewAuthMiddleware(jwt TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Missing or invalid Authorization header")
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if raw == "" {
			abortUnauthorized(c, "Missing or invalid access token")
			return
		}

		claims, err := m.jwt.VerifyAccessToken(raw)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired access token")
			return
		}

		// Stash the identity on the request context; handlers read it through IdentityFromContext
		c.Request = c.Request.WithContext(identity.WithIdentity(c.Request.Context(), claims.Identity()))

		c.Next()
	}
}

func IdentityFromContext(c *gin.Context) (identity.Identity, bool) {
	return identity.FromContext(c.Request.Context())
}

// keyed like the handler envelope so clients see one error shape
func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    "UNAUTHORIZED",
		"message": message,
	})
}
