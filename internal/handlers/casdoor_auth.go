package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/nithishcb360/recruit-sub001/internal/config"
)

// CasdoorAuthMiddleware validates bearer tokens against Casdoor. When no
// Casdoor endpoint is configured the middleware passes every request through
// with an anonymous actor, which is how single-user local deployments run.
type CasdoorAuthMiddleware struct {
	client  *casdoorsdk.Client
	enabled bool
}

func NewCasdoorAuthMiddleware(cfg config.CasdoorConfig) *CasdoorAuthMiddleware {
	if !cfg.Enabled() {
		return &CasdoorAuthMiddleware{enabled: false}
	}

	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Organization,
		cfg.Application,
	)
	return &CasdoorAuthMiddleware{client: client, enabled: true}
}

// AuthMiddleware returns the authentication middleware for API routes.
func (cam *CasdoorAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cam.enabled {
			c.Set("user_id", "anonymous")
			c.Next()
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			unauthorized(c, "missing or malformed authorization header")
			return
		}

		claims, err := cam.client.ParseJwtToken(token)
		if err != nil {
			unauthorized(c, fmt.Sprintf("invalid token: %v", err))
			return
		}

		c.Set("user_id", claims.Id)
		c.Set("user_name", claims.User.DisplayName)
		c.Set("user_email", claims.User.Email)
		c.Next()
	}
}

// OptionalAuthMiddleware sets user info when a valid token is present but
// never rejects the request.
func (cam *CasdoorAuthMiddleware) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cam.enabled {
			c.Next()
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		if claims, err := cam.client.ParseJwtToken(token); err == nil {
			c.Set("user_id", claims.Id)
			c.Set("user_name", claims.User.DisplayName)
			c.Set("user_email", claims.User.Email)
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   "unauthorized",
		"message": message,
	})
}

// ActorFromContext returns the authenticated user's id, or empty when the
// request was anonymous.
func ActorFromContext(c *gin.Context) string {
	if userID, exists := c.Get("user_id"); exists {
		if id, ok := userID.(string); ok {
			return id
		}
	}
	return ""
}
