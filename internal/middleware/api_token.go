package middleware

import (
	"net/http"
	"strings"
	"sync"

	"lawyer_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// publicPrefixes are reachable without any token: question delivery,
// translations, section listing, registration/login and the ops surface.
var publicPrefixes = []string{
	"/api/translations",
	"/api/questions",
	"/api/legislation-sections",
	"/api/auth/register",
	"/api/auth/login",
	"/api/health",
	"/swagger",
	"/metrics",
}

// APITokenGate rejects direct API calls that carry neither a Bearer token
// nor the configured X-API-Token header. An empty configured token disables
// the gate entirely.
type APITokenGate struct {
	mu    sync.RWMutex
	token string
}

func NewAPITokenGate(token string) *APITokenGate {
	return &APITokenGate{token: token}
}

// Update swaps the expected token on config reload.
func (g *APITokenGate) Update(token string) {
	g.mu.Lock()
	g.token = token
	g.mu.Unlock()
}

func (g *APITokenGate) expected() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

func (g *APITokenGate) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := g.expected()
		if expected == "" {
			c.Next()
			return
		}

		// CORS preflight never carries credentials
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		if path == "/" {
			c.Next()
			return
		}
		for _, prefix := range publicPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		// Bearer requests are validated downstream by the JWT middleware
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			c.Next()
			return
		}

		token := c.GetHeader("X-API-Token")
		if token == "" {
			util.Error(c, http.StatusUnauthorized, "API token not provided")
			c.Abort()
			return
		}
		if token != expected {
			util.Error(c, http.StatusUnauthorized, "Invalid API token")
			c.Abort()
			return
		}

		c.Next()
	}
}
