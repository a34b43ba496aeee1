package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/regsaude/profissionais-api/internal/service/auditoria"
	"github.com/regsaude/profissionais-api/pkg/auth"
)

// ContextUsuarioID is the gin context key holding the authenticated user id.
const ContextUsuarioID = "usuario_id"

type AuthMiddleware struct {
	jwtService auth.JWTService
}

func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// Authenticate validates the bearer token and stores the user id for the
// handlers. The client IP is threaded into the request context so audit
// entries can record it.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token de autenticação ausente"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Formato de autenticação inválido"})
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido ou expirado"})
			return
		}

		c.Set(ContextUsuarioID, claims.UsuarioID)

		ctx := auditoria.ComIPOrigem(c.Request.Context(), c.ClientIP())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// UsuarioID returns the authenticated user id set by Authenticate.
func UsuarioID(c *gin.Context) int64 {
	id, _ := c.Get(ContextUsuarioID)
	v, _ := id.(int64)
	return v
}
