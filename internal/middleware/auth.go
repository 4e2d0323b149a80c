package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/table-booking/internal/config"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

const (
	RoleClient     = "CLIENT"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

type identity struct {
	userID uint
	role   string
}

// parseBearer returns an error code when the header is present but unusable.
func parseBearer(cfg *config.Config, header string) (*identity, string) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, "invalid_authorization_header"
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, "invalid_token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, "invalid_token_claims"
	}

	userID, ok := claims["sub"].(float64)
	if !ok || userID <= 0 {
		return nil, "invalid_token_payload"
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = RoleClient
	}

	return &identity{userID: uint(userID), role: role}, ""
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		id, code := parseBearer(cfg, authHeader)
		if id == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": code})
			return
		}

		c.Set(ContextUserID, id.userID)
		c.Set(ContextUserRole, id.role)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid bearer token is sent and lets
// anonymous (guest) requests through. A malformed token is still rejected.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		id, code := parseBearer(cfg, authHeader)
		if id == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": code})
			return
		}

		c.Set(ContextUserID, id.userID)
		c.Set(ContextUserRole, id.role)
		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access_denied"})
	}
}

// UserID returns the authenticated user, or nil for guests.
func UserID(c *gin.Context) *uint {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}

func IsOperator(c *gin.Context) bool {
	switch c.GetString(ContextUserRole) {
	case RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}
