package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/DesignCorporation/Beauty-sub004/internal/models"
	appErrors "github.com/DesignCorporation/Beauty-sub004/pkg/errors"
	"github.com/DesignCorporation/Beauty-sub004/pkg/response"
)

// ContextTenantKey is the gin context key storing the resolved tenant claims.
const ContextTenantKey = "currentTenant"

// Tenant protects routes by requiring a valid access token carrying a
// tenant_id claim. Every downstream query is scoped by that tenant.
func Tenant(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &models.TenantClaims{}, func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token"))
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*models.TenantClaims)
		if !ok || !token.Valid || claims.TenantID == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims"))
			c.Abort()
			return
		}

		c.Set(ContextTenantKey, claims)
		c.Next()
	}
}

// TenantID returns the tenant scoping the current request, or "" when the
// route is not protected.
func TenantID(c *gin.Context) string {
	value, exists := c.Get(ContextTenantKey)
	if !exists {
		return ""
	}
	claims, ok := value.(*models.TenantClaims)
	if !ok {
		return ""
	}
	return claims.TenantID
}
