package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DesignCorporation/Beauty-sub004/internal/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims *models.TenantClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runTenant(t *testing.T, authorization string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()

	var resolvedTenant string
	r := gin.New()
	r.Use(Tenant(testSecret))
	r.GET("/protected", func(c *gin.Context) {
		resolvedTenant = TenantID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	r.ServeHTTP(rec, req)
	return rec, resolvedTenant
}

func TestTenantMiddlewareAcceptsValidToken(t *testing.T) {
	token := signToken(t, &models.TenantClaims{
		TenantID: "salon-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)

	rec, tenantID := runTenant(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "salon-1", tenantID)
}

func TestTenantMiddlewareRejectsMissingHeader(t *testing.T) {
	rec, _ := runTenant(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTenantMiddlewareRejectsMalformedHeader(t *testing.T) {
	rec, _ := runTenant(t, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTenantMiddlewareRejectsWrongSecret(t *testing.T) {
	token := signToken(t, &models.TenantClaims{TenantID: "salon-1"}, "other-secret")
	rec, _ := runTenant(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTenantMiddlewareRejectsMissingTenantClaim(t *testing.T) {
	token := signToken(t, &models.TenantClaims{}, testSecret)
	rec, _ := runTenant(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTenantMiddlewareRejectsExpiredToken(t *testing.T) {
	token := signToken(t, &models.TenantClaims{
		TenantID: "salon-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}, testSecret)

	rec, _ := runTenant(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
