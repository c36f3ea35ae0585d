package models

import "github.com/golang-jwt/jwt/v5"

// TenantClaims is the JWT payload carried by API access tokens. TenantID
// scopes every request to one salon.
type TenantClaims struct {
	TenantID string `json:"tenant_id"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}
