// Package jwt signs and verifies the optional bearer tokens of the API.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in tokens.
const (
	RoleOwner      = "owner"      // full access
	RoleAccountant = "accountant" // may verify, correct, settle and block
	RoleViewer     = "viewer"     // read-only
)

// Identity is what the API needs to know about the caller.
type Identity struct {
	UserID     string
	BusinessID string
	Role       string
}

// Claims are the registered claims plus the identity fields.
type Claims struct {
	jwt.RegisteredClaims
	UserID     string `json:"user_id"`
	BusinessID string `json:"business_id"`
	Role       string `json:"role"`
}

// Generate signs an HS256 token for id.
func Generate(secret, issuer string, id Identity, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: empty secret")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:     id.UserID,
		BusinessID: id.BusinessID,
		Role:       id.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse verifies signature, expiry and issuer (when issuer is not empty).
func Parse(secret, issuer, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, fmt.Errorf("jwt: empty secret")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("jwt: invalid claims")
	}
	return Identity{UserID: claims.UserID, BusinessID: claims.BusinessID, Role: claims.Role}, nil
}
