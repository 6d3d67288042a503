package models

import "github.com/golang-jwt/jwt/v5"

// CaregiverClaims represents the JWT claims issued by the hosted auth
// provider for a caregiver account.
type CaregiverClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email"`
	Role                 string `json:"role"` // "authenticated" or "anon"
	IsAnonymous          bool   `json:"is_anonymous"`
}

// GetUserID returns the caregiver ID from the JWT subject claim.
// This is the primary identifier for the authenticated caregiver.
func (c *CaregiverClaims) GetUserID() string {
	return c.Subject
}
