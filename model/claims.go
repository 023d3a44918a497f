package model

import "github.com/golang-jwt/jwt/v5"

// AppClaims are the claims embedded in every access token. The user id
// travels in the registered Subject claim; "role" is the single canonical
// role claim key used across the whole API.
type AppClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
