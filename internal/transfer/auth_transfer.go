package transfer

import "github.com/golang-jwt/jwt/v5"

type CustomClaims struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

type AdminLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminCreditGrant struct {
	UserID      int64  `json:"user_id"`
	Credits     int    `json:"credits"`
	Description string `json:"description"`
}
