package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Purpose distinguishes the three token kinds minted by this service. A token
// minted for one purpose never verifies as another.
type Purpose string

const (
	PurposeSession       Purpose = "session"
	PurposePasswordReset Purpose = "password_reset"
	PurposeSignupVerify  Purpose = "signup_verify"
)

func (p Purpose) IsValid() bool {
	switch p {
	case PurposeSession, PurposePasswordReset, PurposeSignupVerify:
		return true
	}
	return false
}

// SessionClaims authenticate an account for the bearer-token routes.
type SessionClaims struct {
	Purpose   Purpose   `json:"purpose"`
	AccountID uuid.UUID `json:"account_id"`
	Username  string    `json:"username"`
	jwt.RegisteredClaims
}

// ResetClaims authorize one password overwrite for the addressed account.
type ResetClaims struct {
	Purpose  Purpose `json:"purpose"`
	Email    string  `json:"email"`
	Username string  `json:"username"`
	jwt.RegisteredClaims
}

// VerifyClaims tie an emailed verification link back to a pending signup.
// The credential hash stays in the pending record, never in the token.
type VerifyClaims struct {
	Purpose  Purpose `json:"purpose"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	jwt.RegisteredClaims
}
