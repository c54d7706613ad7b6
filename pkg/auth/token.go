package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pokeverse/pokeverse-backend/pkg/config"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// MintSessionToken issues the short-lived bearer token returned by login.
func MintSessionToken(cfg config.JWTConfig, now time.Time, accountID uuid.UUID, username string) (string, error) {
	if err := checkConfig(cfg); err != nil {
		return "", err
	}
	if cfg.SessionTTLMinutes <= 0 {
		return "", fmt.Errorf("session ttl must be positive")
	}
	claims := SessionClaims{
		Purpose:          PurposeSession,
		AccountID:        accountID,
		Username:         username,
		RegisteredClaims: registered(cfg, now, cfg.SessionTTL()),
	}
	return sign(cfg, claims)
}

// MintResetToken issues the week-long token emailed by the forgot-password flow.
func MintResetToken(cfg config.JWTConfig, now time.Time, email, username string) (string, error) {
	if err := checkConfig(cfg); err != nil {
		return "", err
	}
	if cfg.ResetTTLMinutes <= 0 {
		return "", fmt.Errorf("reset ttl must be positive")
	}
	claims := ResetClaims{
		Purpose:          PurposePasswordReset,
		Email:            email,
		Username:         username,
		RegisteredClaims: registered(cfg, now, cfg.ResetTTL()),
	}
	return sign(cfg, claims)
}

// MintVerifyToken issues the week-long token emailed on signup.
func MintVerifyToken(cfg config.JWTConfig, now time.Time, username, email string) (string, error) {
	if err := checkConfig(cfg); err != nil {
		return "", err
	}
	if cfg.VerifyTTLMinutes <= 0 {
		return "", fmt.Errorf("verify ttl must be positive")
	}
	claims := VerifyClaims{
		Purpose:          PurposeSignupVerify,
		Username:         username,
		Email:            email,
		RegisteredClaims: registered(cfg, now, cfg.VerifyTTL()),
	}
	return sign(cfg, claims)
}

// ParseSessionToken validates a session JWT and returns its typed claims.
func ParseSessionToken(cfg config.JWTConfig, tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := parse(cfg, tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Purpose != PurposeSession {
		return nil, fmt.Errorf("token purpose %q is not a session token", claims.Purpose)
	}
	return claims, nil
}

// ParseResetToken validates a password-reset JWT and returns its typed claims.
func ParseResetToken(cfg config.JWTConfig, tokenString string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	if err := parse(cfg, tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Purpose != PurposePasswordReset {
		return nil, fmt.Errorf("token purpose %q is not a reset token", claims.Purpose)
	}
	return claims, nil
}

// ParseVerifyToken validates a signup-verification JWT and returns its typed claims.
func ParseVerifyToken(cfg config.JWTConfig, tokenString string) (*VerifyClaims, error) {
	claims := &VerifyClaims{}
	if err := parse(cfg, tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Purpose != PurposeSignupVerify {
		return nil, fmt.Errorf("token purpose %q is not a verification token", claims.Purpose)
	}
	return claims, nil
}

func checkConfig(cfg config.JWTConfig) error {
	if cfg.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	if cfg.Issuer == "" {
		return fmt.Errorf("jwt issuer is required")
	}
	return nil
}

func registered(cfg config.JWTConfig, now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}
}

func sign(cfg config.JWTConfig, claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

func parse(cfg config.JWTConfig, tokenString string, claims jwt.Claims) error {
	if cfg.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}

	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
	)
	return err
}
