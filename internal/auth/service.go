package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pokeverse/pokeverse-backend/internal/accounts"
	pkgauth "github.com/pokeverse/pokeverse-backend/pkg/auth"
	"github.com/pokeverse/pokeverse-backend/pkg/config"
	"github.com/pokeverse/pokeverse-backend/pkg/db"
	"github.com/pokeverse/pokeverse-backend/pkg/db/models"
	pkgerrors "github.com/pokeverse/pokeverse-backend/pkg/errors"
	"github.com/pokeverse/pokeverse-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid username or password"

type accountsRepository interface {
	CreatePending(ctx context.Context, dto accounts.CreatePendingDTO) (*models.PendingSignup, error)
	FindPendingByEmail(ctx context.Context, email string) (*models.PendingSignup, error)
	Promote(ctx context.Context, pending *models.PendingSignup) (*models.Account, error)
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	ExistsByIdentity(ctx context.Context, username, email string) (bool, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

type mailSender interface {
	SendVerification(ctx context.Context, to, username, link string) error
	SendPasswordReset(ctx context.Context, to, username, link string) error
}

// Service defines the behavior needed by the auth controller.
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error)
	Verify(ctx context.Context, req VerifyRequest) (*VerifyResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (*ForgotPasswordResponse, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) (*ResetPasswordResponse, error)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Accounts    accountsRepository
	Mailer      mailSender
	JWTConfig   config.JWTConfig
	PasswordCfg config.PasswordConfig
	SiteURL     string
}

type service struct {
	accounts    accountsRepository
	mailer      mailSender
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	siteURL     string
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Accounts == nil {
		return nil, fmt.Errorf("accounts repository is required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("mailer is required")
	}
	return &service{
		accounts:    params.Accounts,
		mailer:      params.Mailer,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordCfg,
		siteURL:     strings.TrimRight(params.SiteURL, "/"),
	}, nil
}

// Signup stages an unverified registration and emails the verification link.
// The account only becomes real when the token is redeemed.
func (s *service) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.accounts.ExistsByIdentity(ctx, username, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check identity")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "username or email already in use")
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	if _, err := s.accounts.CreatePending(ctx, accounts.CreatePendingDTO{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create pending signup")
	}

	token, err := pkgauth.MintVerifyToken(s.jwtCfg, time.Now().UTC(), username, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint verification token")
	}

	link := fmt.Sprintf("%s/verification/%s", s.siteURL, token)
	if err := s.mailer.SendVerification(ctx, email, username, link); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send verification email")
	}

	return &SignupResponse{
		Message: "A verification email has been sent to your email. Please verify your email within a week.",
	}, nil
}

// Verify promotes the pending signup named by the token into a full account.
func (s *service) Verify(ctx context.Context, req VerifyRequest) (*VerifyResponse, error) {
	claims, err := pkgauth.ParseVerifyToken(s.jwtCfg, req.Token)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired verification token")
	}

	pending, err := s.accounts.FindPendingByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "user does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find pending signup")
	}

	if _, err := s.accounts.Promote(ctx, pending); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username or email already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "promote pending signup")
	}

	return &VerifyResponse{
		Message: "Successfully created your account! Please enjoy our services!",
	}, nil
}

// Login checks credentials and mints a one-hour session token.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	login := strings.TrimSpace(req.Login)
	if login == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	account, err := s.accounts.FindByUsername(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find account")
	}

	ok, err := security.VerifyPassword(req.Password, account.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	token, err := pkgauth.MintSessionToken(s.jwtCfg, time.Now().UTC(), account.ID, account.Username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token")
	}

	return &LoginResponse{Token: token}, nil
}

// ForgotPassword emails a reset link for a known account. Unknown emails are
// reported as not found, matching the frontend contract.
func (s *service) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (*ForgotPasswordResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find account")
	}

	token, err := pkgauth.MintResetToken(s.jwtCfg, time.Now().UTC(), account.Email, account.Username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint reset token")
	}

	link := fmt.Sprintf("%s/reset-password/%s", s.siteURL, token)
	if err := s.mailer.SendPasswordReset(ctx, account.Email, account.Username, link); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send password reset email")
	}

	return &ForgotPasswordResponse{
		Message: "Password reset link has been sent to your email",
	}, nil
}

// ResetPassword redeems a reset token and overwrites the stored credential.
func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*ResetPasswordResponse, error) {
	claims, err := pkgauth.ParseResetToken(s.jwtCfg, req.Token)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired reset token")
	}

	account, err := s.accounts.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "user does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find account")
	}

	hash, err := security.HashPassword(req.NewPassword, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	if err := s.accounts.UpdatePasswordHash(ctx, account.ID, hash); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
	}

	return &ResetPasswordResponse{Message: "Password reset successfully!"}, nil
}
