package auth

// SignupRequest contains the payload for a new registration.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignupResponse carries the confirmation shown after a signup request.
type SignupResponse struct {
	Message string `json:"message"`
}

// VerifyRequest redeems an emailed verification token.
type VerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

// VerifyResponse confirms account promotion.
type VerifyResponse struct {
	Message string `json:"message"`
}

// LoginRequest contains the credentials for a session.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the freshly minted session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// ForgotPasswordRequest starts the password-reset email flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPasswordResponse confirms the reset email went out.
type ForgotPasswordResponse struct {
	Message string `json:"message"`
}

// ResetPasswordRequest redeems a reset token for a new credential.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// ResetPasswordResponse confirms the credential change.
type ResetPasswordResponse struct {
	Message string `json:"message"`
}
