package accounts

import (
	"time"

	"github.com/google/uuid"

	"github.com/pokeverse/pokeverse-backend/pkg/db/models"
)

// CreatePendingDTO holds a hashed registration awaiting email verification.
type CreatePendingDTO struct {
	Username     string
	Email        string
	PasswordHash string
}

// ToModel prepares the pending-signup row, generating its ID client-side.
func (c CreatePendingDTO) ToModel() *models.PendingSignup {
	return &models.PendingSignup{
		ID:           uuid.New(),
		Username:     c.Username,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
	}
}

// AccountDTO exposes safe account data in API responses.
type AccountDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModel maps the persisted account into a DTO.
func FromModel(m *models.Account) *AccountDTO {
	if m == nil {
		return nil
	}
	return &AccountDTO{
		ID:        m.ID,
		Username:  m.Username,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
	}
}
