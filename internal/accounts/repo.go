package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pokeverse/pokeverse-backend/pkg/db/models"
)

// DefaultTeamName is the empty roster every verified account starts with.
const DefaultTeamName = "My Team"

// Repository handles account and pending-signup persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to account operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreatePending stores an unverified registration.
func (r *Repository) CreatePending(ctx context.Context, dto CreatePendingDTO) (*models.PendingSignup, error) {
	pending := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(pending).Error; err != nil {
		return nil, err
	}
	return pending, nil
}

// FindPendingByEmail returns the newest pending signup for the email.
func (r *Repository) FindPendingByEmail(ctx context.Context, email string) (*models.PendingSignup, error) {
	var pending models.PendingSignup
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		First(&pending).Error; err != nil {
		return nil, err
	}
	return &pending, nil
}

// DeletePendingBefore removes pending signups created before the cutoff and
// reports how many rows went away. The cron reaper drives this.
func (r *Repository) DeletePendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.PendingSignup{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Promote converts a pending signup into a verified account with its default
// team, removing the pending row in the same transaction.
func (r *Repository) Promote(ctx context.Context, pending *models.PendingSignup) (*models.Account, error) {
	if pending == nil {
		return nil, fmt.Errorf("pending signup is required")
	}

	account := &models.Account{
		ID:           uuid.New(),
		Username:     pending.Username,
		Email:        pending.Email,
		PasswordHash: pending.PasswordHash,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		team := &models.Team{
			ID:        uuid.New(),
			AccountID: account.ID,
			Name:      DefaultTeamName,
			Position:  0,
		}
		if err := tx.Create(team).Error; err != nil {
			return err
		}
		return tx.Delete(&models.PendingSignup{}, "id = ?", pending.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// FindByID loads an account by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByUsername loads an account by its login name.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByEmail loads an account by its email address.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// ExistsByIdentity reports whether a verified account already claims the
// username or email.
func (r *Repository) ExistsByIdentity(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdatePasswordHash overwrites the stored credential for the account.
func (r *Repository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
