package teams

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pokeverse/pokeverse-backend/pkg/db/models"
	"github.com/pokeverse/pokeverse-backend/pkg/pagination"
)

// Repository handles team persistence. Every query is scoped by account so
// ownership checks never leave the WHERE clause.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to team operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AccountExists reports whether the account row is present.
func (r *Repository) AccountExists(ctx context.Context, accountID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", accountID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByAccount returns the account's teams in creation order.
func (r *Repository) ListByAccount(ctx context.Context, accountID uuid.UUID, page pagination.Params) ([]models.Team, error) {
	page = pagination.Normalize(page)
	var teams []models.Team
	err := r.db.WithContext(ctx).
		Preload("Pokemon").
		Where("account_id = ?", accountID).
		Order("position ASC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// SearchByName returns the account's teams whose name contains the query,
// case-insensitively.
func (r *Repository) SearchByName(ctx context.Context, accountID uuid.UUID, query string, page pagination.Params) ([]models.Team, error) {
	page = pagination.Normalize(page)
	pattern := "%" + strings.ToLower(query) + "%"
	var teams []models.Team
	err := r.db.WithContext(ctx).
		Preload("Pokemon").
		Where("account_id = ? AND LOWER(name) LIKE ?", accountID, pattern).
		Order("position ASC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// FindOwned loads one team with its roster, scoped to the account.
func (r *Repository) FindOwned(ctx context.Context, accountID, teamID uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).
		Preload("Pokemon").
		Where("id = ? AND account_id = ?", teamID, accountID).
		First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// Create appends a new empty team after the account's existing ones.
func (r *Repository) Create(ctx context.Context, accountID uuid.UUID, name string) (*models.Team, error) {
	team := &models.Team{
		ID:        uuid.New(),
		AccountID: accountID,
		Name:      name,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPosition *int
		if err := tx.Model(&models.Team{}).
			Where("account_id = ?", accountID).
			Select("MAX(position)").
			Scan(&maxPosition).Error; err != nil {
			return err
		}
		if maxPosition != nil {
			team.Position = *maxPosition + 1
		}
		return tx.Create(team).Error
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// Rename updates the team name, scoped to the account.
func (r *Repository) Rename(ctx context.Context, accountID, teamID uuid.UUID, name string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Team{}).
		Where("id = ? AND account_id = ?", teamID, accountID).
		Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the team and its roster entries in one transaction.
func (r *Repository) Delete(ctx context.Context, accountID, teamID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND account_id = ?", teamID, accountID).
			Delete(&models.Team{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("team_id = ?", teamID).Delete(&models.Pokemon{}).Error
	})
}
