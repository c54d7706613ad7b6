package pokemon

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pokeverse/pokeverse-backend/pkg/db/models"
)

// errRecordUnbound rolls back a slot reservation when the pokemon row did not
// match. It never escapes the transaction.
var errRecordUnbound = errors.New("pokemon row not bound")

// Repository handles Pokémon record persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to Pokémon operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateDetached persists a record with no team. The caller must follow up
// with Attach and clean the row up if the attach fails.
func (r *Repository) CreateDetached(ctx context.Context, record *models.Pokemon) error {
	record.TeamID = nil
	return r.db.WithContext(ctx).Create(record).Error
}

// Attach binds a detached record to a team. The slot is reserved first by a
// guarded increment of the team's counter; the row lock that update takes
// serializes concurrent attaches on the same team, so a second transaction
// re-evaluates the guard against the committed count and cannot push the team
// past capacity. Both Attach and Detach touch the teams row before the
// pokemon row to keep lock order consistent.
func (r *Repository) Attach(ctx context.Context, accountID, teamID, pokemonID uuid.UUID) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slot := tx.Exec(`
			UPDATE teams SET pokemon_count = pokemon_count + 1
			WHERE id = ? AND account_id = ? AND pokemon_count < ?`,
			teamID, accountID, models.MaxTeamSize)
		if slot.Error != nil {
			return slot.Error
		}
		if slot.RowsAffected == 0 {
			return errRecordUnbound
		}

		bind := tx.Exec(`
			UPDATE pokemon SET team_id = ?
			WHERE id = ? AND team_id IS NULL`,
			teamID, pokemonID)
		if bind.Error != nil {
			return bind.Error
		}
		if bind.RowsAffected == 0 {
			return errRecordUnbound
		}
		return nil
	})
	if errors.Is(err, errRecordUnbound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a record outright, attached or not.
func (r *Repository) Delete(ctx context.Context, pokemonID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Pokemon{}, "id = ?", pokemonID).Error
}

// Detach clears the record's team binding when the account owns the team and
// the record is on it, releasing the team's counter slot in the same
// transaction. Lock order matches Attach: teams row first, then pokemon.
func (r *Repository) Detach(ctx context.Context, accountID, teamID, pokemonID uuid.UUID) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slot := tx.Exec(`
			UPDATE teams SET pokemon_count = pokemon_count - 1
			WHERE id = ? AND account_id = ? AND pokemon_count > 0`,
			teamID, accountID)
		if slot.Error != nil {
			return slot.Error
		}
		if slot.RowsAffected == 0 {
			return errRecordUnbound
		}

		unbind := tx.Exec(`
			UPDATE pokemon SET team_id = NULL
			WHERE id = ? AND team_id = ?`,
			pokemonID, teamID)
		if unbind.Error != nil {
			return unbind.Error
		}
		if unbind.RowsAffected == 0 {
			return errRecordUnbound
		}
		return nil
	})
	if errors.Is(err, errRecordUnbound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// TeamOwned reports whether the team exists under the account.
func (r *Repository) TeamOwned(ctx context.Context, accountID, teamID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Team{}).
		Where("id = ? AND account_id = ?", teamID, accountID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByTeam returns the roster for an owned team.
func (r *Repository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Pokemon, error) {
	var records []models.Pokemon
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// FindOwned loads one record when the account, team, and record correlate.
func (r *Repository) FindOwned(ctx context.Context, accountID, teamID, pokemonID uuid.UUID) (*models.Pokemon, error) {
	var record models.Pokemon
	err := r.db.WithContext(ctx).
		Joins("JOIN teams ON teams.id = pokemon.team_id").
		Where("pokemon.id = ? AND pokemon.team_id = ? AND teams.account_id = ?", pokemonID, teamID, accountID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateFields applies a partial update to the record.
func (r *Repository) UpdateFields(ctx context.Context, pokemonID uuid.UUID, updates map[string]any) (*models.Pokemon, error) {
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.Pokemon{}).
			Where("id = ?", pokemonID).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	var record models.Pokemon
	if err := r.db.WithContext(ctx).First(&record, "id = ?", pokemonID).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
