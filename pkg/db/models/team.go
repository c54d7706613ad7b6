package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxTeamSize caps how many Pokémon a team can reference.
const MaxTeamSize = 6

// Team is a named roster owned by one account. Names are not unique; position
// preserves creation order within the account. PokemonCount mirrors the number
// of attached roster rows and backs the capacity guard in attach.
type Team struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID    uuid.UUID `gorm:"column:account_id;type:uuid;not null;index"`
	Name         string    `gorm:"type:text;not null"`
	Position     int       `gorm:"column:position;not null"`
	PokemonCount int       `gorm:"column:pokemon_count;not null;default:0"`
	Pokemon      []Pokemon `gorm:"foreignKey:TeamID"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
