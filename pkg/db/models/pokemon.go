package models

import (
	"time"

	"github.com/google/uuid"
	dbtypes "github.com/pokeverse/pokeverse-backend/pkg/db/types"
)

// Pokemon is a single roster entry. TeamID is nullable only so a record can
// exist detached during the create-then-attach handshake; a row that fails to
// attach is deleted by the compensating cleanup.
type Pokemon struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey"`
	TeamID       *uuid.UUID        `gorm:"column:team_id;type:uuid;index"`
	Species      string            `gorm:"type:text;not null"`
	SpeciesIndex int               `gorm:"column:species_index;not null"`
	Nickname     *string           `gorm:"type:text"`
	Ability      string            `gorm:"type:text;not null"`
	Moves        dbtypes.MoveSlots `gorm:"type:text;not null"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the uncountable noun out of gorm's pluralizer.
func (Pokemon) TableName() string {
	return "pokemon"
}
