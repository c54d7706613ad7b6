package pokemon

import (
	"time"

	"github.com/google/uuid"

	"github.com/pokeverse/pokeverse-backend/pkg/db/models"
)

// PokemonDTO exposes one roster entry in API responses.
type PokemonDTO struct {
	ID        uuid.UUID  `json:"id"`
	TeamID    *uuid.UUID `json:"team_id"`
	Name      string     `json:"name"`
	Index     int        `json:"index"`
	Nickname  *string    `json:"nickname,omitempty"`
	Ability   string     `json:"ability"`
	Moves     []string   `json:"moves"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// FromModel maps the persisted record into a DTO.
func FromModel(m *models.Pokemon) *PokemonDTO {
	if m == nil {
		return nil
	}
	return &PokemonDTO{
		ID:        m.ID,
		TeamID:    m.TeamID,
		Name:      m.Species,
		Index:     m.SpeciesIndex,
		Nickname:  m.Nickname,
		Ability:   m.Ability,
		Moves:     m.Moves,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromModels maps a roster into DTOs.
func FromModels(records []models.Pokemon) []PokemonDTO {
	dtos := make([]PokemonDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *FromModel(&records[i]))
	}
	return dtos
}

// AddPokemonRequest contains the payload for creating and attaching a record.
// Ability is an index into the species' resolved ability list; Moves, when
// present, overrides the species defaults verbatim.
type AddPokemonRequest struct {
	SpeciesName   string    `json:"speciesName" validate:"required"`
	TeamID        uuid.UUID `json:"teamId" validate:"required"`
	PokedexNumber int       `json:"pokedexNumber" validate:"gte=0"`
	Ability       *int      `json:"ability,omitempty"`
	Moves         *[]string `json:"moves,omitempty"`
}

// UpdatePokemonRequest contains the partial-update payload. Only provided
// fields are applied.
type UpdatePokemonRequest struct {
	Nickname *string   `json:"nickname,omitempty"`
	Ability  *string   `json:"ability,omitempty"`
	Moves    *[]string `json:"moves,omitempty"`
}
