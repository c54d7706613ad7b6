package teams

import (
	"time"

	"github.com/google/uuid"

	"github.com/pokeverse/pokeverse-backend/pkg/db/models"
)

// TeamDTO exposes a roster summary in API responses. Pokemon carries member
// IDs only; the roster endpoint returns the full records.
type TeamDTO struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Pokemon   []uuid.UUID `json:"pokemon"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// FromModel maps the persisted team into a DTO.
func FromModel(m *models.Team) *TeamDTO {
	if m == nil {
		return nil
	}
	members := make([]uuid.UUID, 0, len(m.Pokemon))
	for _, p := range m.Pokemon {
		members = append(members, p.ID)
	}
	return &TeamDTO{
		ID:        m.ID,
		Name:      m.Name,
		Pokemon:   members,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromModels maps a page of teams into DTOs.
func FromModels(teams []models.Team) []TeamDTO {
	dtos := make([]TeamDTO, 0, len(teams))
	for i := range teams {
		dtos = append(dtos, *FromModel(&teams[i]))
	}
	return dtos
}

// CreateTeamRequest contains the payload for a new empty team.
type CreateTeamRequest struct {
	TeamName string `json:"teamName" validate:"required,min=1,max=64"`
}

// RenameTeamRequest contains the payload for a team rename.
type RenameTeamRequest struct {
	NewTeamName string `json:"newTeamName" validate:"required,min=1,max=64"`
}
