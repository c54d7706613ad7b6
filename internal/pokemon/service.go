package pokemon

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pokeverse/pokeverse-backend/pkg/db/models"
	dbtypes "github.com/pokeverse/pokeverse-backend/pkg/db/types"
	pkgerrors "github.com/pokeverse/pokeverse-backend/pkg/errors"
	"github.com/pokeverse/pokeverse-backend/pkg/logger"
)

type pokemonRepository interface {
	CreateDetached(ctx context.Context, record *models.Pokemon) error
	Attach(ctx context.Context, accountID, teamID, pokemonID uuid.UUID) (bool, error)
	Delete(ctx context.Context, pokemonID uuid.UUID) error
	Detach(ctx context.Context, accountID, teamID, pokemonID uuid.UUID) (bool, error)
	TeamOwned(ctx context.Context, accountID, teamID uuid.UUID) (bool, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Pokemon, error)
	FindOwned(ctx context.Context, accountID, teamID, pokemonID uuid.UUID) (*models.Pokemon, error)
	UpdateFields(ctx context.Context, pokemonID uuid.UUID, updates map[string]any) (*models.Pokemon, error)
}

type dataGateway interface {
	LookupAbilities(ctx context.Context, speciesName string) []string
	LookupDefaultMoves(ctx context.Context, speciesName string) []string
}

// Service defines the behavior needed by the Pokémon controller.
type Service interface {
	AddToTeam(ctx context.Context, accountID uuid.UUID, req AddPokemonRequest) (*PokemonDTO, error)
	RemoveFromTeam(ctx context.Context, accountID, teamID, pokemonID uuid.UUID) error
	GetTeamRoster(ctx context.Context, accountID, teamID uuid.UUID) ([]PokemonDTO, error)
	UpdatePokemon(ctx context.Context, accountID, teamID, pokemonID uuid.UUID, req UpdatePokemonRequest) (*PokemonDTO, error)
}

// ServiceParams bundles the dependencies required to build a Pokémon service.
type ServiceParams struct {
	Repo    pokemonRepository
	Gateway dataGateway
	Logger  *logger.Logger
}

type service struct {
	repo    pokemonRepository
	gateway dataGateway
	logg    *logger.Logger
}

// NewService constructs a Pokémon service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("pokemon repository is required")
	}
	if params.Gateway == nil {
		return nil, fmt.Errorf("data gateway is required")
	}
	return &service{
		repo:    params.Repo,
		gateway: params.Gateway,
		logg:    params.Logger,
	}, nil
}

// AddToTeam resolves species data, persists a detached record, then binds it
// to the team. If the bind fails the record is deleted so no orphan survives
// a full team or a bad team reference.
func (s *service) AddToTeam(ctx context.Context, accountID uuid.UUID, req AddPokemonRequest) (*PokemonDTO, error) {
	abilities := s.gateway.LookupAbilities(ctx, req.SpeciesName)
	if len(abilities) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("abilities not found for species: %s", req.SpeciesName))
	}

	abilityIdx := 0
	if req.Ability != nil {
		abilityIdx = *req.Ability
	}
	if abilityIdx < 0 || abilityIdx >= len(abilities) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ability index out of range")
	}

	var moves []string
	if req.Moves != nil {
		if len(*req.Moves) != dbtypes.MoveSlotCount {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "moves must be an array of 4 elements")
		}
		moves = *req.Moves
	} else {
		moves = s.gateway.LookupDefaultMoves(ctx, req.SpeciesName)
	}

	record := &models.Pokemon{
		ID:           uuid.New(),
		Species:      req.SpeciesName,
		SpeciesIndex: req.PokedexNumber,
		Ability:      abilities[abilityIdx],
		Moves:        dbtypes.NewMoveSlots(moves),
	}
	if err := s.repo.CreateDetached(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create pokemon")
	}

	attached, err := s.repo.Attach(ctx, accountID, req.TeamID, record.ID)
	if err != nil {
		s.compensate(ctx, record.ID)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "attach pokemon")
	}
	if !attached {
		s.compensate(ctx, record.ID)
		owned, err := s.repo.TeamOwned(ctx, accountID, req.TeamID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check team")
		}
		if !owned {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account or team not found for this user")
		}
		return nil, pkgerrors.New(pkgerrors.CodeCapacity, "team is full").
			WithDetails(map[string]any{"max_team_size": models.MaxTeamSize})
	}

	teamID := req.TeamID
	record.TeamID = &teamID
	return FromModel(record), nil
}

// RemoveFromTeam detaches the record from an owned team, then deletes the
// standalone row. The delete only runs once the detach confirmed the record
// was on this team; once detached the row is unreachable, so a failed delete
// is logged instead of surfaced.
func (s *service) RemoveFromTeam(ctx context.Context, accountID, teamID, pokemonID uuid.UUID) error {
	owned, err := s.repo.TeamOwned(ctx, accountID, teamID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check team")
	}
	if !owned {
		return pkgerrors.New(pkgerrors.CodeNotFound, "account or team not found for this user")
	}

	detached, err := s.repo.Detach(ctx, accountID, teamID, pokemonID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "detach pokemon")
	}
	if !detached {
		return pkgerrors.New(pkgerrors.CodeNotFound, "pokemon not found")
	}
	if err := s.repo.Delete(ctx, pokemonID); err != nil && s.logg != nil {
		logCtx := s.logg.WithField(ctx, "pokemon_id", pokemonID.String())
		s.logg.Error(logCtx, "removing detached pokemon failed", err)
	}
	return nil
}

// GetTeamRoster returns every record attached to an owned team.
func (s *service) GetTeamRoster(ctx context.Context, accountID, teamID uuid.UUID) ([]PokemonDTO, error) {
	owned, err := s.repo.TeamOwned(ctx, accountID, teamID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check team")
	}
	if !owned {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "team not found for this user")
	}

	records, err := s.repo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list roster")
	}
	return FromModels(records), nil
}

// UpdatePokemon applies the provided fields when the account, team, and
// record all correlate. A moves update must carry exactly four slots.
func (s *service) UpdatePokemon(ctx context.Context, accountID, teamID, pokemonID uuid.UUID, req UpdatePokemonRequest) (*PokemonDTO, error) {
	if _, err := s.repo.FindOwned(ctx, accountID, teamID, pokemonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account, team, or pokemon not found for this user")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find pokemon")
	}

	updates := map[string]any{}
	if req.Nickname != nil {
		updates["nickname"] = *req.Nickname
	}
	if req.Ability != nil {
		updates["ability"] = *req.Ability
	}
	if req.Moves != nil {
		if len(*req.Moves) != dbtypes.MoveSlotCount {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "moves must be an array of 4 elements")
		}
		updates["moves"] = dbtypes.NewMoveSlots(*req.Moves)
	}

	record, err := s.repo.UpdateFields(ctx, pokemonID, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update pokemon")
	}
	return FromModel(record), nil
}

func (s *service) compensate(ctx context.Context, pokemonID uuid.UUID) {
	if err := s.repo.Delete(ctx, pokemonID); err != nil && s.logg != nil {
		logCtx := s.logg.WithField(ctx, "pokemon_id", pokemonID.String())
		s.logg.Error(logCtx, "compensating delete failed", err)
	}
}
