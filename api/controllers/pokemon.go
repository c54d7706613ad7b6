package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pokeverse/pokeverse-backend/api/responses"
	"github.com/pokeverse/pokeverse-backend/api/validators"
	"github.com/pokeverse/pokeverse-backend/internal/pokemon"
	pkgerrors "github.com/pokeverse/pokeverse-backend/pkg/errors"
	"github.com/pokeverse/pokeverse-backend/pkg/logger"
)

// PokemonRoster returns the records attached to one of the account's teams.
func PokemonRoster(svc pokemon.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "pokemon service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		accountID, err := requireAccount(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		teamID, err := validators.ParseUUIDParam(chi.URLParam(r, "teamId"), "teamId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.GetTeamRoster(r.Context(), accountID, teamID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// PokemonAdd builds a record from species data and attaches it to a team.
func PokemonAdd(svc pokemon.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "pokemon service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		accountID, err := requireAccount(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body pokemon.AddPokemonRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AddToTeam(r.Context(), accountID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"message": "pokemon added successfully",
			"pokemon": result,
		})
	}
}

// PokemonDelete detaches a record from its team and removes it.
func PokemonDelete(svc pokemon.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "pokemon service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		accountID, err := requireAccount(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		teamID, err := validators.ParseUUIDParam(chi.URLParam(r, "teamId"), "teamId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pokemonID, err := validators.ParseUUIDParam(chi.URLParam(r, "pokemonId"), "pokemonId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveFromTeam(r.Context(), accountID, teamID, pokemonID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"message": "pokemon deleted successfully"})
	}
}

// PokemonUpdate edits the nickname, ability, or moves on an owned record.
func PokemonUpdate(svc pokemon.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "pokemon service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		accountID, err := requireAccount(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		teamID, err := validators.ParseUUIDParam(chi.URLParam(r, "teamId"), "teamId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pokemonID, err := validators.ParseUUIDParam(chi.URLParam(r, "pokemonId"), "pokemonId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body pokemon.UpdatePokemonRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdatePokemon(r.Context(), accountID, teamID, pokemonID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"message": "pokemon updated successfully",
			"pokemon": result,
		})
	}
}
