package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pokeverse/pokeverse-backend/api/responses"
	"github.com/pokeverse/pokeverse-backend/api/validators"
	pkgerrors "github.com/pokeverse/pokeverse-backend/pkg/errors"
	"github.com/pokeverse/pokeverse-backend/pkg/logger"
	"github.com/pokeverse/pokeverse-backend/pkg/pokeapi"
)

const maxPokedexQueryLen = 64

// PokedexSearch proxies a species search to the upstream dataset. An empty
// query returns the full paginated listing.
func PokedexSearch(client *pokeapi.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "pokedex gateway unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := validators.SanitizeQuery(chi.URLParam(r, "query"), maxPokedexQueryLen)

		result, err := client.Search(r.Context(), query, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// PokedexAbilities returns the ability detail list for a species or variant.
func PokedexAbilities(client *pokeapi.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "pokedex gateway unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := validators.SanitizeQuery(chi.URLParam(r, "query"), maxPokedexQueryLen)
		if query == "" {
			err := pkgerrors.New(pkgerrors.CodeValidation, "query is required")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := client.AbilityDetails(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// PokedexMoves returns the learnable move list for a species.
func PokedexMoves(client *pokeapi.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "pokedex gateway unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		species := validators.SanitizeQuery(chi.URLParam(r, "speciesName"), maxPokedexQueryLen)
		if species == "" {
			err := pkgerrors.New(pkgerrors.CodeValidation, "speciesName is required")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := client.MoveDetails(r.Context(), species)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
