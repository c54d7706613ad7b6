package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pokeverse/pokeverse-backend/api/responses"
	"github.com/pokeverse/pokeverse-backend/api/validators"
	"github.com/pokeverse/pokeverse-backend/internal/teams"
	pkgerrors "github.com/pokeverse/pokeverse-backend/pkg/errors"
	"github.com/pokeverse/pokeverse-backend/pkg/logger"
)

// TeamsList returns every team on the authenticated account.
func TeamsList(svc teams.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "teams service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		accountID, err := requireAccount(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListTeams(r.Context(), accountID, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// TeamsSearch filters the account's teams by a case-insensitive name match.
func TeamsSearch(svc teams.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "teams service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		accountID, err := requireAccount(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SearchTeams(r.Context(), accountID, chi.URLParam(r, "name"), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// TeamsCreate adds an empty team to the authenticated account.
func TeamsCreate(svc teams.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "teams service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		accountID, err := requireAccount(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body teams.CreateTeamRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CreateTeam(r.Context(), accountID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"message": "team added successfully",
			"team":    result,
		})
	}
}

// TeamsRename updates a team's name, scoped to the authenticated account.
func TeamsRename(svc teams.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "teams service unavailable")
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

		var body teams.RenameTeamRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.RenameTeam(r.Context(), accountID, teamID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"message": "team updated successfully",
			"team":    result,
		})
	}
}

// TeamsDelete removes a team and every record attached to it.
func TeamsDelete(svc teams.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "teams service unavailable")
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

		if err := svc.DeleteTeam(r.Context(), accountID, teamID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"message": "team deleted successfully"})
	}
}
