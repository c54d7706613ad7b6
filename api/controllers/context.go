package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pokeverse/pokeverse-backend/api/middleware"
	pkgerrors "github.com/pokeverse/pokeverse-backend/pkg/errors"
)

// requireAccount pulls the authenticated account identifier out of the
// request context seeded by the auth middleware.
func requireAccount(r *http.Request) (uuid.UUID, error) {
	raw := middleware.AccountIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}

	accountID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid credentials")
	}

	return accountID, nil
}
