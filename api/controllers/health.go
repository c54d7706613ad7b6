package controllers

import (
	"net/http"

	"github.com/pokeverse/pokeverse-backend/api/responses"
	"github.com/pokeverse/pokeverse-backend/pkg/config"
	"github.com/pokeverse/pokeverse-backend/pkg/db"
	pkgerrors "github.com/pokeverse/pokeverse-backend/pkg/errors"
	"github.com/pokeverse/pokeverse-backend/pkg/logger"
	"github.com/pokeverse/pokeverse-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Pokeverse-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the backing stores answer a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, database db.Pinger, cache redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Pokeverse-Env", cfg.App.Env)

		if database != nil {
			if err := database.Ping(r.Context()); err != nil {
				wrapped := pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable")
				responses.WriteError(r.Context(), logg, w, wrapped)
				return
			}
		}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				wrapped := pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable")
				responses.WriteError(r.Context(), logg, w, wrapped)
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
