package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pokeverse/pokeverse-backend/api/controllers"
	"github.com/pokeverse/pokeverse-backend/api/middleware"
	"github.com/pokeverse/pokeverse-backend/internal/auth"
	"github.com/pokeverse/pokeverse-backend/internal/pokemon"
	"github.com/pokeverse/pokeverse-backend/internal/teams"
	"github.com/pokeverse/pokeverse-backend/pkg/config"
	"github.com/pokeverse/pokeverse-backend/pkg/db"
	"github.com/pokeverse/pokeverse-backend/pkg/logger"
	"github.com/pokeverse/pokeverse-backend/pkg/pokeapi"
	"github.com/pokeverse/pokeverse-backend/pkg/redis"
)

// NewRouter assembles the HTTP surface: public auth and pokedex proxy
// endpoints, and the session-scoped team and pokemon endpoints. Route paths
// stay aligned with the frontend, which calls them verbatim.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	pokedexClient *pokeapi.Client,
	authService auth.Service,
	teamsService teams.Service,
	pokemonService pokemon.Service,
) http.Handler {
	// interface params must not wrap a typed nil pointer
	var cachePinger redis.Pinger
	if redisClient != nil {
		cachePinger = redisClient
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, cachePinger))
	})

	r.Group(func(r chi.Router) {
		r.With(rateLimit(signupPolicy, redisClient, logg)).Post("/signup", controllers.AuthSignup(authService, logg))
		r.Post("/verification", controllers.AuthVerify(authService, logg))
		r.With(rateLimit(loginPolicy, redisClient, logg)).Post("/userlogin", controllers.AuthLogin(authService, logg))
		r.Post("/forgot-password", controllers.AuthForgotPassword(authService, logg))
		r.Post("/reset-password", controllers.AuthResetPassword(authService, logg))
	})

	r.Group(func(r chi.Router) {
		r.Get("/pokemon/search/", controllers.PokedexSearch(pokedexClient, logg))
		r.Get("/pokemon/search/{query}", controllers.PokedexSearch(pokedexClient, logg))
		r.Get("/pokemon-abilities/{query}", controllers.PokedexAbilities(pokedexClient, logg))
		r.Get("/pokemon-moves/{speciesName}", controllers.PokedexMoves(pokedexClient, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/getTeams", controllers.TeamsList(teamsService, logg))
		r.Get("/getTeams/{name}", controllers.TeamsSearch(teamsService, logg))
		r.Post("/addTeam", controllers.TeamsCreate(teamsService, logg))
		r.Put("/updateTeam/{teamId}", controllers.TeamsRename(teamsService, logg))
		r.Delete("/deleteTeam/{teamId}", controllers.TeamsDelete(teamsService, logg))

		r.Get("/getPokemon/{teamId}", controllers.PokemonRoster(pokemonService, logg))
		r.Post("/addPokemon", controllers.PokemonAdd(pokemonService, logg))
		r.Put("/updatePokemon/{teamId}/{pokemonId}", controllers.PokemonUpdate(pokemonService, logg))
		r.Delete("/deletePokemon/{teamId}/{pokemonId}", controllers.PokemonDelete(pokemonService, logg))
	})

	return r
}

func rateLimit(policy middleware.AuthRateLimitPolicy, client *redis.Client, logg *logger.Logger) func(http.Handler) http.Handler {
	if client == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return middleware.AuthRateLimit(policy, client, logg)
}
