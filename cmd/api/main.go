package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/pokeverse/pokeverse-backend/api/routes"
	"github.com/pokeverse/pokeverse-backend/internal/accounts"
	"github.com/pokeverse/pokeverse-backend/internal/auth"
	"github.com/pokeverse/pokeverse-backend/internal/pokemon"
	"github.com/pokeverse/pokeverse-backend/internal/teams"
	"github.com/pokeverse/pokeverse-backend/pkg/config"
	"github.com/pokeverse/pokeverse-backend/pkg/db"
	"github.com/pokeverse/pokeverse-backend/pkg/logger"
	"github.com/pokeverse/pokeverse-backend/pkg/mailer"
	"github.com/pokeverse/pokeverse-backend/pkg/migrate"
	"github.com/pokeverse/pokeverse-backend/pkg/pokeapi"
	"github.com/pokeverse/pokeverse-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	accountsRepo := accounts.NewRepository(dbClient.DB())
	mailSender := mailer.New(cfg.Mail, logg, cfg.App.IsDev())
	pokedexClient := pokeapi.New(cfg.PokeAPI, logg)

	authService, err := auth.NewService(auth.ServiceParams{
		Accounts:    accountsRepo,
		Mailer:      mailSender,
		JWTConfig:   cfg.JWT,
		PasswordCfg: cfg.Password,
		SiteURL:     cfg.App.SiteURL,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	teamsService, err := teams.NewService(teams.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create teams service", err)
		os.Exit(1)
	}

	pokemonService, err := pokemon.NewService(pokemon.ServiceParams{
		Repo:    pokemon.NewRepository(dbClient.DB()),
		Gateway: pokedexClient,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create pokemon service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			pokedexClient,
			authService,
			teamsService,
			pokemonService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
