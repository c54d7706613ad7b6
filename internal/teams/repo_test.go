package teams

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pokeverse/pokeverse-backend/pkg/db/models"
	dbtypes "github.com/pokeverse/pokeverse-backend/pkg/db/types"
	"github.com/pokeverse/pokeverse-backend/pkg/pagination"
)

func setupTeamsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	accounts := `
CREATE TABLE IF NOT EXISTS accounts (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	teams := `
CREATE TABLE IF NOT EXISTS teams (
  id TEXT PRIMARY KEY,
  account_id TEXT NOT NULL,
  name TEXT NOT NULL,
  position INTEGER NOT NULL,
  pokemon_count INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	pokemon := `
CREATE TABLE IF NOT EXISTS pokemon (
  id TEXT PRIMARY KEY,
  team_id TEXT,
  species TEXT NOT NULL,
  species_index INTEGER NOT NULL,
  nickname TEXT,
  ability TEXT NOT NULL,
  moves TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`

	for _, stmt := range []string{accounts, teams, pokemon} {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

func seedPokemon(t *testing.T, db *gorm.DB, teamID uuid.UUID, species string) *models.Pokemon {
	t.Helper()

	record := &models.Pokemon{
		ID:      uuid.New(),
		TeamID:  &teamID,
		Species: species,
		Ability: "static",
		Moves:   dbtypes.NewMoveSlots([]string{"tackle"}),
	}
	require.NoError(t, db.Create(record).Error)
	return record
}

func TestAccountExists(t *testing.T) {
	db := setupTeamsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	account := &models.Account{
		ID:           uuid.New(),
		Username:     "misty-" + uuid.NewString()[:8],
		Email:        uuid.NewString()[:8] + "@cerulean.example",
		PasswordHash: "hash",
	}
	require.NoError(t, db.Create(account).Error)

	exists, err := repo.AccountExists(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.AccountExists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateAssignsSequentialPositions(t *testing.T) {
	db := setupTeamsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	accountID := uuid.New()

	first, err := repo.Create(ctx, accountID, "My Team")
	require.NoError(t, err)
	assert.Equal(t, 0, first.Position)

	second, err := repo.Create(ctx, accountID, "Gym Squad")
	require.NoError(t, err)
	assert.Equal(t, 1, second.Position)

	// positions are per account
	other, err := repo.Create(ctx, uuid.New(), "Rival Team")
	require.NoError(t, err)
	assert.Equal(t, 0, other.Position)
}

func TestListByAccountOrdersAndPreloads(t *testing.T) {
	db := setupTeamsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	accountID := uuid.New()

	first, err := repo.Create(ctx, accountID, "Alpha")
	require.NoError(t, err)
	_, err = repo.Create(ctx, accountID, "Beta")
	require.NoError(t, err)
	seedPokemon(t, db, first.ID, "pikachu")

	listed, err := repo.ListByAccount(ctx, accountID, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Alpha", listed[0].Name)
	assert.Equal(t, "Beta", listed[1].Name)
	assert.Len(t, listed[0].Pokemon, 1)

	page, err := repo.ListByAccount(ctx, accountID, pagination.Params{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Beta", page[0].Name)
}

func TestListByAccountScopesOwnership(t *testing.T) {
	db := setupTeamsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	mine := uuid.New()
	theirs := uuid.New()
	_, err := repo.Create(ctx, mine, "Mine")
	require.NoError(t, err)
	_, err = repo.Create(ctx, theirs, "Theirs")
	require.NoError(t, err)

	listed, err := repo.ListByAccount(ctx, mine, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Mine", listed[0].Name)
}

func TestSearchByNameCaseInsensitive(t *testing.T) {
	db := setupTeamsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	accountID := uuid.New()

	_, err := repo.Create(ctx, accountID, "Elite Four")
	require.NoError(t, err)
	_, err = repo.Create(ctx, accountID, "Gym Squad")
	require.NoError(t, err)

	matches, err := repo.SearchByName(ctx, accountID, "ELITE", pagination.Params{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Elite Four", matches[0].Name)

	none, err := repo.SearchByName(ctx, accountID, "rocket", pagination.Params{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRenameScopedToAccount(t *testing.T) {
	db := setupTeamsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	accountID := uuid.New()

	team, err := repo.Create(ctx, accountID, "Old Name")
	require.NoError(t, err)

	require.NoError(t, repo.Rename(ctx, accountID, team.ID, "New Name"))

	loaded, err := repo.FindOwned(ctx, accountID, team.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", loaded.Name)

	err = repo.Rename(ctx, uuid.New(), team.ID, "Hijacked")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDeleteRemovesRoster(t *testing.T) {
	db := setupTeamsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	accountID := uuid.New()

	team, err := repo.Create(ctx, accountID, "Doomed")
	require.NoError(t, err)
	record := seedPokemon(t, db, team.ID, "magikarp")

	require.NoError(t, repo.Delete(ctx, accountID, team.ID))

	_, err = repo.FindOwned(ctx, accountID, team.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	var count int64
	require.NoError(t, db.Model(&models.Pokemon{}).Where("id = ?", record.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteNotOwned(t *testing.T) {
	db := setupTeamsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	team, err := repo.Create(ctx, uuid.New(), "Protected")
	require.NoError(t, err)

	err = repo.Delete(ctx, uuid.New(), team.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
