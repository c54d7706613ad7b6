package pokemon

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
)

func setupPokemonTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

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

	for _, stmt := range []string{teams, pokemon} {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

func seedTeam(t *testing.T, db *gorm.DB, accountID uuid.UUID) *models.Team {
	t.Helper()

	team := &models.Team{ID: uuid.New(), AccountID: accountID, Name: "Test Squad"}
	require.NoError(t, db.Create(team).Error)
	return team
}

func newRecord(species string) *models.Pokemon {
	return &models.Pokemon{
		ID:      uuid.New(),
		Species: species,
		Ability: "static",
		Moves:   dbtypes.NewMoveSlots([]string{"tackle", "growl"}),
	}
}

func TestCreateDetachedForcesNilTeam(t *testing.T) {
	db := setupPokemonTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	teamID := uuid.New()
	record := newRecord("pikachu")
	record.TeamID = &teamID

	require.NoError(t, repo.CreateDetached(ctx, record))
	assert.Nil(t, record.TeamID)

	var loaded models.Pokemon
	require.NoError(t, db.First(&loaded, "id = ?", record.ID).Error)
	assert.Nil(t, loaded.TeamID)
}

func TestAttachBindsOwnedTeam(t *testing.T) {
	db := setupPokemonTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	accountID := uuid.New()
	team := seedTeam(t, db, accountID)

	record := newRecord("bulbasaur")
	require.NoError(t, repo.CreateDetached(ctx, record))

	attached, err := repo.Attach(ctx, accountID, team.ID, record.ID)
	require.NoError(t, err)
	assert.True(t, attached)

	roster, err := repo.ListByTeam(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "bulbasaur", roster[0].Species)
}

func TestAttachRejectsForeignTeam(t *testing.T) {
	db := setupPokemonTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	team := seedTeam(t, db, uuid.New())

	record := newRecord("charmander")
	require.NoError(t, repo.CreateDetached(ctx, record))

	attached, err := repo.Attach(ctx, uuid.New(), team.ID, record.ID)
	require.NoError(t, err)
	assert.False(t, attached)
}

func TestAttachEnforcesCapacity(t *testing.T) {
	db := setupPokemonTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	accountID := uuid.New()
	team := seedTeam(t, db, accountID)

	for i := 0; i < models.MaxTeamSize; i++ {
		record := newRecord("rattata")
		require.NoError(t, repo.CreateDetached(ctx, record))
		attached, err := repo.Attach(ctx, accountID, team.ID, record.ID)
		require.NoError(t, err)
		require.True(t, attached)
	}

	overflow := newRecord("raticate")
	require.NoError(t, repo.CreateDetached(ctx, overflow))
	attached, err := repo.Attach(ctx, accountID, team.ID, overflow.ID)
	require.NoError(t, err)
	assert.False(t, attached)

	roster, err := repo.ListByTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Len(t, roster, models.MaxTeamSize)
}

func TestAttachSkipsAlreadyAttached(t *testing.T) {
	db := setupPokemonTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	accountID := uuid.New()
	first := seedTeam(t, db, accountID)
	second := seedTeam(t, db, accountID)

	record := newRecord("eevee")
	require.NoError(t, repo.CreateDetached(ctx, record))

	attached, err := repo.Attach(ctx, accountID, first.ID, record.ID)
	require.NoError(t, err)
	require.True(t, attached)

	attached, err = repo.Attach(ctx, accountID, second.ID, record.ID)
	require.NoError(t, err)
	assert.False(t, attached)
}

func TestDetachScopedToAccount(t *testing.T) {
	db := setupPokemonTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	accountID := uuid.New()
	team := seedTeam(t, db, accountID)

	record := newRecord("squirtle")
	require.NoError(t, repo.CreateDetached(ctx, record))
	attached, err := repo.Attach(ctx, accountID, team.ID, record.ID)
	require.NoError(t, err)
	require.True(t, attached)

	detached, err := repo.Detach(ctx, uuid.New(), team.ID, record.ID)
	require.NoError(t, err)
	assert.False(t, detached)

	detached, err = repo.Detach(ctx, accountID, team.ID, record.ID)
	require.NoError(t, err)
	assert.True(t, detached)

	roster, err := repo.ListByTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Empty(t, roster)
}

func TestAttachLastSlotSingleWinner(t *testing.T) {
	db := setupPokemonTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	accountID := uuid.New()
	team := seedTeam(t, db, accountID)

	for i := 0; i < models.MaxTeamSize-1; i++ {
		record := newRecord("zubat")
		require.NoError(t, repo.CreateDetached(ctx, record))
		attached, err := repo.Attach(ctx, accountID, team.ID, record.ID)
		require.NoError(t, err)
		require.True(t, attached)
	}

	// Two candidates race for the final slot. The guarded counter update
	// serializes them, so only the first bind lands.
	first := newRecord("golbat")
	second := newRecord("crobat")
	require.NoError(t, repo.CreateDetached(ctx, first))
	require.NoError(t, repo.CreateDetached(ctx, second))

	attached, err := repo.Attach(ctx, accountID, team.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, attached)

	attached, err = repo.Attach(ctx, accountID, team.ID, second.ID)
	require.NoError(t, err)
	assert.False(t, attached)

	var loaded models.Team
	require.NoError(t, db.First(&loaded, "id = ?", team.ID).Error)
	assert.Equal(t, models.MaxTeamSize, loaded.PokemonCount)

	roster, err := repo.ListByTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Len(t, roster, models.MaxTeamSize)
}

func TestAttachReleasesSlotWhenRecordUnbound(t *testing.T) {
	db := setupPokemonTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	accountID := uuid.New()
	first := seedTeam(t, db, accountID)
	second := seedTeam(t, db, accountID)

	record := newRecord("pidgey")
	require.NoError(t, repo.CreateDetached(ctx, record))
	attached, err := repo.Attach(ctx, accountID, first.ID, record.ID)
	require.NoError(t, err)
	require.True(t, attached)

	// Binding an already-attached record must roll the reservation back.
	attached, err = repo.Attach(ctx, accountID, second.ID, record.ID)
	require.NoError(t, err)
	require.False(t, attached)

	var loaded models.Team
	require.NoError(t, db.First(&loaded, "id = ?", second.ID).Error)
	assert.Zero(t, loaded.PokemonCount)

	fresh := newRecord("pidgeotto")
	require.NoError(t, repo.CreateDetached(ctx, fresh))
	attached, err = repo.Attach(ctx, accountID, second.ID, fresh.ID)
	require.NoError(t, err)
	assert.True(t, attached)
}

func TestDetachForeignPokemonKeepsRow(t *testing.T) {
	db := setupPokemonTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	victimAccount := uuid.New()
	victimTeam := seedTeam(t, db, victimAccount)
	victim := newRecord("mewtwo")
	require.NoError(t, repo.CreateDetached(ctx, victim))
	attached, err := repo.Attach(ctx, victimAccount, victimTeam.ID, victim.ID)
	require.NoError(t, err)
	require.True(t, attached)

	attackerAccount := uuid.New()
	attackerTeam := seedTeam(t, db, attackerAccount)
	own := newRecord("meowth")
	require.NoError(t, repo.CreateDetached(ctx, own))
	attached, err = repo.Attach(ctx, attackerAccount, attackerTeam.ID, own.ID)
	require.NoError(t, err)
	require.True(t, attached)

	// Naming someone else's record against an owned team is a no-op and must
	// not release the owned team's slot either.
	detached, err := repo.Detach(ctx, attackerAccount, attackerTeam.ID, victim.ID)
	require.NoError(t, err)
	assert.False(t, detached)

	var loaded models.Pokemon
	require.NoError(t, db.First(&loaded, "id = ?", victim.ID).Error)
	require.NotNil(t, loaded.TeamID)
	assert.Equal(t, victimTeam.ID, *loaded.TeamID)

	var attacker models.Team
	require.NoError(t, db.First(&attacker, "id = ?", attackerTeam.ID).Error)
	assert.Equal(t, 1, attacker.PokemonCount)
}

func TestFindOwnedCorrelatesAllThree(t *testing.T) {
	db := setupPokemonTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	accountID := uuid.New()
	team := seedTeam(t, db, accountID)

	record := newRecord("snorlax")
	require.NoError(t, repo.CreateDetached(ctx, record))
	attached, err := repo.Attach(ctx, accountID, team.ID, record.ID)
	require.NoError(t, err)
	require.True(t, attached)

	loaded, err := repo.FindOwned(ctx, accountID, team.ID, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, loaded.ID)

	_, err = repo.FindOwned(ctx, uuid.New(), team.ID, record.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = repo.FindOwned(ctx, accountID, uuid.New(), record.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUpdateFieldsPartialUpdate(t *testing.T) {
	db := setupPokemonTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	record := newRecord("jigglypuff")
	require.NoError(t, repo.CreateDetached(ctx, record))

	updated, err := repo.UpdateFields(ctx, record.ID, map[string]any{
		"nickname": "Puff",
		"moves":    dbtypes.NewMoveSlots([]string{"sing", "pound", "defense-curl", "double-slap"}),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Nickname)
	assert.Equal(t, "Puff", *updated.Nickname)
	assert.Equal(t, "sing", updated.Moves[0])
	assert.Len(t, updated.Moves, dbtypes.MoveSlotCount)

	_, err = repo.UpdateFields(ctx, uuid.New(), map[string]any{"nickname": "Ghost"})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
