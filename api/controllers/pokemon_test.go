package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/pokeverse/pokeverse-backend/internal/pokemon"
	pkgerrors "github.com/pokeverse/pokeverse-backend/pkg/errors"
)

type stubPokemonService struct {
	roster []pokemon.PokemonDTO
	record *pokemon.PokemonDTO
	err    error
}

func (s *stubPokemonService) AddToTeam(ctx context.Context, accountID uuid.UUID, req pokemon.AddPokemonRequest) (*pokemon.PokemonDTO, error) {
	return s.record, s.err
}

func (s *stubPokemonService) RemoveFromTeam(ctx context.Context, accountID, teamID, pokemonID uuid.UUID) error {
	return s.err
}

func (s *stubPokemonService) GetTeamRoster(ctx context.Context, accountID, teamID uuid.UUID) ([]pokemon.PokemonDTO, error) {
	return s.roster, s.err
}

func (s *stubPokemonService) UpdatePokemon(ctx context.Context, accountID, teamID, pokemonID uuid.UUID, req pokemon.UpdatePokemonRequest) (*pokemon.PokemonDTO, error) {
	return s.record, s.err
}

func TestPokemonRosterSuccess(t *testing.T) {
	teamID := uuid.New()
	svc := &stubPokemonService{roster: []pokemon.PokemonDTO{
		{ID: uuid.New(), TeamID: &teamID, Name: "pikachu", Moves: []string{"thunderbolt", "quick-attack", "iron-tail", "electro-ball"}},
	}}
	handler := PokemonRoster(svc, nil)

	req := authedRequest(t, http.MethodGet, "/getPokemon/"+teamID.String(), nil, map[string]string{"teamId": teamID.String()})
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data []pokemon.PokemonDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Name != "pikachu" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestPokemonAddCreated(t *testing.T) {
	teamID := uuid.New()
	record := &pokemon.PokemonDTO{ID: uuid.New(), TeamID: &teamID, Name: "bulbasaur"}
	handler := PokemonAdd(&stubPokemonService{record: record}, nil)

	body := []byte(`{"speciesName":"bulbasaur","teamId":"` + teamID.String() + `","pokedexNumber":1}`)
	req := authedRequest(t, http.MethodPost, "/addPokemon", body, nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			Message string             `json:"message"`
			Pokemon pokemon.PokemonDTO `json:"pokemon"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Pokemon.Name != "bulbasaur" {
		t.Fatalf("unexpected record payload %+v", envelope.Data.Pokemon)
	}
}

func TestPokemonAddTeamFull(t *testing.T) {
	svcErr := pkgerrors.New(pkgerrors.CodeCapacity, "team is full").WithDetails(map[string]any{"max_team_size": 6})
	handler := PokemonAdd(&stubPokemonService{err: svcErr}, nil)

	body := []byte(`{"speciesName":"bulbasaur","teamId":"` + uuid.NewString() + `","pokedexNumber":1}`)
	req := authedRequest(t, http.MethodPost, "/addPokemon", body, nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Message string         `json:"message"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Message != "team is full" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
	if envelope.Error.Details["max_team_size"] == nil {
		t.Fatalf("expected max_team_size detail got %+v", envelope.Error.Details)
	}
}

func TestPokemonDeleteInvalidPokemonID(t *testing.T) {
	handler := PokemonDelete(&stubPokemonService{}, nil)

	teamID := uuid.NewString()
	req := authedRequest(t, http.MethodDelete, "/deletePokemon/"+teamID+"/junk", nil, map[string]string{
		"teamId":    teamID,
		"pokemonId": "junk",
	})
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestPokemonUpdateNotFound(t *testing.T) {
	svcErr := pkgerrors.New(pkgerrors.CodeNotFound, "account, team, or pokemon not found for this user")
	handler := PokemonUpdate(&stubPokemonService{err: svcErr}, nil)

	teamID := uuid.NewString()
	pokemonID := uuid.NewString()
	req := authedRequest(t, http.MethodPut, "/updatePokemon/"+teamID+"/"+pokemonID, []byte(`{"nickname":"Sparky"}`), map[string]string{
		"teamId":    teamID,
		"pokemonId": pokemonID,
	})
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Message != "account, team, or pokemon not found for this user" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}

func TestPokemonUpdateSuccess(t *testing.T) {
	teamID := uuid.New()
	nickname := "Sparky"
	record := &pokemon.PokemonDTO{ID: uuid.New(), TeamID: &teamID, Name: "pikachu", Nickname: &nickname}
	handler := PokemonUpdate(&stubPokemonService{record: record}, nil)

	req := authedRequest(t, http.MethodPut, "/updatePokemon/"+teamID.String()+"/"+record.ID.String(), []byte(`{"nickname":"Sparky"}`), map[string]string{
		"teamId":    teamID.String(),
		"pokemonId": record.ID.String(),
	})
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			Message string             `json:"message"`
			Pokemon pokemon.PokemonDTO `json:"pokemon"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Pokemon.Nickname == nil || *envelope.Data.Pokemon.Nickname != "Sparky" {
		t.Fatalf("unexpected record payload %+v", envelope.Data.Pokemon)
	}
}
