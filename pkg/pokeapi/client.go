package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pokeverse/pokeverse-backend/pkg/config"
	pkgerrors "github.com/pokeverse/pokeverse-backend/pkg/errors"
	"github.com/pokeverse/pokeverse-backend/pkg/logger"
	"github.com/pokeverse/pokeverse-backend/pkg/pagination"
)

// speciesListLimit matches the upstream catalog size so the substring search
// sees every species in one page.
const speciesListLimit = 10000

// searchDetailConcurrency bounds the per-result detail fan-out during search.
const searchDetailConcurrency = 8

var errUpstreamNotFound = errors.New("pokeapi: resource not found")

// SpeciesSummary is the shape the public search endpoint returns per species.
type SpeciesSummary struct {
	Name          string   `json:"name"`
	Types         []string `json:"types"`
	PokedexNumber int      `json:"pokedexNumber"`
	Color         *string  `json:"color"`
}

// Ability is one entry of the public abilities endpoint.
type Ability struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	IsHidden bool   `json:"is_hidden"`
	Slot     int    `json:"slot"`
}

// MoveVersionDetail describes where a move is learned in one version group.
type MoveVersionDetail struct {
	LevelLearnedAt  int    `json:"level_learned_at"`
	MoveLearnMethod string `json:"move_learn_method"`
	VersionGroup    string `json:"version_group"`
}

// Move is one entry of the public moves endpoint.
type Move struct {
	Name                string              `json:"name"`
	URL                 string              `json:"url"`
	VersionGroupDetails []MoveVersionDetail `json:"version_group_details"`
}

// Client is a thin gateway over the external PokeAPI. It never caches; the
// team and roster flows tolerate upstream failure by degrading to empty data.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logg       *logger.Logger
}

func New(cfg config.PokeAPIConfig, logg *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logg:       logg,
	}
}

// Upstream wire shapes. Only the fields the gateway reads are declared.
type namedRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type pokemonResource struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Species namedRef `json:"species"`
	Types   []struct {
		Type namedRef `json:"type"`
	} `json:"types"`
	Abilities []struct {
		Ability  namedRef `json:"ability"`
		IsHidden bool     `json:"is_hidden"`
		Slot     int      `json:"slot"`
	} `json:"abilities"`
	Moves []struct {
		Move                namedRef `json:"move"`
		VersionGroupDetails []struct {
			LevelLearnedAt  int      `json:"level_learned_at"`
			MoveLearnMethod namedRef `json:"move_learn_method"`
			VersionGroup    namedRef `json:"version_group"`
		} `json:"version_group_details"`
	} `json:"moves"`
}

type speciesResource struct {
	Color     namedRef `json:"color"`
	Varieties []struct {
		IsDefault bool     `json:"is_default"`
		Pokemon   namedRef `json:"pokemon"`
	} `json:"varieties"`
}

type speciesList struct {
	Results []namedRef `json:"results"`
}

// LookupAbilities resolves the ability names for a species. An empty slice
// signals an unknown species to callers; upstream failures are logged and
// also surface as empty rather than propagating.
func (c *Client) LookupAbilities(ctx context.Context, speciesName string) []string {
	var resource pokemonResource
	url := fmt.Sprintf("%s/pokemon/%s", c.baseURL, strings.ToLower(speciesName))
	if err := c.getJSON(ctx, url, &resource); err != nil {
		c.logUpstreamFailure(ctx, "lookup abilities", speciesName, err)
		return nil
	}
	abilities := make([]string, 0, len(resource.Abilities))
	for _, entry := range resource.Abilities {
		abilities = append(abilities, entry.Ability.Name)
	}
	return abilities
}

// LookupDefaultMoves returns the first four known move names for a species,
// padded with empty strings. On upstream failure every slot is empty.
func (c *Client) LookupDefaultMoves(ctx context.Context, speciesName string) []string {
	moves := make([]string, 4)
	details, err := c.MoveDetails(ctx, speciesName)
	if err != nil {
		c.logUpstreamFailure(ctx, "lookup default moves", speciesName, err)
		return moves
	}
	for i := 0; i < len(moves) && i < len(details); i++ {
		moves[i] = details[i].Name
	}
	return moves
}

// Search resolves a query against the catalog. An exact name or id match
// returns a single-entry page; otherwise the full species list is filtered
// by substring, paginated, and each page entry is resolved to its summary.
// An empty query matches every species.
func (c *Client) Search(ctx context.Context, query string, page pagination.Params) ([]SpeciesSummary, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	page = pagination.Normalize(page)

	if query != "" {
		if summary, err := c.directMatch(ctx, query); err == nil {
			return []SpeciesSummary{summary}, nil
		}
	}

	var list speciesList
	url := fmt.Sprintf("%s/pokemon-species/?limit=%d", c.baseURL, speciesListLimit)
	if err := c.getJSON(ctx, url, &list); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "species search failed")
	}

	matching := list.Results
	if query != "" {
		matching = matching[:0:0]
		for _, entry := range list.Results {
			if strings.Contains(entry.Name, query) {
				matching = append(matching, entry)
			}
		}
	}

	if page.Offset >= len(matching) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pokemon not found")
	}
	end := page.Offset + page.Limit
	if end > len(matching) {
		end = len(matching)
	}
	window := matching[page.Offset:end]

	summaries := c.resolveSummaries(ctx, window)
	if len(summaries) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pokemon not found")
	}
	return summaries, nil
}

// AbilityDetails returns the full ability entries for a species via its
// default variant, as the public abilities endpoint exposes them.
func (c *Client) AbilityDetails(ctx context.Context, speciesName string) ([]Ability, error) {
	resource, err := c.defaultVariant(ctx, speciesName)
	if err != nil {
		return nil, err
	}
	abilities := make([]Ability, 0, len(resource.Abilities))
	for _, entry := range resource.Abilities {
		abilities = append(abilities, Ability{
			Name:     entry.Ability.Name,
			URL:      entry.Ability.URL,
			IsHidden: entry.IsHidden,
			Slot:     entry.Slot,
		})
	}
	return abilities, nil
}

// MoveDetails returns the full move entries for a species via its default
// variant, as the public moves endpoint exposes them.
func (c *Client) MoveDetails(ctx context.Context, speciesName string) ([]Move, error) {
	resource, err := c.defaultVariant(ctx, speciesName)
	if err != nil {
		return nil, err
	}
	moves := make([]Move, 0, len(resource.Moves))
	for _, entry := range resource.Moves {
		details := make([]MoveVersionDetail, 0, len(entry.VersionGroupDetails))
		for _, vg := range entry.VersionGroupDetails {
			details = append(details, MoveVersionDetail{
				LevelLearnedAt:  vg.LevelLearnedAt,
				MoveLearnMethod: vg.MoveLearnMethod.Name,
				VersionGroup:    vg.VersionGroup.Name,
			})
		}
		moves = append(moves, Move{
			Name:                entry.Move.Name,
			URL:                 entry.Move.URL,
			VersionGroupDetails: details,
		})
	}
	return moves, nil
}

func (c *Client) directMatch(ctx context.Context, query string) (SpeciesSummary, error) {
	var resource pokemonResource
	url := fmt.Sprintf("%s/pokemon/%s", c.baseURL, query)
	if err := c.getJSON(ctx, url, &resource); err != nil {
		return SpeciesSummary{}, err
	}
	return c.summarize(ctx, resource), nil
}

func (c *Client) defaultVariant(ctx context.Context, speciesName string) (pokemonResource, error) {
	speciesName = strings.ToLower(strings.TrimSpace(speciesName))

	var species speciesResource
	url := fmt.Sprintf("%s/pokemon-species/%s", c.baseURL, speciesName)
	if err := c.getJSON(ctx, url, &species); err != nil {
		if errors.Is(err, errUpstreamNotFound) {
			return pokemonResource{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("pokemon species not found: %s", speciesName))
		}
		return pokemonResource{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "species lookup failed")
	}

	var variantURL string
	for _, variety := range species.Varieties {
		if variety.IsDefault {
			variantURL = variety.Pokemon.URL
			break
		}
	}
	if variantURL == "" {
		return pokemonResource{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no default pokemon found for species: %s", speciesName))
	}

	var resource pokemonResource
	if err := c.getJSON(ctx, variantURL, &resource); err != nil {
		if errors.Is(err, errUpstreamNotFound) {
			return pokemonResource{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("pokemon species not found: %s", speciesName))
		}
		return pokemonResource{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "pokemon lookup failed")
	}
	return resource, nil
}

// resolveSummaries fans out per-entry detail lookups. Entries whose detail
// fetch fails are dropped from the page rather than failing the search.
func (c *Client) resolveSummaries(ctx context.Context, entries []namedRef) []SpeciesSummary {
	results := make([]*SpeciesSummary, len(entries))
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(searchDetailConcurrency)
	for i, entry := range entries {
		i, entry := i, entry
		group.Go(func() error {
			var resource pokemonResource
			url := strings.Replace(entry.URL, "-species", "", 1)
			if err := c.getJSON(groupCtx, url, &resource); err != nil {
				c.logUpstreamFailure(groupCtx, "search detail", entry.Name, err)
				return nil
			}
			summary := c.summarize(groupCtx, resource)
			mu.Lock()
			results[i] = &summary
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()

	summaries := make([]SpeciesSummary, 0, len(entries))
	for _, summary := range results {
		if summary != nil {
			summaries = append(summaries, *summary)
		}
	}
	return summaries
}

func (c *Client) summarize(ctx context.Context, resource pokemonResource) SpeciesSummary {
	types := make([]string, 0, len(resource.Types))
	for _, entry := range resource.Types {
		types = append(types, entry.Type.Name)
	}

	var color *string
	var species speciesResource
	if err := c.getJSON(ctx, resource.Species.URL, &species); err != nil {
		c.logUpstreamFailure(ctx, "species color", resource.Name, err)
	} else if species.Color.Name != "" {
		name := species.Color.Name
		color = &name
	}

	return SpeciesSummary{
		Name:          resource.Name,
		Types:         types,
		PokedexNumber: resource.ID,
		Color:         color,
	}
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errUpstreamNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("get %s: unexpected status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

func (c *Client) logUpstreamFailure(ctx context.Context, operation, subject string, err error) {
	if c.logg == nil {
		return
	}
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"operation": operation,
		"subject":   subject,
	})
	c.logg.Warn(logCtx, fmt.Sprintf("pokeapi %s failed: %v", operation, err))
}
