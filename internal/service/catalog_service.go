package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"star-catalog-api/internal/model"
)

// CatalogStore is the slice of the catalog repository the service
// needs. Inserts exist for the import path only.
type CatalogStore interface {
	ListPeople(ctx context.Context) ([]model.Person, error)
	GetPerson(ctx context.Context, id int64) (model.Person, error)
	ListPlanets(ctx context.Context) ([]model.Planet, error)
	GetPlanet(ctx context.Context, id int64) (model.Planet, error)
	InsertPerson(ctx context.Context, p model.Person) error
	InsertPlanet(ctx context.Context, p model.Planet) error
}

type CatalogService struct {
	catalog CatalogStore
	baseURL string
	client  *http.Client
}

func NewCatalogService(catalog CatalogStore, swapiBaseURL string) *CatalogService {
	return &CatalogService{
		catalog: catalog,
		baseURL: strings.TrimRight(swapiBaseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *CatalogService) ListPeople(ctx context.Context) ([]model.Person, error) {
	return s.catalog.ListPeople(ctx)
}

func (s *CatalogService) GetPerson(ctx context.Context, id int64) (model.Person, error) {
	return s.catalog.GetPerson(ctx, id)
}

func (s *CatalogService) ListPlanets(ctx context.Context) ([]model.Planet, error) {
	return s.catalog.ListPlanets(ctx)
}

func (s *CatalogService) GetPlanet(ctx context.Context, id int64) (model.Planet, error) {
	return s.catalog.GetPlanet(ctx, id)
}

// swapiPage is the subset of a SWAPI list response the importer reads.
// Numeric fields arrive as strings and may be "unknown".
type swapiPage struct {
	Results []map[string]string `json:"results"`
}

// ImportFromSWAPI seeds the people and planets tables from the public
// SWAPI API. Used by the seed command, never by the server.
func (s *CatalogService) ImportFromSWAPI(ctx context.Context) error {
	people, err := s.fetchPage(ctx, "/people")
	if err != nil {
		return fmt.Errorf("fetch people: %w", err)
	}
	for _, row := range people {
		p := model.Person{
			Name:   row["name"],
			Height: parseCount(row["height"]),
			Mass:   parseCount(row["mass"]),
		}
		if err := s.catalog.InsertPerson(ctx, p); err != nil {
			return err
		}
		slog.Info("imported person", "name", p.Name)
	}

	planets, err := s.fetchPage(ctx, "/planets")
	if err != nil {
		return fmt.Errorf("fetch planets: %w", err)
	}
	for _, row := range planets {
		p := model.Planet{
			Name:       row["name"],
			Climate:    row["climate"],
			Gravity:    row["gravity"],
			Population: parseCount(row["population"]),
		}
		if err := s.catalog.InsertPlanet(ctx, p); err != nil {
			return err
		}
		slog.Info("imported planet", "name", p.Name)
	}

	return nil
}

func (s *CatalogService) fetchPage(ctx context.Context, path string) ([]map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, s.baseURL+path)
	}

	var page swapiPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return page.Results, nil
}

// parseCount reads SWAPI's stringly-typed numbers; "unknown" and other
// junk become zero.
func parseCount(raw string) int64 {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
