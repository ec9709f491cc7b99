package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"star-catalog-api/internal/model"
)

type fakeCatalogStore struct {
	people  []model.Person
	planets []model.Planet
}

func (s *fakeCatalogStore) ListPeople(context.Context) ([]model.Person, error) {
	return s.people, nil
}

func (s *fakeCatalogStore) GetPerson(_ context.Context, id int64) (model.Person, error) {
	for _, p := range s.people {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Person{}, model.ErrPersonNotFound
}

func (s *fakeCatalogStore) ListPlanets(context.Context) ([]model.Planet, error) {
	return s.planets, nil
}

func (s *fakeCatalogStore) GetPlanet(_ context.Context, id int64) (model.Planet, error) {
	for _, p := range s.planets {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Planet{}, model.ErrPlanetNotFound
}

func (s *fakeCatalogStore) InsertPerson(_ context.Context, p model.Person) error {
	s.people = append(s.people, p)
	return nil
}

func (s *fakeCatalogStore) InsertPlanet(_ context.Context, p model.Planet) error {
	s.planets = append(s.planets, p)
	return nil
}

func TestImportFromSWAPI(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/people":
			_, _ = w.Write([]byte(`{"results":[
				{"name":"Luke Skywalker","height":"172","mass":"77"},
				{"name":"R2-D2","height":"96","mass":"unknown"}
			]}`))
		case "/planets":
			_, _ = w.Write([]byte(`{"results":[
				{"name":"Tatooine","climate":"arid","gravity":"1 standard","population":"200000"},
				{"name":"Hoth","climate":"frozen","gravity":"1.1 standard","population":"unknown"}
			]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(upstream.Close)

	store := &fakeCatalogStore{}
	svc := NewCatalogService(store, upstream.URL)

	require.NoError(t, svc.ImportFromSWAPI(context.Background()))

	require.Len(t, store.people, 2)
	require.Equal(t, "Luke Skywalker", store.people[0].Name)
	require.EqualValues(t, 172, store.people[0].Height)
	require.EqualValues(t, 77, store.people[0].Mass)
	// "unknown" collapses to zero rather than failing the import.
	require.EqualValues(t, 0, store.people[1].Mass)

	require.Len(t, store.planets, 2)
	require.Equal(t, "Tatooine", store.planets[0].Name)
	require.EqualValues(t, 200000, store.planets[0].Population)
	require.EqualValues(t, 0, store.planets[1].Population)
}

func TestImportFromSWAPI_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(upstream.Close)

	svc := NewCatalogService(&fakeCatalogStore{}, upstream.URL)
	require.Error(t, svc.ImportFromSWAPI(context.Background()))
}

func TestParseCount(t *testing.T) {
	require.EqualValues(t, 172, parseCount("172"))
	require.EqualValues(t, 1000000000, parseCount("1,000,000,000"))
	require.EqualValues(t, 0, parseCount("unknown"))
	require.EqualValues(t, 0, parseCount(""))
}
