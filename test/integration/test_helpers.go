//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"star-catalog-api/internal/config"
	"star-catalog-api/internal/handler"
	"star-catalog-api/internal/middleware"
	"star-catalog-api/internal/model"
	"star-catalog-api/internal/router"
	"star-catalog-api/internal/service"
)

// In-memory stores standing in for the pgx repositories, so the whole
// HTTP surface can be exercised without a database.

type memUserStore struct {
	mu      sync.Mutex
	byEmail map[string]model.User
	byID    map[int64]model.User
	nextID  int64
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byEmail: map[string]model.User{}, byID: map[int64]model.User{}, nextID: 1}
}

func (s *memUserStore) Create(_ context.Context, email string, passwordHash string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return model.User{}, model.ErrEmailAlreadyTaken
	}
	u := model.User{ID: s.nextID, Email: email, PasswordHash: passwordHash, IsActive: true, CreatedAt: time.Now()}
	s.nextID++
	s.byEmail[email] = u
	s.byID[u.ID] = u
	return u, nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byEmail[email]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *memUserStore) FindByID(_ context.Context, id int64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *memUserStore) deactivate(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.byID[id]
	u.IsActive = false
	s.byID[id] = u
	s.byEmail[u.Email] = u
}

type memRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newMemRevocationStore() *memRevocationStore {
	return &memRevocationStore{revoked: map[string]time.Time{}}
}

func (s *memRevocationStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.revoked[token]; !exists {
		s.revoked[token] = time.Now()
	}
	return nil
}

func (s *memRevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.revoked[token]
	return ok, nil
}

type favKey struct {
	userID   int64
	target   string
	targetID int64
}

type memFavoriteStore struct {
	mu     sync.Mutex
	rows   map[favKey]model.Favorite
	nextID int64
}

func newMemFavoriteStore() *memFavoriteStore {
	return &memFavoriteStore{rows: map[favKey]model.Favorite{}, nextID: 1}
}

func (s *memFavoriteStore) ListIDs(_ context.Context, userID int64, target string) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0)
	for key := range s.rows {
		if key.userID == userID && key.target == target {
			ids = append(ids, key.targetID)
		}
	}
	return ids, nil
}

func (s *memFavoriteStore) Add(_ context.Context, userID int64, target string, targetID int64) (model.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := favKey{userID: userID, target: target, targetID: targetID}
	if existing, ok := s.rows[key]; ok {
		return existing, nil
	}
	f := model.Favorite{ID: s.nextID, UserID: userID, Target: target, TargetID: targetID}
	s.nextID++
	s.rows[key] = f
	return f, nil
}

func (s *memFavoriteStore) Remove(_ context.Context, userID int64, target string, targetID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := favKey{userID: userID, target: target, targetID: targetID}
	if _, ok := s.rows[key]; !ok {
		return 0, nil
	}
	delete(s.rows, key)
	return 1, nil
}

type memCatalogStore struct {
	people  []model.Person
	planets []model.Planet
}

func (s *memCatalogStore) ListPeople(context.Context) ([]model.Person, error) {
	return s.people, nil
}

func (s *memCatalogStore) GetPerson(_ context.Context, id int64) (model.Person, error) {
	for _, p := range s.people {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Person{}, model.ErrPersonNotFound
}

func (s *memCatalogStore) ListPlanets(context.Context) ([]model.Planet, error) {
	return s.planets, nil
}

func (s *memCatalogStore) GetPlanet(_ context.Context, id int64) (model.Planet, error) {
	for _, p := range s.planets {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Planet{}, model.ErrPlanetNotFound
}

func (s *memCatalogStore) InsertPerson(_ context.Context, p model.Person) error {
	s.people = append(s.people, p)
	return nil
}

func (s *memCatalogStore) InsertPlanet(_ context.Context, p model.Planet) error {
	s.planets = append(s.planets, p)
	return nil
}

type testEnv struct {
	server  *httptest.Server
	users   *memUserStore
	revoked *memRevocationStore
}

func newTestServer(t *testing.T) *testEnv {
	t.Helper()

	users := newMemUserStore()
	revoked := newMemRevocationStore()

	authService, err := service.NewAuthService("test-secret", 15*time.Minute, users, revoked)
	require.NoError(t, err)
	favoriteService := service.NewFavoriteService(newMemFavoriteStore())
	catalogService := service.NewCatalogService(&memCatalogStore{
		people: []model.Person{
			{ID: 1, Name: "Luke Skywalker", Height: 172, Mass: 77},
		},
		planets: []model.Planet{
			{ID: 1, Name: "Tatooine", Climate: "arid", Gravity: "1 standard", Population: 200000},
		},
	}, "http://swapi.invalid")

	cfg := &config.Config{
		ServerPort:       "3001",
		RequestTimeout:   30 * time.Second,
		JWTSecret:        "test-secret",
		JWTAccessTTL:     15 * time.Minute,
		CORSOrigins:      []string{"*"},
		RateLimitRPM:     10000,
		AuthRateLimitRPM: 10000,
	}

	appRouter := router.New(cfg, middleware.NewAuthMiddleware(authService), router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Favorite: handler.NewFavoriteHandler(favoriteService),
		Catalog:  handler.NewCatalogHandler(catalogService),
	})

	server := httptest.NewServer(appRouter)
	t.Cleanup(server.Close)

	return &testEnv{server: server, users: users, revoked: revoked}
}

func (e *testEnv) register(t *testing.T, email string, password string) model.PublicUser {
	t.Helper()

	resp := doJSON(t, http.MethodPost, e.server.URL+"/register", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user model.PublicUser
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	return user
}

func (e *testEnv) login(t *testing.T, email string, password string) string {
	t.Helper()

	resp := doJSON(t, http.MethodPost, e.server.URL+"/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	require.NotEmpty(t, parsed.AccessToken)
	return parsed.AccessToken
}

func doJSON(t *testing.T, method string, url string, payload any, token string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
