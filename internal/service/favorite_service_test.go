package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"star-catalog-api/internal/model"
)

type favKey struct {
	userID   int64
	target   string
	targetID int64
}

type fakeFavoriteStore struct {
	rows   map[favKey]model.Favorite
	nextID int64
}

func newFakeFavoriteStore() *fakeFavoriteStore {
	return &fakeFavoriteStore{rows: map[favKey]model.Favorite{}, nextID: 1}
}

func (s *fakeFavoriteStore) ListIDs(_ context.Context, userID int64, target string) ([]int64, error) {
	ids := make([]int64, 0)
	for key := range s.rows {
		if key.userID == userID && key.target == target {
			ids = append(ids, key.targetID)
		}
	}
	return ids, nil
}

func (s *fakeFavoriteStore) Add(_ context.Context, userID int64, target string, targetID int64) (model.Favorite, error) {
	key := favKey{userID: userID, target: target, targetID: targetID}
	if existing, ok := s.rows[key]; ok {
		return existing, nil
	}
	f := model.Favorite{ID: s.nextID, UserID: userID, Target: target, TargetID: targetID}
	s.nextID++
	s.rows[key] = f
	return f, nil
}

func (s *fakeFavoriteStore) Remove(_ context.Context, userID int64, target string, targetID int64) (int64, error) {
	key := favKey{userID: userID, target: target, targetID: targetID}
	if _, ok := s.rows[key]; !ok {
		return 0, nil
	}
	delete(s.rows, key)
	return 1, nil
}

func TestFavoriteService(t *testing.T) {
	ctx := context.Background()
	alice := model.User{ID: 1, Email: "alice@test.com", IsActive: true}
	bob := model.User{ID: 2, Email: "bob@test.com", IsActive: true}

	t.Run("add then list then remove", func(t *testing.T) {
		svc := NewFavoriteService(newFakeFavoriteStore())

		fav, err := svc.Add(ctx, alice, "movies", 7)
		require.NoError(t, err)
		require.Equal(t, alice.ID, fav.UserID)
		require.Equal(t, "movies", fav.Target)
		require.EqualValues(t, 7, fav.TargetID)

		ids, err := svc.List(ctx, alice, "movies")
		require.NoError(t, err)
		require.Equal(t, []int64{7}, ids)

		removed, err := svc.Remove(ctx, alice, "movies", 7)
		require.NoError(t, err)
		require.EqualValues(t, 1, removed)

		ids, err = svc.List(ctx, alice, "movies")
		require.NoError(t, err)
		require.Empty(t, ids)
	})

	t.Run("re-adding the same tuple is idempotent", func(t *testing.T) {
		// Uniqueness on (user, target, target_id) is a deliberate
		// deviation from the permissive reference schema.
		svc := NewFavoriteService(newFakeFavoriteStore())

		first, err := svc.Add(ctx, alice, "movies", 7)
		require.NoError(t, err)
		second, err := svc.Add(ctx, alice, "movies", 7)
		require.NoError(t, err)
		require.Equal(t, first.ID, second.ID)

		ids, err := svc.List(ctx, alice, "movies")
		require.NoError(t, err)
		require.Equal(t, []int64{7}, ids)
	})

	t.Run("removing an absent tuple reports zero rows", func(t *testing.T) {
		svc := NewFavoriteService(newFakeFavoriteStore())

		removed, err := svc.Remove(ctx, alice, "movies", 99)
		require.NoError(t, err)
		require.EqualValues(t, 0, removed)

		// Safe to repeat.
		removed, err = svc.Remove(ctx, alice, "movies", 99)
		require.NoError(t, err)
		require.EqualValues(t, 0, removed)
	})

	t.Run("operations are scoped to the acting user", func(t *testing.T) {
		svc := NewFavoriteService(newFakeFavoriteStore())

		_, err := svc.Add(ctx, alice, "planets", 3)
		require.NoError(t, err)

		ids, err := svc.List(ctx, bob, "planets")
		require.NoError(t, err)
		require.Empty(t, ids)

		removed, err := svc.Remove(ctx, bob, "planets", 3)
		require.NoError(t, err)
		require.EqualValues(t, 0, removed)

		ids, err = svc.List(ctx, alice, "planets")
		require.NoError(t, err)
		require.Equal(t, []int64{3}, ids)
	})

	t.Run("arbitrary target kinds are accepted", func(t *testing.T) {
		// No allow-list: the kind is an opaque label.
		svc := NewFavoriteService(newFakeFavoriteStore())

		_, err := svc.Add(ctx, alice, "starships", 12)
		require.NoError(t, err)

		ids, err := svc.List(ctx, alice, "starships")
		require.NoError(t, err)
		require.Equal(t, []int64{12}, ids)
	})

	t.Run("blank target kind is rejected", func(t *testing.T) {
		svc := NewFavoriteService(newFakeFavoriteStore())

		_, err := svc.Add(ctx, alice, "  ", 1)
		require.Error(t, err)
		_, err = svc.List(ctx, alice, "")
		require.Error(t, err)
	})

	t.Run("non-positive target id is rejected", func(t *testing.T) {
		svc := NewFavoriteService(newFakeFavoriteStore())

		_, err := svc.Add(ctx, alice, "movies", 0)
		require.Error(t, err)
		_, err = svc.Remove(ctx, alice, "movies", -1)
		require.Error(t, err)
	})
}
