package service

import (
	"context"
	"strings"

	"star-catalog-api/internal/model"
	"star-catalog-api/pkg/apierror"
)

// FavoriteStore is the slice of the favorites repository the service
// needs.
type FavoriteStore interface {
	ListIDs(ctx context.Context, userID int64, target string) ([]int64, error)
	Add(ctx context.Context, userID int64, target string, targetID int64) (model.Favorite, error)
	Remove(ctx context.Context, userID int64, target string, targetID int64) (int64, error)
}

// FavoriteService scopes every operation to the acting user, which is
// always the identity resolved from the verified token — never an id
// taken from the request payload or path. Target kinds are accepted as
// arbitrary non-empty labels; there is no allow-list.
type FavoriteService struct {
	favorites FavoriteStore
}

func NewFavoriteService(favorites FavoriteStore) *FavoriteService {
	return &FavoriteService{favorites: favorites}
}

func (s *FavoriteService) List(ctx context.Context, actor model.User, target string) ([]int64, error) {
	target, err := normalizeTarget(target)
	if err != nil {
		return nil, err
	}
	return s.favorites.ListIDs(ctx, actor.ID, target)
}

func (s *FavoriteService) Add(ctx context.Context, actor model.User, target string, targetID int64) (model.Favorite, error) {
	target, err := normalizeTarget(target)
	if err != nil {
		return model.Favorite{}, err
	}
	if targetID <= 0 {
		return model.Favorite{}, apierror.BadRequest("target id must be positive")
	}

	// The target id is not checked against the catalog tables; a
	// favorite may point at an id that no reference entity carries.
	return s.favorites.Add(ctx, actor.ID, target, targetID)
}

func (s *FavoriteService) Remove(ctx context.Context, actor model.User, target string, targetID int64) (int64, error) {
	target, err := normalizeTarget(target)
	if err != nil {
		return 0, err
	}
	if targetID <= 0 {
		return 0, apierror.BadRequest("target id must be positive")
	}

	return s.favorites.Remove(ctx, actor.ID, target, targetID)
}

func normalizeTarget(target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", apierror.BadRequest("target kind is required")
	}
	return target, nil
}
