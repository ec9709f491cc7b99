package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"star-catalog-api/internal/model"
)

// FavoriteRepository stores (user, target, target_id) tuples. Every
// statement is scoped by user_id; the target kind is an opaque label.
type FavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

func (r *FavoriteRepository) ListIDs(ctx context.Context, userID int64, target string) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT target_id FROM favorites WHERE user_id = $1 AND target = $2`,
		userID, target)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Add inserts the tuple if absent. Re-favoriting the same target is
// idempotent: the conflict clause swallows the duplicate and the
// existing row is returned.
func (r *FavoriteRepository) Add(ctx context.Context, userID int64, target string, targetID int64) (model.Favorite, error) {
	now := time.Now().UTC()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO favorites (user_id, target, target_id, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, target, target_id) DO NOTHING`,
		userID, target, targetID, now)
	if err != nil {
		return model.Favorite{}, fmt.Errorf("add favorite: %w", err)
	}

	var f model.Favorite
	err = r.pool.QueryRow(ctx,
		`SELECT id, user_id, target, target_id, created_at
		 FROM favorites WHERE user_id = $1 AND target = $2 AND target_id = $3`,
		userID, target, targetID).
		Scan(&f.ID, &f.UserID, &f.Target, &f.TargetID, &f.CreatedAt)
	if err != nil {
		return model.Favorite{}, fmt.Errorf("read back favorite: %w", err)
	}
	return f, nil
}

// Remove deletes the tuple and reports how many rows went away.
// Removing a tuple that does not exist is not an error.
func (r *FavoriteRepository) Remove(ctx context.Context, userID int64, target string, targetID int64) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND target = $2 AND target_id = $3`,
		userID, target, targetID)
	if err != nil {
		return 0, fmt.Errorf("remove favorite: %w", err)
	}
	return tag.RowsAffected(), nil
}
