package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TokenRepository is the revocation ledger: an append-only blocklist of
// token strings invalidated before their natural expiry. Presence in
// the ledger is permanent; rows are only removed by explicit pruning of
// tokens that have long since expired on their own.
type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

// Revoke records the token as invalidated. Revoking an already-revoked
// token is a no-op; the unique index keeps the ledger duplicate-free.
func (r *TokenRepository) Revoke(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO jwt_token_blocklist (token, created_at)
		 VALUES ($1, $2)
		 ON CONFLICT (token) DO NOTHING`,
		token, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (r *TokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	var revoked bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM jwt_token_blocklist WHERE token = $1)`,
		token).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("check token revoked: %w", err)
	}
	return revoked, nil
}

// DeleteExpiredBefore prunes ledger rows created before the cutoff.
// Safe to call with a cutoff older than the access TTL: a token revoked
// that long ago has also expired on its own, so dropping the row
// changes no authentication outcome. Never run automatically.
func (r *TokenRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM jwt_token_blocklist WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune token blocklist: %w", err)
	}
	return tag.RowsAffected(), nil
}
