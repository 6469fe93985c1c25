// Package token implements session revocation storage using PostgreSQL.
package token

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/featureboard-backend/internal/adapter/postgres"
)

const (
	table  = "revoked_tokens"
	entity = "revoked_token"
)

// Repo provides revoked-token persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new token repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// RevokeToken records tokenID as revoked until expiresAt.
// Idempotent: revoking an already-revoked token is not an error.
func (r *Repo) RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns("jti", "expires_at").
		Values(tokenID, expiresAt).
		Suffix("ON CONFLICT (jti) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", entity, err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, entity, tokenID)
	}
	return nil
}

// IsTokenRevoked reports whether tokenID has been revoked.
func (r *Repo) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	query, args, err := postgres.Builder().
		Select("1").
		From(table).
		Where(squirrel.Eq{"jti": tokenID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build select %s: %w", entity, err)
	}

	var revoked bool
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&revoked); err != nil {
		return false, postgres.MapError(err, entity, tokenID)
	}
	return revoked, nil
}

// DeleteExpiredRevocations removes revocations whose token expired before
// now and returns how many were removed.
func (r *Repo) DeleteExpiredRevocations(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Lt{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete %s: %w", entity, err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, entity, "expired")
	}
	return tag.RowsAffected(), nil
}
