package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
)

const (
	tokenTable  = "revoked_tokens"
	tokenEntity = "revoked_token"
)

// RevokeToken records tokenID as revoked until expiresAt. Idempotent.
func (s *Store) RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	query, args, err := builder().
		Insert(tokenTable).
		Columns("jti", "expires_at", "revoked_at").
		Values(tokenID, toMillis(expiresAt), toMillis(time.Now())).
		Suffix("ON CONFLICT (jti) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", tokenEntity, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return mapError(err, tokenEntity, tokenID)
	}
	return nil
}

// IsTokenRevoked reports whether tokenID has been revoked.
func (s *Store) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	query, args, err := builder().
		Select("COUNT(*)").
		From(tokenTable).
		Where(squirrel.Eq{"jti": tokenID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build select %s: %w", tokenEntity, err)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, mapError(err, tokenEntity, tokenID)
	}
	return n > 0, nil
}

// DeleteExpiredRevocations removes revocations whose token expired before
// now and returns how many were removed.
func (s *Store) DeleteExpiredRevocations(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := builder().
		Delete(tokenTable).
		Where(squirrel.Lt{"expires_at": toMillis(now)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete %s: %w", tokenEntity, err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapError(err, tokenEntity, "expired")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
