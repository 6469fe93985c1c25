// Package feature implements the feature request repository using PostgreSQL.
package feature

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/featureboard-backend/internal/adapter/postgres"
	"github.com/heartmarshall/featureboard-backend/internal/domain"
)

const (
	table  = "feature_requests"
	entity = "feature_request"
)

var columns = []string{
	"id", "title", "description", "categories", "status",
	"submitted_by", "created_at", "upvote_count", "upvoted_by",
}

// Repo provides feature request persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	tx   *postgres.TxManager
}

// New creates a new feature request repository.
func New(pool *pgxpool.Pool, tx *postgres.TxManager) *Repo {
	return &Repo{pool: pool, tx: tx}
}

// Create inserts a new feature request and returns the stored row.
func (r *Repo) Create(ctx context.Context, fr *domain.FeatureRequest) (*domain.FeatureRequest, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(
			fr.ID, fr.Title, fr.Description, categoriesToDB(fr.Categories), string(fr.Status),
			nullableString(fr.SubmittedBy), fr.CreatedAt, len(fr.UpvotedBy), votersToDB(fr.UpvotedBy),
		).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert %s: %w", entity, err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	created, err := scanFeature(row)
	if err != nil {
		return nil, postgres.MapError(err, entity, fr.ID.String())
	}
	return created, nil
}

// GetByID returns a feature request by id. Returns domain.ErrNotFound when
// absent.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FeatureRequest, error) {
	query, args, err := selectFeatures().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", entity, err)
	}

	fr, err := scanFeature(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, id.String())
	}
	return fr, nil
}

// List returns every feature request matching filter in store order
// (created_at, id).
func (r *Repo) List(ctx context.Context, filter domain.FeatureFilter) ([]domain.FeatureRequest, error) {
	b := selectFeatures().OrderBy("created_at", "id")
	if where := filterToEq(filter); len(where) > 0 {
		b = b.Where(where)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list %s: %w", entity, err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, entity, "list")
	}
	defer rows.Close()

	out := []domain.FeatureRequest{}
	for rows.Next() {
		fr, err := scanFeature(rows)
		if err != nil {
			return nil, postgres.MapError(err, entity, "list")
		}
		out = append(out, *fr)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, entity, "list")
	}
	return out, nil
}

// Update locks the row, applies fn to a copy of it and writes status and
// votes back in one statement. When fn fails nothing is written and its
// error is returned unchanged.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, fn func(*domain.FeatureRequest) error) (*domain.FeatureRequest, error) {
	var updated *domain.FeatureRequest

	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)

		query, args, err := selectFeatures().Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE").ToSql()
		if err != nil {
			return fmt.Errorf("build lock %s: %w", entity, err)
		}
		current, err := scanFeature(q.QueryRow(ctx, query, args...))
		if err != nil {
			return postgres.MapError(err, entity, id.String())
		}

		next := current.Clone()
		if err := fn(&next); err != nil {
			return err
		}

		query, args, err = postgres.Builder().
			Update(table).
			Set("status", string(next.Status)).
			Set("upvoted_by", votersToDB(next.UpvotedBy)).
			Set("upvote_count", len(next.UpvotedBy)).
			Where(squirrel.Eq{"id": id}).
			Suffix(returning()).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update %s: %w", entity, err)
		}

		updated, err = scanFeature(q.QueryRow(ctx, query, args...))
		if err != nil {
			return postgres.MapError(err, entity, id.String())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func selectFeatures() squirrel.SelectBuilder {
	return postgres.Builder().Select(columns...).From(table)
}

func returning() string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func filterToEq(f domain.FeatureFilter) squirrel.Eq {
	eq := squirrel.Eq{}
	if f.Status != nil {
		eq["status"] = string(*f.Status)
	}
	if f.SubmittedBy != nil {
		eq["submitted_by"] = *f.SubmittedBy
	}
	return eq
}

func scanFeature(row pgx.Row) (*domain.FeatureRequest, error) {
	var (
		fr          domain.FeatureRequest
		categories  []string
		status      string
		submittedBy *string
		createdAt   time.Time
	)
	err := row.Scan(
		&fr.ID, &fr.Title, &fr.Description, &categories, &status,
		&submittedBy, &createdAt, &fr.UpvoteCount, &fr.UpvotedBy,
	)
	if err != nil {
		return nil, err
	}

	fr.Categories = make([]domain.Category, len(categories))
	for i, c := range categories {
		fr.Categories[i] = domain.Category(c)
	}
	fr.Status = domain.Status(status)
	if submittedBy != nil {
		fr.SubmittedBy = *submittedBy
	}
	fr.CreatedAt = createdAt.UTC()
	if fr.UpvotedBy == nil {
		fr.UpvotedBy = []string{}
	}
	return &fr, nil
}

func categoriesToDB(cs []domain.Category) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}

// votersToDB never returns nil; pgx encodes a nil slice as NULL.
func votersToDB(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
