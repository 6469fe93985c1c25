package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/featureboard-backend/internal/domain"
)

const (
	featureTable  = "feature_requests"
	featureEntity = "feature_request"
)

var featureColumns = []string{
	"id", "title", "description", "categories", "status",
	"submitted_by", "created_at", "upvote_count", "upvoted_by",
}

type rowScanner interface {
	Scan(dest ...any) error
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Create inserts a new feature request and returns the stored row.
func (s *Store) Create(ctx context.Context, fr *domain.FeatureRequest) (*domain.FeatureRequest, error) {
	categories, err := json.Marshal(fr.Categories)
	if err != nil {
		return nil, fmt.Errorf("marshal categories: %w", err)
	}
	voters, err := marshalVoters(fr.UpvotedBy)
	if err != nil {
		return nil, err
	}

	query, args, err := builder().
		Insert(featureTable).
		Columns(featureColumns...).
		Values(
			fr.ID.String(), fr.Title, fr.Description, string(categories), string(fr.Status),
			nullableString(fr.SubmittedBy), toMillis(fr.CreatedAt), len(fr.UpvotedBy), voters,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert %s: %w", featureEntity, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, mapError(err, featureEntity, fr.ID.String())
	}
	s.changed()

	return s.GetByID(ctx, fr.ID)
}

// GetByID returns a feature request by id.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*domain.FeatureRequest, error) {
	return s.getByID(ctx, s.db, id)
}

func (s *Store) getByID(ctx context.Context, q queryer, id uuid.UUID) (*domain.FeatureRequest, error) {
	query, args, err := selectFeatures().Where(squirrel.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", featureEntity, err)
	}

	fr, err := scanFeature(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, featureEntity, id.String())
	}
	return fr, nil
}

// List returns every feature request matching filter in store order
// (created_at, id).
func (s *Store) List(ctx context.Context, filter domain.FeatureFilter) ([]domain.FeatureRequest, error) {
	b := selectFeatures().OrderBy("created_at", "id")
	if filter.Status != nil {
		b = b.Where(squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.SubmittedBy != nil {
		b = b.Where(squirrel.Eq{"submitted_by": *filter.SubmittedBy})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list %s: %w", featureEntity, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, featureEntity, "list")
	}
	defer rows.Close()

	out := []domain.FeatureRequest{}
	for rows.Next() {
		fr, err := scanFeature(rows)
		if err != nil {
			return nil, mapError(err, featureEntity, "list")
		}
		out = append(out, *fr)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, featureEntity, "list")
	}
	return out, nil
}

// Update applies fn to the current row inside an immediate transaction and
// writes status and votes back in one statement. When fn fails nothing is
// written and its error is returned unchanged.
func (s *Store) Update(ctx context.Context, id uuid.UUID, fn func(*domain.FeatureRequest) error) (*domain.FeatureRequest, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, mapError(err, featureEntity, id.String())
	}
	defer func() { _ = tx.Rollback() }()

	current, err := s.getByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	next := current.Clone()
	if err := fn(&next); err != nil {
		return nil, err
	}

	voters, err := marshalVoters(next.UpvotedBy)
	if err != nil {
		return nil, err
	}
	query, args, err := builder().
		Update(featureTable).
		Set("status", string(next.Status)).
		Set("upvoted_by", voters).
		Set("upvote_count", len(next.UpvotedBy)).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update %s: %w", featureEntity, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, mapError(err, featureEntity, id.String())
	}

	updated, err := s.getByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, mapError(err, featureEntity, id.String())
	}
	s.changed()

	return updated, nil
}

func selectFeatures() squirrel.SelectBuilder {
	return builder().Select(featureColumns...).From(featureTable)
}

func scanFeature(row rowScanner) (*domain.FeatureRequest, error) {
	var (
		fr          domain.FeatureRequest
		id          string
		categories  string
		status      string
		submittedBy sql.NullString
		createdAt   int64
		voters      string
	)
	err := row.Scan(
		&id, &fr.Title, &fr.Description, &categories, &status,
		&submittedBy, &createdAt, &fr.UpvoteCount, &voters,
	)
	if err != nil {
		return nil, err
	}

	if fr.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse id %q: %w", id, err)
	}
	if err := json.Unmarshal([]byte(categories), &fr.Categories); err != nil {
		return nil, fmt.Errorf("unmarshal categories: %w", err)
	}
	if err := json.Unmarshal([]byte(voters), &fr.UpvotedBy); err != nil {
		return nil, fmt.Errorf("unmarshal upvoted_by: %w", err)
	}
	if fr.UpvotedBy == nil {
		fr.UpvotedBy = []string{}
	}
	fr.Status = domain.Status(status)
	fr.SubmittedBy = submittedBy.String
	fr.CreatedAt = fromMillis(createdAt)
	return &fr, nil
}

func marshalVoters(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal upvoted_by: %w", err)
	}
	return string(b), nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
