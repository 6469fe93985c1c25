package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/featureboard-backend/internal/domain"
)

// UniqueUser returns a user id no other test uses, so tests sharing the
// container can filter by owner without seeing each other's rows.
func UniqueUser(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// SeedFeature inserts a pending feature request owned by owner. Mutators
// run before the insert.
func SeedFeature(t *testing.T, pool *pgxpool.Pool, owner string, mutate ...func(*domain.FeatureRequest)) domain.FeatureRequest {
	t.Helper()

	fr := domain.FeatureRequest{
		ID:          uuid.New(),
		Title:       "Seeded " + uuid.New().String()[:8],
		Description: "Seeded feature request",
		Categories:  []domain.Category{domain.CategoryOther},
		Status:      domain.StatusPending,
		SubmittedBy: owner,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
		UpvotedBy:   []string{},
	}
	for _, m := range mutate {
		m(&fr)
	}
	fr.UpvoteCount = len(fr.UpvotedBy)

	categories := make([]string, len(fr.Categories))
	for i, c := range fr.Categories {
		categories[i] = string(c)
	}
	var submittedBy *string
	if fr.SubmittedBy != "" {
		submittedBy = &fr.SubmittedBy
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO feature_requests
		   (id, title, description, categories, status, submitted_by, created_at, upvote_count, upvoted_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		fr.ID, fr.Title, fr.Description, categories, string(fr.Status), submittedBy,
		fr.CreatedAt, fr.UpvoteCount, fr.UpvotedBy,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedFeature insert: %v", err)
	}

	return fr
}
