// Package view derives the presentation sequences every screen shows from
// a set of feature requests.
package view

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/heartmarshall/featureboard-backend/internal/domain"
)

// Query describes one screen's view of the board.
type Query struct {
	Tab    Tab
	Viewer string
	Sort   SortKey
	Search string
	// Categories uses AND semantics: a record must carry every entry.
	Categories []domain.Category
}

// Compose applies tab partition, sort, search and category filter in that
// order. The input is never mutated; the result is always a fresh slice.
func Compose(records []domain.FeatureRequest, q Query) []domain.FeatureRequest {
	out := make([]domain.FeatureRequest, 0, len(records))
	for i := range records {
		if q.Tab.includes(&records[i], q.Viewer) {
			out = append(out, records[i])
		}
	}

	Sort(out, q.Sort)

	if needle := fold(strings.TrimSpace(q.Search)); needle != "" {
		out = slices.DeleteFunc(out, func(fr domain.FeatureRequest) bool {
			return !strings.Contains(fold(fr.Title), needle) &&
				!strings.Contains(fold(fr.Description), needle)
		})
	}

	if len(q.Categories) > 0 {
		out = slices.DeleteFunc(out, func(fr domain.FeatureRequest) bool {
			for _, c := range q.Categories {
				if !fr.HasCategory(c) {
					return true
				}
			}
			return false
		})
	}

	return out
}

// Sort orders records in place by key. Ties break on id ascending so the
// order is total.
func Sort(records []domain.FeatureRequest, key SortKey) {
	slices.SortStableFunc(records, func(a, b domain.FeatureRequest) int {
		var c int
		switch key {
		case SortVotesAsc:
			c = cmp.Compare(a.UpvoteCount, b.UpvoteCount)
		case SortTimeDesc:
			c = b.CreatedAt.Compare(a.CreatedAt)
		case SortTimeAsc:
			c = a.CreatedAt.Compare(b.CreatedAt)
		default:
			c = cmp.Compare(b.UpvoteCount, a.UpvoteCount)
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
}

func fold(s string) string {
	return cases.Fold().String(s)
}
