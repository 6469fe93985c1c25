package view

import (
	"slices"
	"strings"

	"github.com/heartmarshall/featureboard-backend/internal/domain"
)

// Tab partitions the board into screens.
type Tab string

const (
	TabBoard    Tab = "board"
	TabMine     Tab = "mine"
	TabPending  Tab = "pending"
	TabApproved Tab = "approved"
	TabRejected Tab = "rejected"
	TabDone     Tab = "done"
	TabAll      Tab = "all"
)

func (t Tab) IsValid() bool {
	switch t {
	case TabBoard, TabMine, TabPending, TabApproved, TabRejected, TabDone, TabAll:
		return true
	}
	return false
}

// Status returns the status a status tab selects. Board selects approved.
func (t Tab) Status() (domain.Status, bool) {
	switch t {
	case TabBoard, TabApproved:
		return domain.StatusApproved, true
	case TabPending:
		return domain.StatusPending, true
	case TabRejected:
		return domain.StatusRejected, true
	case TabDone:
		return domain.StatusDone, true
	}
	return "", false
}

// Filter returns the store predicate that loads exactly the tab's records.
func (t Tab) Filter(viewer string) domain.FeatureFilter {
	if t == TabMine {
		return domain.OwnerFilter(viewer)
	}
	if s, ok := t.Status(); ok {
		return domain.StatusFilter(s)
	}
	return domain.FeatureFilter{}
}

// RequiresViewer reports whether the tab is only meaningful with a session.
func (t Tab) RequiresViewer() bool {
	return t == TabMine
}

// AdminOnly reports whether the tab belongs to the moderation screens.
func (t Tab) AdminOnly() bool {
	switch t {
	case TabBoard, TabMine:
		return false
	}
	return true
}

func (t Tab) includes(fr *domain.FeatureRequest, viewer string) bool {
	if t == TabMine {
		return viewer != "" && fr.SubmittedBy == viewer
	}
	if s, ok := t.Status(); ok {
		return fr.Status == s
	}
	return t == TabAll
}

// SortKey selects the presentation order.
type SortKey string

const (
	SortVotesDesc SortKey = "votes-desc"
	SortVotesAsc  SortKey = "votes-asc"
	SortTimeDesc  SortKey = "time-desc"
	SortTimeAsc   SortKey = "time-asc"
)

func (k SortKey) IsValid() bool {
	switch k {
	case SortVotesDesc, SortVotesAsc, SortTimeDesc, SortTimeAsc:
		return true
	}
	return false
}

// ParseQuery builds a Query from raw request parameters. Empty tab and sort
// fall back to the board ordered by votes.
func ParseQuery(tab, sort, search string, categories []string, viewer string) (Query, error) {
	var errs []domain.FieldError

	q := Query{
		Tab:    Tab(strings.TrimSpace(tab)),
		Sort:   SortKey(strings.TrimSpace(sort)),
		Search: search,
		Viewer: viewer,
	}
	if q.Tab == "" {
		q.Tab = TabBoard
	}
	if q.Sort == "" {
		q.Sort = SortVotesDesc
	}

	if !q.Tab.IsValid() {
		errs = append(errs, domain.FieldError{Field: "tab", Message: "unknown tab " + string(q.Tab)})
	}
	if !q.Sort.IsValid() {
		errs = append(errs, domain.FieldError{Field: "sort", Message: "unknown sort " + string(q.Sort)})
	}

	for _, raw := range categories {
		c := domain.Category(strings.TrimSpace(raw))
		if !c.IsValid() {
			errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category " + raw})
			continue
		}
		if !slices.Contains(q.Categories, c) {
			q.Categories = append(q.Categories, c)
		}
	}
	if len(q.Categories) > domain.MaxCategories {
		errs = append(errs, domain.FieldError{Field: "category", Message: "max 3 categories"})
	}

	if len(errs) > 0 {
		return Query{}, domain.NewValidationErrors(errs)
	}
	return q, nil
}
