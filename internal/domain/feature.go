package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MaxCategories        = 3
)

// FeatureRequest is a user-submitted idea moving through the approval
// lifecycle and collecting upvotes.
type FeatureRequest struct {
	ID          uuid.UUID
	Title       string
	Description string
	Categories  []Category
	Status      Status
	// SubmittedBy is empty for legacy records created without a session.
	SubmittedBy string
	CreatedAt   time.Time
	UpvoteCount int
	UpvotedBy   []string
}

// Clone returns a deep copy so callers can mutate slices freely.
func (f FeatureRequest) Clone() FeatureRequest {
	f.Categories = slices.Clone(f.Categories)
	f.UpvotedBy = slices.Clone(f.UpvotedBy)
	return f
}

// HasCategory reports whether c is one of the request's tags.
func (f *FeatureRequest) HasCategory(c Category) bool {
	return slices.Contains(f.Categories, c)
}

// HasVoted reports whether userID currently holds an upvote.
func (f *FeatureRequest) HasVoted(userID string) bool {
	return slices.Contains(f.UpvotedBy, userID)
}

// ToggleVote retracts userID's upvote if present and adds it otherwise.
// UpvotedBy and UpvoteCount change together. Returns true when the vote
// was added.
func (f *FeatureRequest) ToggleVote(userID string) bool {
	if i := slices.Index(f.UpvotedBy, userID); i >= 0 {
		f.UpvotedBy = slices.Delete(f.UpvotedBy, i, i+1)
		f.UpvoteCount = len(f.UpvotedBy)
		return false
	}
	f.UpvotedBy = append(f.UpvotedBy, userID)
	f.UpvoteCount = len(f.UpvotedBy)
	return true
}

// Transition moves the request to next, or returns a *TransitionError
// leaving the request untouched.
func (f *FeatureRequest) Transition(next Status) error {
	if !f.Status.CanTransitionTo(next) {
		return &TransitionError{From: f.Status, To: next}
	}
	f.Status = next
	return nil
}

// VotesConsistent reports whether the counter matches the voter set and
// no voter appears twice.
func (f *FeatureRequest) VotesConsistent() bool {
	if f.UpvoteCount != len(f.UpvotedBy) {
		return false
	}
	seen := make(map[string]struct{}, len(f.UpvotedBy))
	for _, id := range f.UpvotedBy {
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}

// ParseCategories converts raw tags into a deduplicated category set.
// An empty input yields {Other}.
func ParseCategories(raw []string) ([]Category, error) {
	if len(raw) == 0 {
		return []Category{CategoryOther}, nil
	}

	out := make([]Category, 0, len(raw))
	for _, r := range raw {
		c := Category(r)
		if !c.IsValid() {
			return nil, NewValidationError("categories", "unknown category "+r)
		}
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}

	if len(out) > MaxCategories {
		return nil, NewValidationError("categories", "max 3 categories")
	}
	return out, nil
}
