package domain

// FeatureFilter selects feature requests by equality. Nil fields match
// everything. Evaluation belongs to the store.
type FeatureFilter struct {
	Status      *Status
	SubmittedBy *string
}

// StatusFilter returns a filter matching a single status.
func StatusFilter(s Status) FeatureFilter {
	return FeatureFilter{Status: &s}
}

// OwnerFilter returns a filter matching records submitted by userID.
func OwnerFilter(userID string) FeatureFilter {
	return FeatureFilter{SubmittedBy: &userID}
}

// Matches reports whether f selects the record.
func (f FeatureFilter) Matches(fr *FeatureRequest) bool {
	if f.Status != nil && fr.Status != *f.Status {
		return false
	}
	if f.SubmittedBy != nil && fr.SubmittedBy != *f.SubmittedBy {
		return false
	}
	return true
}
