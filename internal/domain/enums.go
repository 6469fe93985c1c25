package domain

// Status is the lifecycle state of a feature request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusDone     Status = "done"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusDone:
		return true
	}
	return false
}

// transitions lists every legal edge. Statuses without an entry are sinks.
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusDone},
}

// CanTransitionTo reports whether an administrator may move a request
// from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsSink reports whether no transition leaves s.
func (s Status) IsSink() bool {
	return s.IsValid() && len(transitions[s]) == 0
}

// Category is a tag from the fixed feature-request vocabulary.
type Category string

const (
	CategoryUI          Category = "UI"
	CategoryUX          Category = "UX"
	CategoryPerformance Category = "Performance"
	CategoryBug         Category = "Bug"
	CategoryFeature     Category = "Feature"
	CategoryOther       Category = "Other"
)

// AllCategories returns the vocabulary in display order.
func AllCategories() []Category {
	return []Category{
		CategoryUI, CategoryUX, CategoryPerformance,
		CategoryBug, CategoryFeature, CategoryOther,
	}
}

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	switch c {
	case CategoryUI, CategoryUX, CategoryPerformance, CategoryBug, CategoryFeature, CategoryOther:
		return true
	}
	return false
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}
