package models

// Filter is the closed filter structure applied to the notice view.
// Each group is single-select: a nil pointer means the group is inactive.
type Filter struct {
	Type    *NoticeType
	Subject *string
}

// Matches reports whether n passes the filter: the notice is kept when
// (no type filter is active, or its type matches) AND (no subject filter
// is active, or its subject matches).
func (f Filter) Matches(n Notice) bool {
	if f.Type != nil && n.Type != *f.Type {
		return false
	}
	if f.Subject != nil && n.Subject != *f.Subject {
		return false
	}
	return true
}

// IsZero reports whether no filter group is active.
func (f Filter) IsZero() bool {
	return f.Type == nil && f.Subject == nil
}
