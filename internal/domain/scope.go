package domain

// Scope restricts which rows a listing may see. It is computed once per
// request and handed to a single parameterised query.
type Scope struct {
	// OwnerID limits rows to one account; nil means every owner.
	OwnerID *int64
	// From and To bound the record date, inclusive. Zero means unbounded.
	From Date
	To   Date
}

// AllOwners is the unrestricted scope.
func AllOwners() Scope {
	return Scope{}
}

// OwnedBy restricts a scope to one account.
func OwnedBy(userID int64) Scope {
	return Scope{OwnerID: &userID}
}

// ScopeFor derives the listing scope for a caller. Admins and collections
// that are not owner-scoped see every row; everyone else sees their own.
func ScopeFor(u *User, ownerScoped bool) Scope {
	if !ownerScoped || u.IsAdmin() {
		return AllOwners()
	}
	if u == nil {
		// No identity resolves to an id no row can carry.
		return OwnedBy(0)
	}
	return OwnedBy(u.ID)
}

// Between returns s bounded to [from, to].
func (s Scope) Between(from, to Date) Scope {
	s.From, s.To = from, to
	return s
}

// Includes reports whether a row with the given owner and date is visible.
func (s Scope) Includes(owner *UserRef, d Date) bool {
	if s.OwnerID != nil && !owner.OwnedBy(*s.OwnerID) {
		return false
	}
	if !s.From.IsZero() && (d.IsZero() || d.Before(s.From)) {
		return false
	}
	if !s.To.IsZero() && (d.IsZero() || d.After(s.To)) {
		return false
	}
	return true
}
