package domain

// UserRef is a weak reference from a record to the account that owns it.
// Login is only populated when the record was read joined against users;
// a ref built from a bare id is a stub and must not be treated as a loaded
// account.
type UserRef struct {
	ID    int64
	Login string
}

// RefFromID builds a reference-only owner stub, or nil for a nil id.
func RefFromID(id *int64) *UserRef {
	if id == nil {
		return nil
	}
	return &UserRef{ID: *id}
}

// IDPtr returns a pointer to the owner id, or nil when there is no owner.
func (r *UserRef) IDPtr() *int64 {
	if r == nil {
		return nil
	}
	id := r.ID
	return &id
}

// LoginOrEmpty returns the joined login, or "" for a stub or nil ref.
func (r *UserRef) LoginOrEmpty() string {
	if r == nil {
		return ""
	}
	return r.Login
}

// OwnedBy reports whether the ref points at the given account.
func (r *UserRef) OwnedBy(userID int64) bool {
	return r != nil && r.ID == userID
}
