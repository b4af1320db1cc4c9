package auth

// PrincipalKind distinguishes the two identity schemes: bearer-token users
// and session-backed admins.
type PrincipalKind string

const (
	KindUser  PrincipalKind = "user"
	KindAdmin PrincipalKind = "admin"
)

// Principal is the per-request identity both middlewares resolve to, so
// authorization checks are written once instead of per scheme.
type Principal struct {
	Kind  PrincipalKind
	ID    int64
	Name  string
	Email string
	Role  string
}

// IsAdmin is true for session admins and for JWT users carrying role=admin.
func (p Principal) IsAdmin() bool {
	return p.Kind == KindAdmin || p.Role == "admin"
}

// CanManageRentable reports whether the principal may run status transitions
// on bookings of a rentable owned by ownerID.
func (p Principal) CanManageRentable(ownerID int64) bool {
	if p.IsAdmin() {
		return true
	}
	return p.Kind == KindUser && p.ID == ownerID
}

// OwnsBooking reports whether the principal created the booking. Admins get
// no shortcut here: deletion is reserved for the creator.
func (p Principal) OwnsBooking(creatorID int64) bool {
	return p.Kind == KindUser && p.ID == creatorID
}
