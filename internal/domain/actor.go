package domain

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Actor is the caller of a core operation as resolved by the identity layer.
type Actor struct {
	UserID int
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// SystemActor is used for signals that do not originate from a user, such as
// payment webhooks and scheduled housekeeping.
var SystemActor = Actor{UserID: 0, Role: RoleAdmin}
