package models

// Role is the single ordered privilege level of a user.
// Each role holds every capability of the roles ranked below it.
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleSuperuser Role = "superuser"
)

var roleRank = map[Role]int{
	RoleUser:      0,
	RoleAdmin:     1,
	RoleSuperuser: 2,
}

func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r ranks at or above other. Unknown roles rank
// below every known role.
func (r Role) AtLeast(other Role) bool {
	return r.rank() >= other.rank()
}

func (r Role) rank() int {
	if n, ok := roleRank[r]; ok {
		return n
	}
	return -1
}
