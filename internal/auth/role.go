package auth

// Role is a club staff level. Higher roles include the permissions of lower ones.
type Role string

const (
	RoleUser       Role = "user"
	RoleOperator   Role = "operator"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

var roleRank = map[Role]int{
	RoleUser:       0,
	RoleOperator:   1,
	RoleSupervisor: 2,
	RoleAdmin:      3,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants the permissions of min.
// Unknown roles grant nothing.
func (r Role) AtLeast(min Role) bool {
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	return have >= roleRank[min]
}
