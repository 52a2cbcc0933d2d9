package model

import "strings"

// Role is the coarse pitching role used by the usage model.
type Role string

const (
	RoleStarter Role = "SP"
	RoleCloser  Role = "CL"
	RoleSetup   Role = "SU"
	RoleMiddle  Role = "MR"
	RoleLong    Role = "LR"
)

// NormalizeRole maps an externally assigned role token to one of the five
// coarse keys. Slot-numbered starters (SP1..SP5) collapse to SP and any
// unrecognized token becomes MR so every pitcher stays usable.
func NormalizeRole(token string) Role {
	key := strings.ToUpper(strings.TrimSpace(token))
	if strings.HasPrefix(key, "SP") {
		return RoleStarter
	}
	switch Role(key) {
	case RoleCloser, RoleSetup, RoleMiddle, RoleLong:
		return Role(key)
	}
	return RoleMiddle
}

// IsStarter reports whether the role is exempt from reliever usage gates.
func (r Role) IsStarter() bool { return r == RoleStarter }

// Pitcher is the roster view of a pitcher consumed by the recovery
// subsystem. Role classification and endurance ratings are external inputs.
type Pitcher struct {
	ID        string
	Endurance int // 0-99 rating
	Role      Role
}
