package permission

import "fmt"

// Role is the fixed caller role resolved once per request.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleTechnician Role = "technician"
	RoleClient     Role = "client"
)

var validRoles = map[Role]bool{
	RoleSuperadmin: true,
	RoleAdmin:      true,
	RoleTechnician: true,
	RoleClient:     true,
}

// Role sets referenced by the rule table.
var (
	SuperadminOnly = []Role{RoleSuperadmin}
	AdminSet       = []Role{RoleSuperadmin, RoleAdmin}
	StaffSet       = []Role{RoleSuperadmin, RoleAdmin, RoleTechnician}
	AllRoles       = []Role{RoleSuperadmin, RoleAdmin, RoleTechnician, RoleClient}
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return validRoles[r]
}

func (r Role) IsSuperadmin() bool {
	return r == RoleSuperadmin
}

// IsAdmin is true for admin and superadmin.
func (r Role) IsAdmin() bool {
	return r == RoleSuperadmin || r == RoleAdmin
}

// IsStaff is true for every role except client.
func (r Role) IsStaff() bool {
	return r.IsAdmin() || r == RoleTechnician
}

func (r Role) IsClient() bool {
	return r == RoleClient
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return r, nil
}

func roleIn(r Role, set []Role) bool {
	for _, candidate := range set {
		if candidate == r {
			return true
		}
	}
	return false
}
