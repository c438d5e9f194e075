package model

// Roles a user can register with. The set is fixed.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

// Roles lists every accepted role value.
var Roles = []string{RolePatient, RoleDoctor}

// IsValidRole reports whether role is one of the fixed role values.
func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}
