package models

const (
	RolePoster = "poster"
	RoleTenant = "tenant"
)

// ValidRole reports whether role is one of the two known account roles.
func ValidRole(role string) bool {
	return role == RolePoster || role == RoleTenant
}
