package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// IsValidRole reports whether role is a known user role.
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
