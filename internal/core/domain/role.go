package domain

const (
	RoleSuperAdministrator = "Super Administrator"
	RoleAdministrator      = "Administrator"
	RoleStudent            = "Student"
	RoleTeacher            = "Teacher"
)

// FixedRoles lists every role the system knows about, in bootstrap order.
var FixedRoles = []string{
	RoleSuperAdministrator,
	RoleAdministrator,
	RoleStudent,
	RoleTeacher,
}

// AdminRoles may perform destructive directory operations.
var AdminRoles = []string{RoleAdministrator, RoleSuperAdministrator}

// Role is a named permission group. Names are unique.
type Role struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	NormalizedName string `json:"normalizedName"`
}

// NewRole builds a role with its normalized name filled in.
func NewRole(id, name string) *Role {
	return &Role{ID: id, Name: name, NormalizedName: Normalize(name)}
}
