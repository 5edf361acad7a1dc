package user

// Roles
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
	RoleLibrarian  = "librarian"
	RoleTeacher    = "teacher"
	RoleStudent    = "student"
)

// Actions
const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// Resources
const (
	ResourceStudents   = "students"
	ResourceAttendance = "attendance"
	ResourceFees       = "fees"
	ResourceLibrary    = "library"
	ResourceSeats      = "seats"
	ResourceReports    = "reports"
	ResourceUsers      = "users"
)

var AllRoles = []string{
	RoleSuperAdmin,
	RoleAdmin,
	RoleAccountant,
	RoleLibrarian,
	RoleTeacher,
	RoleStudent,
}

// Grant pairs a resource with the actions a role may perform on it.
type Grant struct {
	Resource string   `json:"resource"`
	Actions  []string `json:"actions"`
}

var allActions = []string{ActionView, ActionCreate, ActionEdit, ActionDelete}

// roleGrants is the permission table. It is fixed at build time; there
// is no dynamic grant modification.
var roleGrants = map[string][]Grant{
	RoleSuperAdmin: {
		{Resource: ResourceStudents, Actions: allActions},
		{Resource: ResourceAttendance, Actions: allActions},
		{Resource: ResourceFees, Actions: allActions},
		{Resource: ResourceLibrary, Actions: allActions},
		{Resource: ResourceSeats, Actions: allActions},
		{Resource: ResourceReports, Actions: allActions},
		{Resource: ResourceUsers, Actions: allActions},
	},
	RoleAdmin: {
		{Resource: ResourceStudents, Actions: allActions},
		{Resource: ResourceAttendance, Actions: allActions},
		{Resource: ResourceFees, Actions: allActions},
		{Resource: ResourceLibrary, Actions: allActions},
		{Resource: ResourceSeats, Actions: allActions},
		{Resource: ResourceReports, Actions: []string{ActionView, ActionCreate}},
		{Resource: ResourceUsers, Actions: []string{ActionView}},
	},
	RoleAccountant: {
		{Resource: ResourceStudents, Actions: []string{ActionView}},
		{Resource: ResourceFees, Actions: allActions},
		{Resource: ResourceReports, Actions: []string{ActionView, ActionCreate}},
	},
	RoleLibrarian: {
		{Resource: ResourceStudents, Actions: []string{ActionView}},
		{Resource: ResourceLibrary, Actions: allActions},
		{Resource: ResourceReports, Actions: []string{ActionView}},
	},
	RoleTeacher: {
		{Resource: ResourceStudents, Actions: []string{ActionView}},
		{Resource: ResourceAttendance, Actions: []string{ActionView, ActionCreate, ActionEdit}},
		{Resource: ResourceReports, Actions: []string{ActionView}},
	},
	RoleStudent: {
		{Resource: ResourceAttendance, Actions: []string{ActionView}},
		{Resource: ResourceLibrary, Actions: []string{ActionView}},
	},
}

// Grants returns the grant list for a role; unknown roles get nothing.
func Grants(role string) []Grant {
	return roleGrants[role]
}

// Can reports whether a role may perform an action on a resource. An
// unknown role can do nothing.
func Can(role, resource, action string) bool {
	for _, grant := range roleGrants[role] {
		if grant.Resource != resource {
			continue
		}
		for _, a := range grant.Actions {
			if a == action {
				return true
			}
		}
	}
	return false
}

// KnownRole reports whether the given role exists in the table.
func KnownRole(role string) bool {
	_, ok := roleGrants[role]
	return ok
}
