// Package authz decides whether a role may perform an action. All role
// checks in the system go through the single policy table below instead of
// ad hoc string comparisons scattered across handlers.
package authz

import "github.com/yukihira/project-management-api/internal/models"

// Actor is the authenticated identity performing an operation. It is
// resolved per request by the auth middleware and passed explicitly into
// every service call; nothing reads it from global state.
type Actor struct {
	ID   uint64
	Role models.Role
}

type Action string

const (
	ActionCreateProject    Action = "create_project"
	ActionDeleteProject    Action = "delete_project"
	ActionAddMember        Action = "add_member"
	ActionCreateTask       Action = "create_task"
	ActionUpdateTaskStatus Action = "update_task_status"
	ActionDeleteTask       Action = "delete_task"
	ActionViewDashboard    Action = "view_dashboard"
	ActionListUsers        Action = "list_users"
)

// policy is the closed role×action table. Admins and managers may do
// everything; developers get the day-to-day task actions but may not
// manage staffing, delete projects, or enumerate users. Developer task
// deletion is further restricted to tasks they created, which is a
// resource check done in the task service.
var policy = map[models.Role]map[Action]bool{
	models.RoleAdmin: {
		ActionCreateProject:    true,
		ActionDeleteProject:    true,
		ActionAddMember:        true,
		ActionCreateTask:       true,
		ActionUpdateTaskStatus: true,
		ActionDeleteTask:       true,
		ActionViewDashboard:    true,
		ActionListUsers:        true,
	},
	models.RoleManager: {
		ActionCreateProject:    true,
		ActionDeleteProject:    true,
		ActionAddMember:        true,
		ActionCreateTask:       true,
		ActionUpdateTaskStatus: true,
		ActionDeleteTask:       true,
		ActionViewDashboard:    true,
		ActionListUsers:        true,
	},
	models.RoleDeveloper: {
		ActionCreateProject:    true,
		ActionCreateTask:       true,
		ActionUpdateTaskStatus: true,
		ActionDeleteTask:       true,
		ActionViewDashboard:    true,
	},
}

// Allowed reports whether the role may perform the action. Unknown roles
// and unknown actions are denied.
func Allowed(role models.Role, action Action) bool {
	return policy[role][action]
}
