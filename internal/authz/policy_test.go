package authz

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukihira/project-management-api/internal/models"
)

func TestAllowed(t *testing.T) {
	everything := []Action{
		ActionCreateProject,
		ActionDeleteProject,
		ActionAddMember,
		ActionCreateTask,
		ActionUpdateTaskStatus,
		ActionDeleteTask,
		ActionViewDashboard,
		ActionListUsers,
	}

	for _, role := range []models.Role{models.RoleAdmin, models.RoleManager} {
		for _, action := range everything {
			require.True(t, Allowed(role, action), "%s should allow %s", role, action)
		}
	}

	allowed := []Action{
		ActionCreateProject,
		ActionCreateTask,
		ActionUpdateTaskStatus,
		ActionDeleteTask,
		ActionViewDashboard,
	}
	for _, action := range allowed {
		require.True(t, Allowed(models.RoleDeveloper, action), "developer should allow %s", action)
	}

	denied := []Action{
		ActionDeleteProject,
		ActionAddMember,
		ActionListUsers,
	}
	for _, action := range denied {
		require.False(t, Allowed(models.RoleDeveloper, action), "developer should deny %s", action)
	}
}

func TestAllowedUnknownRole(t *testing.T) {
	require.False(t, Allowed(models.Role("guest"), ActionViewDashboard))
	require.False(t, Allowed(models.RoleAdmin, Action("unknown")))
}
