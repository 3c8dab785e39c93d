package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukihira/project-management-api/internal/authz"
	"github.com/yukihira/project-management-api/internal/models"
	"github.com/yukihira/project-management-api/internal/repository"
	"gorm.io/gorm"
)

type projectServiceEnv struct {
	db  *gorm.DB
	svc *ProjectService
}

func setupProjectService(t *testing.T) projectServiceEnv {
	t.Helper()

	db := openTestDB(t)
	svc := NewProjectService(repository.NewProjectRepository(db), repository.NewUserRepository(db))
	return projectServiceEnv{db: db, svc: svc}
}

func actorFor(user *models.User) authz.Actor {
	return authz.Actor{ID: user.ID, Role: user.Role}
}

func TestProjectService_CreateProject(t *testing.T) {
	env := setupProjectService(t)
	dev := createTestUser(t, env.db, "dev", models.RoleDeveloper)

	project, err := env.svc.CreateProject(actorFor(dev), CreateProjectInput{Name: "Alpha", Description: "first"})
	require.NoError(t, err)
	require.Equal(t, "Alpha", project.Name)
	require.Equal(t, dev.ID, project.CreatorID)

	// the creator is not enrolled as a member
	members, err := env.svc.ListMembers(project.ID)
	require.NoError(t, err)
	require.Empty(t, members)
}

func TestProjectService_CreateProjectEmptyName(t *testing.T) {
	env := setupProjectService(t)
	dev := createTestUser(t, env.db, "dev", models.RoleDeveloper)

	_, err := env.svc.CreateProject(actorFor(dev), CreateProjectInput{Name: "   "})
	require.ErrorIs(t, err, ErrProjectNameRequired)
}

func TestProjectService_AddMember(t *testing.T) {
	env := setupProjectService(t)
	manager := createTestUser(t, env.db, "manager", models.RoleManager)
	dev := createTestUser(t, env.db, "dev", models.RoleDeveloper)
	project := createTestProject(t, env.db, "Alpha", manager.ID)

	member, err := env.svc.AddMember(actorFor(manager), project.ID, dev.ID)
	require.NoError(t, err)
	require.Equal(t, project.ID, member.ProjectID)
	require.Equal(t, dev.ID, member.UserID)

	members, err := env.svc.ListMembers(project.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, "dev", members[0].User.Username)
}

func TestProjectService_AddMemberNotAuthorized(t *testing.T) {
	env := setupProjectService(t)
	dev := createTestUser(t, env.db, "dev", models.RoleDeveloper)
	other := createTestUser(t, env.db, "other", models.RoleDeveloper)
	project := createTestProject(t, env.db, "Alpha", dev.ID)

	_, err := env.svc.AddMember(actorFor(dev), project.ID, other.ID)
	require.ErrorIs(t, err, ErrNotAuthorized)

	// membership set unchanged
	var count int64
	env.db.Model(&models.ProjectMember{}).Count(&count)
	require.Zero(t, count)
}

func TestProjectService_AddMemberTwiceIsRejected(t *testing.T) {
	env := setupProjectService(t)
	admin := createTestUser(t, env.db, "admin", models.RoleAdmin)
	dev := createTestUser(t, env.db, "dev", models.RoleDeveloper)
	project := createTestProject(t, env.db, "Alpha", admin.ID)

	_, err := env.svc.AddMember(actorFor(admin), project.ID, dev.ID)
	require.NoError(t, err)

	_, err = env.svc.AddMember(actorFor(admin), project.ID, dev.ID)
	require.ErrorIs(t, err, ErrAlreadyMember)

	// cardinality did not change
	var count int64
	env.db.Model(&models.ProjectMember{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestProjectService_AddMemberMissingReferences(t *testing.T) {
	env := setupProjectService(t)
	admin := createTestUser(t, env.db, "admin", models.RoleAdmin)
	project := createTestProject(t, env.db, "Alpha", admin.ID)

	_, err := env.svc.AddMember(actorFor(admin), 9999, admin.ID)
	require.ErrorIs(t, err, ErrProjectNotFound)

	_, err = env.svc.AddMember(actorFor(admin), project.ID, 9999)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestProjectService_DeleteProjectNotAuthorized(t *testing.T) {
	env := setupProjectService(t)
	dev := createTestUser(t, env.db, "dev", models.RoleDeveloper)
	project := createTestProject(t, env.db, "Alpha", dev.ID)

	err := env.svc.DeleteProject(actorFor(dev), project.ID)
	require.ErrorIs(t, err, ErrNotAuthorized)
}

func TestProjectService_DeleteProjectCascades(t *testing.T) {
	env := setupProjectService(t)
	admin := createTestUser(t, env.db, "admin", models.RoleAdmin)
	dev := createTestUser(t, env.db, "dev", models.RoleDeveloper)
	project := createTestProject(t, env.db, "Alpha", admin.ID)
	createTestMember(t, env.db, project.ID, dev.ID)

	task := &models.Task{
		Title:     "Fix bug",
		Status:    models.TaskStatusTodo,
		ProjectID: project.ID,
		CreatorID: admin.ID,
	}
	require.NoError(t, env.db.Create(task).Error)
	comment := &models.Comment{TaskID: task.ID, UserID: dev.ID, Content: "on it"}
	require.NoError(t, env.db.Create(comment).Error)

	require.NoError(t, env.svc.DeleteProject(actorFor(admin), project.ID))

	_, err := env.svc.ListMembers(project.ID)
	require.ErrorIs(t, err, ErrProjectNotFound)

	// no task, membership or comment survives the cascade
	var taskCount, memberCount, commentCount int64
	env.db.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&taskCount)
	env.db.Model(&models.ProjectMember{}).Where("project_id = ?", project.ID).Count(&memberCount)
	env.db.Model(&models.Comment{}).Where("task_id = ?", task.ID).Count(&commentCount)
	require.Zero(t, taskCount)
	require.Zero(t, memberCount)
	require.Zero(t, commentCount)
}

func TestProjectService_UpdateProject(t *testing.T) {
	env := setupProjectService(t)
	admin := createTestUser(t, env.db, "admin", models.RoleAdmin)
	project := createTestProject(t, env.db, "Alpha", admin.ID)

	newName := "Alpha v2"
	newStatus := "archived"
	updated, err := env.svc.UpdateProject(project.ID, UpdateProjectInput{Name: &newName, Status: &newStatus})
	require.NoError(t, err)
	require.Equal(t, "Alpha v2", updated.Name)
	require.Equal(t, "archived", updated.Status)
}
