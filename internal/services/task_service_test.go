package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukihira/project-management-api/internal/models"
	"github.com/yukihira/project-management-api/internal/repository"
	"gorm.io/gorm"
)

type taskServiceEnv struct {
	db  *gorm.DB
	svc *TaskService
}

func setupTaskService(t *testing.T) taskServiceEnv {
	t.Helper()

	db := openTestDB(t)
	svc := NewTaskService(repository.NewTaskRepository(db), repository.NewProjectRepository(db))
	return taskServiceEnv{db: db, svc: svc}
}

func TestTaskService_CreateTask(t *testing.T) {
	env := setupTaskService(t)
	dev := createTestUser(t, env.db, "dev", models.RoleDeveloper)
	project := createTestProject(t, env.db, "Alpha", dev.ID)

	task, err := env.svc.CreateTask(actorFor(dev), CreateTaskInput{
		Title:     "Fix bug",
		ProjectID: project.ID,
	})
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusTodo, task.Status)
	require.Equal(t, dev.ID, task.CreatorID)
	require.Equal(t, "Alpha", task.Project.Name)
	require.Nil(t, task.AssigneeID)
}

func TestTaskService_CreateTaskWithAssignee(t *testing.T) {
	env := setupTaskService(t)
	manager := createTestUser(t, env.db, "manager", models.RoleManager)
	bob := createTestUser(t, env.db, "bob", models.RoleDeveloper)
	project := createTestProject(t, env.db, "Alpha", manager.ID)
	createTestMember(t, env.db, project.ID, bob.ID)

	task, err := env.svc.CreateTask(actorFor(manager), CreateTaskInput{
		Title:      "Fix bug",
		ProjectID:  project.ID,
		AssigneeID: &bob.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, task.AssigneeID)
	require.Equal(t, bob.ID, *task.AssigneeID)
	require.Equal(t, "bob", task.Assignee.Username)
}

func TestTaskService_CreateTaskAssigneeNotMember(t *testing.T) {
	env := setupTaskService(t)
	manager := createTestUser(t, env.db, "manager", models.RoleManager)
	outsider := createTestUser(t, env.db, "outsider", models.RoleDeveloper)
	project := createTestProject(t, env.db, "Alpha", manager.ID)

	_, err := env.svc.CreateTask(actorFor(manager), CreateTaskInput{
		Title:      "Fix bug",
		ProjectID:  project.ID,
		AssigneeID: &outsider.ID,
	})
	require.ErrorIs(t, err, ErrAssigneeNotMember)

	// nothing was persisted
	var count int64
	env.db.Model(&models.Task{}).Count(&count)
	require.Zero(t, count)
}

func TestTaskService_CreateTaskMissingProject(t *testing.T) {
	env := setupTaskService(t)
	dev := createTestUser(t, env.db, "dev", models.RoleDeveloper)

	_, err := env.svc.CreateTask(actorFor(dev), CreateTaskInput{
		Title:     "Fix bug",
		ProjectID: 9999,
	})
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestTaskService_CreateTaskTitleRequired(t *testing.T) {
	env := setupTaskService(t)
	dev := createTestUser(t, env.db, "dev", models.RoleDeveloper)
	project := createTestProject(t, env.db, "Alpha", dev.ID)

	_, err := env.svc.CreateTask(actorFor(dev), CreateTaskInput{
		Title:     "  ",
		ProjectID: project.ID,
	})
	require.ErrorIs(t, err, ErrTitleRequired)
}

func TestTaskService_UpdateStatusIsFreeAssignment(t *testing.T) {
	env := setupTaskService(t)
	dev := createTestUser(t, env.db, "dev", models.RoleDeveloper)
	project := createTestProject(t, env.db, "Alpha", dev.ID)

	task, err := env.svc.CreateTask(actorFor(dev), CreateTaskInput{Title: "Fix bug", ProjectID: project.ID})
	require.NoError(t, err)

	// any status may follow any other, including done back to todo
	for _, status := range []string{"in_progress", "done", "todo", "done"} {
		updated, err := env.svc.UpdateTask(actorFor(dev), task.ID, UpdateTaskInput{Status: &status})
		require.NoError(t, err)
		require.Equal(t, models.TaskStatus(status), updated.Status)
	}
}

func TestTaskService_UpdateStatusRejectsUnknownValue(t *testing.T) {
	env := setupTaskService(t)
	dev := createTestUser(t, env.db, "dev", models.RoleDeveloper)
	project := createTestProject(t, env.db, "Alpha", dev.ID)

	task, err := env.svc.CreateTask(actorFor(dev), CreateTaskInput{Title: "Fix bug", ProjectID: project.ID})
	require.NoError(t, err)

	bad := "blocked"
	_, err = env.svc.UpdateTask(actorFor(dev), task.ID, UpdateTaskInput{Status: &bad})
	require.ErrorIs(t, err, ErrInvalidStatus)

	// the stored status is untouched
	stored, _, err := env.svc.GetTask(task.ID)
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusTodo, stored.Status)
}

func TestTaskService_UpdateTaskNotFound(t *testing.T) {
	env := setupTaskService(t)
	dev := createTestUser(t, env.db, "dev", models.RoleDeveloper)

	status := "done"
	_, err := env.svc.UpdateTask(actorFor(dev), 9999, UpdateTaskInput{Status: &status})
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskService_DeleteTaskDeveloperMustBeCreator(t *testing.T) {
	env := setupTaskService(t)
	alice := createTestUser(t, env.db, "alice", models.RoleDeveloper)
	mallory := createTestUser(t, env.db, "mallory", models.RoleDeveloper)
	project := createTestProject(t, env.db, "Alpha", alice.ID)

	task, err := env.svc.CreateTask(actorFor(alice), CreateTaskInput{Title: "Fix bug", ProjectID: project.ID})
	require.NoError(t, err)

	err = env.svc.DeleteTask(actorFor(mallory), task.ID)
	require.ErrorIs(t, err, ErrNotTaskCreator)

	require.NoError(t, env.svc.DeleteTask(actorFor(alice), task.ID))

	_, _, err = env.svc.GetTask(task.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskService_DeleteTaskManagerDeletesAny(t *testing.T) {
	env := setupTaskService(t)
	alice := createTestUser(t, env.db, "alice", models.RoleDeveloper)
	manager := createTestUser(t, env.db, "manager", models.RoleManager)
	project := createTestProject(t, env.db, "Alpha", alice.ID)

	task, err := env.svc.CreateTask(actorFor(alice), CreateTaskInput{Title: "Fix bug", ProjectID: project.ID})
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteTask(actorFor(manager), task.ID))
}

func TestTaskService_Comments(t *testing.T) {
	env := setupTaskService(t)
	dev := createTestUser(t, env.db, "dev", models.RoleDeveloper)
	project := createTestProject(t, env.db, "Alpha", dev.ID)

	task, err := env.svc.CreateTask(actorFor(dev), CreateTaskInput{Title: "Fix bug", ProjectID: project.ID})
	require.NoError(t, err)

	_, err = env.svc.AddComment(actorFor(dev), task.ID, "looking into it")
	require.NoError(t, err)

	_, err = env.svc.AddComment(actorFor(dev), task.ID, "  ")
	require.ErrorIs(t, err, ErrCommentRequired)

	_, err = env.svc.AddComment(actorFor(dev), 9999, "lost")
	require.ErrorIs(t, err, ErrTaskNotFound)

	_, comments, err := env.svc.GetTask(task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, "looking into it", comments[0].Content)
	require.Equal(t, "dev", comments[0].User.Username)
}

func TestTaskService_DeadlinePersisted(t *testing.T) {
	env := setupTaskService(t)
	dev := createTestUser(t, env.db, "dev", models.RoleDeveloper)
	project := createTestProject(t, env.db, "Alpha", dev.ID)

	deadline := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	task, err := env.svc.CreateTask(actorFor(dev), CreateTaskInput{
		Title:     "Ship it",
		ProjectID: project.ID,
		Deadline:  &deadline,
	})
	require.NoError(t, err)
	require.NotNil(t, task.Deadline)
	require.WithinDuration(t, deadline, *task.Deadline, time.Second)
}
