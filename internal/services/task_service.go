package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukihira/project-management-api/internal/authz"
	"github.com/yukihira/project-management-api/internal/models"
	"github.com/yukihira/project-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTitleRequired     = errors.New("title is required")
	ErrAssigneeNotMember = errors.New("assignee is not a member of the project")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrNotTaskCreator    = errors.New("only the task creator can perform this action")
	ErrCommentRequired   = errors.New("comment content is required")
)

// TaskService handles the task workflow.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	ProjectID   uint64
	AssigneeID  *uint64
	Deadline    *time.Time
}

// CreateTask creates a task in a project. An assignee, when given, must
// be a current member of the project; the client-side dropdown filtering
// is advisory only and is re-validated here, inside the same transaction
// as the insert. New tasks always start in todo.
func (s *TaskService) CreateTask(actor authz.Actor, input CreateTaskInput) (*models.Task, error) {
	if !authz.Allowed(actor.Role, authz.ActionCreateTask) {
		return nil, ErrNotAuthorized
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      models.TaskStatusTodo,
		ProjectID:   input.ProjectID,
		AssigneeID:  input.AssigneeID,
		CreatorID:   actor.ID,
		Deadline:    input.Deadline,
	}

	if err := s.taskRepo.CreateInProject(task); err != nil {
		switch {
		case errors.Is(err, repository.ErrMissingProject):
			return nil, ErrProjectNotFound
		case errors.Is(err, repository.ErrAssigneeNotMember):
			return nil, ErrAssigneeNotMember
		default:
			return nil, fmt.Errorf("failed to create task: %w", err)
		}
	}

	return s.taskRepo.FindByID(task.ID, "Project", "Assignee")
}

// ListTasks returns all tasks with project and assignee data.
func (s *TaskService) ListTasks() ([]models.Task, error) {
	tasks, err := s.taskRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task with its comments.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, []models.Comment, error) {
	task, err := s.taskRepo.FindByID(taskID, "Project", "Assignee")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTaskNotFound
		}
		return nil, nil, fmt.Errorf("failed to find task: %w", err)
	}

	comments, err := s.taskRepo.ListComments(taskID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return task, comments, nil
}

// UpdateTaskInput represents a partial task update.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Deadline    *time.Time
}

// UpdateTask applies a partial update. Status writes are direct
// assignments over the closed enum: any of the three values may follow
// any other, including done back to todo. Values outside the enum are
// rejected.
func (s *TaskService) UpdateTask(actor authz.Actor, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	if !authz.Allowed(actor.Role, authz.ActionUpdateTaskStatus) {
		return nil, ErrNotAuthorized
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		status := models.TaskStatus(*input.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = status
	}
	if input.Deadline != nil {
		task.Deadline = input.Deadline
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Project", "Assignee")
}

// DeleteTask removes a task. Admins and managers may delete any task;
// developers only tasks they created.
func (s *TaskService) DeleteTask(actor authz.Actor, taskID uint64) error {
	if !authz.Allowed(actor.Role, authz.ActionDeleteTask) {
		return ErrNotAuthorized
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if actor.Role == models.RoleDeveloper && task.CreatorID != actor.ID {
		return ErrNotTaskCreator
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// AddComment attaches a comment to a task.
func (s *TaskService) AddComment(actor authz.Actor, taskID uint64, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrCommentRequired
	}

	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	comment := &models.Comment{
		TaskID:  taskID,
		UserID:  actor.ID,
		Content: content,
	}

	if err := s.taskRepo.AddComment(comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	return comment, nil
}
