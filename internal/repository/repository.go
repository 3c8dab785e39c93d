package repository

import (
	"github.com/yukihira/project-management-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List returns all users
	List() ([]models.User, error)
}

// ProjectRepository defines the interface for project and membership data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// List returns all projects with members and tasks preloaded
	List() ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete removes a project and everything that references it in a
	// single transaction: tasks, their comments, memberships, and stored
	// user stories.
	Delete(id uint64) error

	// AddMember inserts a membership row. Returns ErrDuplicateMember when
	// the (project, user) pair already exists.
	AddMember(member *models.ProjectMember) error

	// FindMember finds a specific membership
	FindMember(projectID, userID uint64) (*models.ProjectMember, error)

	// ListMembers lists all members of a project with users preloaded
	ListMembers(projectID uint64) ([]models.ProjectMember, error)

	// SaveStories persists generated user stories for a project
	SaveStories(projectID uint64, stories []string) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateInProject validates the project reference and, when an
	// assignee is set, the assignee's membership, then inserts the task.
	// The check and the insert run in one transaction.
	CreateInProject(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List returns all tasks with project and assignee preloaded
	List() ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete removes a task and its comments
	Delete(id uint64) error

	// AddComment adds a comment to a task
	AddComment(comment *models.Comment) error

	// ListComments lists comments on a task, oldest first
	ListComments(taskID uint64) ([]models.Comment, error)
}
