package repository

import (
	"errors"

	"github.com/yukihira/project-management-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrMissingProject is returned when a task references a project that
	// does not exist.
	ErrMissingProject = errors.New("task repository: project does not exist")
	// ErrAssigneeNotMember is returned when a task's assignee is not a
	// member of the task's project at insert time.
	ErrAssigneeNotMember = errors.New("task repository: assignee is not a project member")
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// CreateInProject validates references and inserts the task atomically.
// Running the membership check and the insert in one transaction keeps a
// concurrent project deletion from leaving a task behind: the delete wins
// and this create fails with ErrMissingProject.
func (r *GormTaskRepository) CreateInProject(task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, task.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMissingProject
			}
			return err
		}

		if task.AssigneeID != nil {
			var member models.ProjectMember
			if err := tx.Where("project_id = ? AND user_id = ?", task.ProjectID, *task.AssigneeID).
				First(&member).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrAssigneeNotMember
				}
				return err
			}
		}

		return tx.Create(task).Error
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns all tasks with project and assignee preloaded
func (r *GormTaskRepository) List() ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.
		Preload("Project").
		Preload("Assignee").
		Order("tasks.created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete deletes a task and its comments in a transaction
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// AddComment adds a comment to a task
func (r *GormTaskRepository) AddComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// ListComments lists comments on a task, oldest first
func (r *GormTaskRepository) ListComments(taskID uint64) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
