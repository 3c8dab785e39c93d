package dto

import (
	"time"

	"github.com/yukihira/project-management-api/internal/models"
)

// TaskDTO represents a task in API responses. Overdue is computed from
// the caller's clock at conversion time, never read from storage.
type TaskDTO struct {
	ID           uint64            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Status       models.TaskStatus `json:"status"`
	ProjectID    uint64            `json:"project_id"`
	ProjectName  string            `json:"project_name,omitempty"`
	AssignedTo   *uint64           `json:"assigned_to"`
	AssigneeName string            `json:"assignee_name,omitempty"`
	Deadline     *time.Time        `json:"deadline"`
	Overdue      bool              `json:"overdue"`
	CreatedAt    time.Time         `json:"created_at"`
}

// CommentDTO represents a task comment in API responses
type CommentDTO struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	User      string    `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskDetailDTO represents a task with its comments
type TaskDetailDTO struct {
	TaskDTO
	Comments []CommentDTO `json:"comments"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task, now time.Time) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		ProjectID:   task.ProjectID,
		AssignedTo:  task.AssigneeID,
		Deadline:    task.Deadline,
		Overdue:     task.IsOverdue(now),
		CreatedAt:   task.CreatedAt,
	}

	// Include names if preloaded
	if task.Project.ID != 0 {
		dto.ProjectName = task.Project.Name
	}
	if task.Assignee != nil {
		dto.AssigneeName = task.Assignee.Username
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task, now time.Time) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task, now)
	}
	return dtos
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		Content:   comment.Content,
		User:      comment.User.Username,
		CreatedAt: comment.CreatedAt,
	}
}

// ToTaskDetailDTO converts a task and its comments to the detail shape
func ToTaskDetailDTO(task models.Task, comments []models.Comment, now time.Time) TaskDetailDTO {
	commentDTOs := make([]CommentDTO, len(comments))
	for i, comment := range comments {
		commentDTOs[i] = ToCommentDTO(comment)
	}

	return TaskDetailDTO{
		TaskDTO:  ToTaskDTO(task, now),
		Comments: commentDTOs,
	}
}
