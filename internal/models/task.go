package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Valid reports whether s is one of the three workflow statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Status      TaskStatus     `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	ProjectID   uint64         `gorm:"not null;index" json:"project_id"`
	AssigneeID  *uint64        `gorm:"index" json:"assigned_to"`
	CreatorID   uint64         `gorm:"not null;index" json:"creator_id"`
	Deadline    *time.Time     `json:"deadline"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project  Project   `gorm:"foreignKey:ProjectID" json:"-"`
	Assignee *User     `gorm:"foreignKey:AssigneeID" json:"-"`
	Comments []Comment `gorm:"foreignKey:TaskID" json:"-"`
}

// IsOverdue reports whether the task's deadline has passed. A done task is
// never overdue. Computed against the caller's clock on every read, never
// stored.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Deadline != nil && now.After(*t.Deadline) && t.Status != TaskStatusDone
}
