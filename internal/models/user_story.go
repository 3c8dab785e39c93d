package models

import "time"

// UserStory is a generated story saved against a project when the story
// generator is invoked with a project id.
type UserStory struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ProjectID uint64    `gorm:"not null;index" json:"project_id"`
	Story     string    `gorm:"type:text;not null" json:"story"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}
