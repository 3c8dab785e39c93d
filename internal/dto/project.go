package dto

import (
	"time"

	"github.com/yukihira/project-management-api/internal/models"
)

// ProjectSummaryDTO represents a project in list responses
type ProjectSummaryDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	TaskCount   int       `json:"task_count"`
	TeamMembers []UserDTO `json:"team_members"`
}

// ProjectDetailDTO represents a project with its tasks
type ProjectDetailDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Tasks       []TaskDTO `json:"tasks"`
	TeamMembers []UserDTO `json:"team_members"`
}

// MembershipDTO represents a created membership
type MembershipDTO struct {
	ProjectID uint64    `json:"project_id"`
	UserID    uint64    `json:"user_id"`
	AddedAt   time.Time `json:"added_at"`
}

// ToProjectSummaryDTO converts a project (with Members.User and Tasks
// preloaded) to its list representation
func ToProjectSummaryDTO(project models.Project) ProjectSummaryDTO {
	return ProjectSummaryDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		TaskCount:   len(project.Tasks),
		TeamMembers: membersToUserDTOs(project.Members),
	}
}

// ToProjectDetailDTO converts a project to its detail representation
func ToProjectDetailDTO(project models.Project, now time.Time) ProjectDetailDTO {
	tasks := make([]TaskDTO, len(project.Tasks))
	for i, task := range project.Tasks {
		tasks[i] = ToTaskDTO(task, now)
	}

	return ProjectDetailDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		Tasks:       tasks,
		TeamMembers: membersToUserDTOs(project.Members),
	}
}

// ToMembershipDTO converts a membership row
func ToMembershipDTO(member models.ProjectMember) MembershipDTO {
	return MembershipDTO{
		ProjectID: member.ProjectID,
		UserID:    member.UserID,
		AddedAt:   member.AddedAt,
	}
}

func membersToUserDTOs(members []models.ProjectMember) []UserDTO {
	dtos := make([]UserDTO, len(members))
	for i, member := range members {
		dtos[i] = ToUserDTO(member.User)
	}
	return dtos
}
