package dto

import (
	"time"

	"github.com/yukihira/project-management-api/internal/models"
	"github.com/yukihira/project-management-api/internal/services"
)

// RecentTaskDTO is a dashboard list entry annotated with the owning
// project's name
type RecentTaskDTO struct {
	ID       uint64            `json:"id"`
	Title    string            `json:"title"`
	Status   models.TaskStatus `json:"status"`
	Project  string            `json:"project,omitempty"`
	Deadline *time.Time        `json:"deadline"`
}

// DashboardDTO is the dashboard response payload
type DashboardDTO struct {
	Stats        services.DashboardStats `json:"stats"`
	RecentTasks  []RecentTaskDTO         `json:"recent_tasks"`
	OverdueTasks []RecentTaskDTO         `json:"overdue_tasks"`
}

// ToDashboardDTO converts a dashboard snapshot to its response shape
func ToDashboardDTO(snapshot services.DashboardSnapshot) DashboardDTO {
	return DashboardDTO{
		Stats:        snapshot.Stats,
		RecentTasks:  toRecentTaskDTOs(snapshot.RecentTasks),
		OverdueTasks: toRecentTaskDTOs(snapshot.OverdueTasks),
	}
}

func toRecentTaskDTOs(tasks []models.Task) []RecentTaskDTO {
	dtos := make([]RecentTaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = RecentTaskDTO{
			ID:       task.ID,
			Title:    task.Title,
			Status:   task.Status,
			Project:  task.Project.Name,
			Deadline: task.Deadline,
		}
	}
	return dtos
}
