package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/yukihira/project-management-api/internal/authz"
	"github.com/yukihira/project-management-api/internal/constants"
	"github.com/yukihira/project-management-api/internal/models"
	"github.com/yukihira/project-management-api/internal/repository"
)

// DashboardStats holds the dashboard counters. The overdue count is
// additive to the status buckets: an in-progress task past its deadline
// is counted in both.
type DashboardStats struct {
	TotalProjects int `json:"total_projects"`
	TotalTasks    int `json:"total_tasks"`
	Todo          int `json:"todo"`
	InProgress    int `json:"in_progress"`
	Done          int `json:"done"`
	Overdue       int `json:"overdue"`
}

// DashboardSnapshot is the full dashboard read model.
type DashboardSnapshot struct {
	Stats        DashboardStats
	RecentTasks  []models.Task
	OverdueTasks []models.Task
}

// DashboardService is the read-only aggregation path. It never mutates
// and may return a slightly stale snapshot relative to concurrent
// writers.
type DashboardService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) *DashboardService {
	return &DashboardService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

// Snapshot loads all projects and tasks and reduces them to the
// dashboard view.
func (s *DashboardService) Snapshot(actor authz.Actor, now time.Time) (*DashboardSnapshot, error) {
	if !authz.Allowed(actor.Role, authz.ActionViewDashboard) {
		return nil, ErrNotAuthorized
	}

	projects, err := s.projectRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	tasks, err := s.taskRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	snapshot := ComputeSnapshot(projects, tasks, now)
	return &snapshot, nil
}

// ComputeSnapshot reduces projects and tasks to dashboard statistics.
// Pure: no side effects, tolerates empty input (all-zero stats, empty
// lists).
func ComputeSnapshot(projects []models.Project, tasks []models.Task, now time.Time) DashboardSnapshot {
	stats := DashboardStats{
		TotalProjects: len(projects),
		TotalTasks:    len(tasks),
	}

	overdue := make([]models.Task, 0)
	for _, task := range tasks {
		switch task.Status {
		case models.TaskStatusTodo:
			stats.Todo++
		case models.TaskStatusInProgress:
			stats.InProgress++
		case models.TaskStatusDone:
			stats.Done++
		}

		if task.IsOverdue(now) {
			stats.Overdue++
			if len(overdue) < constants.OverdueTasksLimit {
				overdue = append(overdue, task)
			}
		}
	}

	recent := make([]models.Task, len(tasks))
	copy(recent, tasks)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > constants.RecentTasksLimit {
		recent = recent[:constants.RecentTasksLimit]
	}

	return DashboardSnapshot{
		Stats:        stats,
		RecentTasks:  recent,
		OverdueTasks: overdue,
	}
}
