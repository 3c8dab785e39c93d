package constants

import "time"

const (
	// MinPasswordLength is the minimum accepted password length at registration.
	MinPasswordLength = 6

	// TokenLifetime is how long issued access tokens stay valid.
	TokenLifetime = 24 * time.Hour

	// RecentTasksLimit caps the dashboard's most-recently-created list.
	RecentTasksLimit = 5

	// OverdueTasksLimit caps the dashboard's overdue task list.
	OverdueTasksLimit = 5

	// ContextKeyActor is the gin context key holding the authenticated actor.
	ContextKeyActor = "actor"
)
