package model

import "time"

// Status is the lifecycle state of a task: todo -> doing -> done.
type Status string

const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

// Task represents a single item of work belonging to exactly one project.
type Task struct {
	ID          uint `gorm:"primaryKey"`
	ProjectID   uint `gorm:"index;not null"`
	Title       string
	Description string
	Status      Status `gorm:"type:text;default:todo"`
	Deadline    *time.Time
	ClosedAt    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OverdueAt reports whether the task counts as overdue at the given moment:
// it has a deadline in the past, is not done, and has never been closed.
func (t Task) OverdueAt(now time.Time) bool {
	return t.Deadline != nil && t.Deadline.Before(now) &&
		t.Status != StatusDone && t.ClosedAt == nil
}
