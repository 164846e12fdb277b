// Package entity defines the domain entities for the tasks feature.
package entity

import "time"

// Status identifies the board column a task lives in.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// InitialStatus is the column new tasks enter.
var InitialStatus = StatusTodo

// Columns returns the board columns in display order, left to right.
func Columns() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// ColumnIndex returns the display position of a status, or -1 for an
// unknown status.
func ColumnIndex(s Status) int {
	for i, c := range Columns() {
		if c == s {
			return i
		}
	}
	return -1
}

// IsValid reports whether s is one of the board columns.
func (s Status) IsValid() bool {
	return ColumnIndex(s) >= 0
}

// Task is a card on a project board. Rank orders tasks within their
// (ProjectID, Status) partition; 0 is the top of the column.
type Task struct {
	// ID is the unique identifier for the task.
	ID uint `gorm:"primaryKey"`

	// ProjectID is the board this task belongs to.
	ProjectID uint `gorm:"index:idx_tasks_partition;not null"`

	// Title is the short display text of the card.
	Title string `gorm:"size:255;not null"`

	// Description holds optional free-form detail.
	Description string `gorm:"type:text"`

	// Status is the column the task currently sits in.
	Status Status `gorm:"index:idx_tasks_partition;size:32;not null"`

	// Rank is the zero-based position within the column.
	Rank int `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
