// Package usecase implements the read-only board projection: a project's
// tasks grouped into the fixed column set and sorted by rank.
package usecase

import (
	"context"
	"sort"

	taskentity "taskboard_backend/internal/feature/tasks/domain/entity"
)

// TaskLister supplies the tasks of an owned project.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (the tasks usecase).
type TaskLister interface {
	ListByProject(ctx context.Context, userID, projectID uint) ([]taskentity.Task, error)
}

// Column is one board column with its tasks in rank order.
type Column struct {
	Status taskentity.Status
	Tasks  []taskentity.Task
}

// boardUsecase builds board projections. It holds no state of its own;
// every call rebuilds the projection from the task list.
type boardUsecase struct {
	tasks TaskLister
}

// NewBoardUsecase creates a new instance of boardUsecase.
func NewBoardUsecase(tasks TaskLister) *boardUsecase {
	return &boardUsecase{tasks: tasks}
}

// Get returns the project's tasks grouped by status into the fixed column
// enumeration, each column sorted by rank ascending. Columns without tasks
// are included empty so the caller always renders the full board.
func (u *boardUsecase) Get(ctx context.Context, userID, projectID uint) ([]Column, error) {
	tasks, err := u.tasks.ListByProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	grouped := map[taskentity.Status][]taskentity.Task{}
	for _, task := range tasks {
		grouped[task.Status] = append(grouped[task.Status], task)
	}

	columns := make([]Column, 0, len(taskentity.Columns()))
	for _, status := range taskentity.Columns() {
		group := grouped[status]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Rank < group[j].Rank
		})
		columns = append(columns, Column{Status: status, Tasks: group})
	}
	return columns, nil
}
