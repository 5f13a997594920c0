package view

import (
	"context"
	"slices"
	"sync"

	"github.com/mwantia/mycontracts/pkg/log"
	"github.com/mwantia/mycontracts/pkg/models"
)

type TasksState struct {
	Tasks []models.FileSummary
	State LoadState
	Err   string
}

// TasksController keeps the files that carry a due date
type TasksController struct {
	mu sync.RWMutex

	api FilesAPI
	log log.LoggerService

	tasks []models.FileSummary
	state LoadState
	err   string
}

func NewTasksController(api FilesAPI, logger log.LoggerService) *TasksController {
	return &TasksController{
		api:   api,
		log:   logger.Named("tasks"),
		state: StateIdle,
	}
}

func (tc *TasksController) State() TasksState {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return TasksState{
		Tasks: slices.Clone(tc.tasks),
		State: tc.state,
		Err:   tc.err,
	}
}

func (tc *TasksController) Refresh(ctx context.Context) error {
	tc.mu.Lock()
	tc.state = StateLoading
	tc.err = ""
	tc.mu.Unlock()

	tasks, err := tc.api.ListTasks(ctx)

	tc.mu.Lock()
	defer tc.mu.Unlock()

	if err != nil {
		tc.state = StateError
		tc.err = err.Error()
		tc.log.Warn("Unable to load tasks: %v", err)
		return err
	}

	tc.tasks = tasks
	tc.state = StateIdle
	return nil
}
