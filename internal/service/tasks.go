package service

import (
	"context"
	"log/slog"

	"github.com/thibaultdory/foyer/internal/api"
	"github.com/thibaultdory/foyer/internal/model"
)

// Tasks is the task service. List operations are pass-through; mutations
// notify subscribers on success.
type Tasks struct {
	client   *api.Client
	notifier Notifier
	logger   *slog.Logger
}

func NewTasks(client *api.Client, logger *slog.Logger) *Tasks {
	return &Tasks{client: client, logger: logger}
}

// Subscribe registers a change listener; the returned func removes it.
func (s *Tasks) Subscribe(fn func()) func() {
	return s.notifier.Subscribe(fn)
}

func (s *Tasks) List(ctx context.Context, params api.ListParams) (api.Page[model.Task], error) {
	return s.client.Tasks(ctx, params)
}

func (s *Tasks) ListForUser(ctx context.Context, userID string, params api.ListParams) (api.Page[model.Task], error) {
	return s.client.UserTasks(ctx, userID, params)
}

func (s *Tasks) ListByDate(ctx context.Context, day model.Date) ([]model.Task, error) {
	return s.client.TasksByDate(ctx, day)
}

func (s *Tasks) Calendar(ctx context.Context) ([]model.Task, error) {
	return s.client.Calendar(ctx)
}

func (s *Tasks) CalendarRange(ctx context.Context, start, end model.Date) ([]model.Task, error) {
	return s.client.CalendarRange(ctx, start, end)
}

func (s *Tasks) Create(ctx context.Context, in model.TaskCreate) (*model.Task, error) {
	task, err := s.client.CreateTask(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("task created", "id", task.ID, "recurring", task.IsRecurring)
	s.notifier.Notify()
	return task, nil
}

func (s *Tasks) Update(ctx context.Context, id string, in model.TaskUpdate) (*model.Task, error) {
	task, err := s.client.UpdateTask(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify()
	return task, nil
}

func (s *Tasks) Complete(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.client.CompleteTask(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify()
	return task, nil
}

func (s *Tasks) Uncomplete(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.client.UncompleteTask(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify()
	return task, nil
}

// Delete removes a task. Pass deleteFuture only for a recurring series root
// (IsSeriesRoot); single occurrences are always deleted alone. A 404 means
// another view on the shared tablet deleted it first: the desired end state
// holds, so it is reported as success and listeners still fire so mirrors
// drop the stale entry.
func (s *Tasks) Delete(ctx context.Context, id string, deleteFuture bool) error {
	if err := s.client.DeleteTask(ctx, id, deleteFuture); err != nil {
		if !api.IsNotFound(err) {
			return err
		}
		s.logger.Info("task already deleted", "id", id)
	} else {
		s.logger.Info("task deleted", "id", id, "delete_future", deleteFuture)
	}
	s.notifier.Notify()
	return nil
}

// DeleteTask removes t, cascading to future occurrences exactly when t is a
// recurring series root.
func (s *Tasks) DeleteTask(ctx context.Context, t model.Task) error {
	return s.Delete(ctx, t.ID, t.IsSeriesRoot())
}
