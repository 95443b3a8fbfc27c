package api

import (
	"context"
	"net/url"

	"github.com/thibaultdory/foyer/internal/model"
)

// Tasks lists all family tasks, server-ordered by due date ascending.
func (c *Client) Tasks(ctx context.Context, params ListParams) (Page[model.Task], error) {
	return list[model.Task](ctx, c, "/tasks", params)
}

// UserTasks lists tasks assigned to one user.
func (c *Client) UserTasks(ctx context.Context, userID string, params ListParams) (Page[model.Task], error) {
	return list[model.Task](ctx, c, "/tasks/user/"+url.PathEscape(userID), params)
}

// TasksByDate lists tasks due on a single day.
func (c *Client) TasksByDate(ctx context.Context, day model.Date) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.get(ctx, "/tasks/date/"+day.String(), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Calendar lists the full family-wide task set for calendar views.
func (c *Client) Calendar(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.get(ctx, "/tasks/calendar", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CalendarRange lists tasks whose due date falls inside [start, end].
func (c *Client) CalendarRange(ctx context.Context, start, end model.Date) ([]model.Task, error) {
	q := url.Values{}
	q.Set("start_date", start.String())
	q.Set("end_date", end.String())
	var tasks []model.Task
	if err := c.do(ctx, "GET", "/tasks/calendar/range", q, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task (parents only). For a recurring task the server
// materializes every future occurrence up to the end date.
func (c *Client) CreateTask(ctx context.Context, in model.TaskCreate) (*model.Task, error) {
	var task model.Task
	if err := c.post(ctx, "/tasks", in, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update.
func (c *Client) UpdateTask(ctx context.Context, id string, in model.TaskUpdate) (*model.Task, error) {
	var task model.Task
	if err := c.put(ctx, "/tasks/"+url.PathEscape(id), in, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CompleteTask marks a task done.
func (c *Client) CompleteTask(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := c.put(ctx, "/tasks/"+url.PathEscape(id)+"/complete", nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UncompleteTask reverts a completion.
func (c *Client) UncompleteTask(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := c.put(ctx, "/tasks/"+url.PathEscape(id)+"/uncomplete", nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task. With deleteFuture set, a recurring series root
// also drops its future occurrences.
func (c *Client) DeleteTask(ctx context.Context, id string, deleteFuture bool) error {
	var q url.Values
	if deleteFuture {
		q = url.Values{"delete_future": {"true"}}
	}
	return c.delete(ctx, "/tasks/"+url.PathEscape(id), q)
}
