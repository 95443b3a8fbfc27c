// Package cache maintains a local mirror of the family-wide datasets used
// by calendar and dashboard views, kept fresh by the services' invalidation
// signals. Paginated reads deliberately bypass the mirror and hit the
// backend fresh: the mirror trades freshness for completeness, the
// paginated path trades completeness for server-authoritative ordering and
// totals.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thibaultdory/foyer/internal/api"
	"github.com/thibaultdory/foyer/internal/model"
	"github.com/thibaultdory/foyer/internal/service"
)

// Dataset names one family-wide collection; UI listeners subscribe per
// dataset so only interested views re-render.
type Dataset string

const (
	DatasetTasks      Dataset = "tasks"
	DatasetPrivileges Dataset = "privileges"
	DatasetViolations Dataset = "violations"
	DatasetRules      Dataset = "rules"
)

const refetchTimeout = 15 * time.Second

// Cache is the family-wide mirror plus the paginated pass-through.
type Cache struct {
	services *service.Registry
	logger   *slog.Logger

	mu         sync.RWMutex
	started    bool
	tasks      map[string]model.Task
	privileges map[string]model.Privilege
	violations map[string]model.RuleViolation
	rules      map[string]model.Rule

	// Best-effort duplicate-fetch guard for range refreshes. A single
	// marker, so truly concurrent distinct ranges are not serialized.
	inFlightRange string

	notifiers    map[Dataset]*service.Notifier
	unsubscribes []func()
}

func New(services *service.Registry, logger *slog.Logger) *Cache {
	c := &Cache{
		services:   services,
		logger:     logger,
		tasks:      make(map[string]model.Task),
		privileges: make(map[string]model.Privilege),
		violations: make(map[string]model.RuleViolation),
		rules:      make(map[string]model.Rule),
		notifiers: map[Dataset]*service.Notifier{
			DatasetTasks:      {},
			DatasetPrivileges: {},
			DatasetViolations: {},
			DatasetRules:      {},
		},
	}

	c.unsubscribes = []func(){
		services.Tasks.Subscribe(func() { c.refetch(DatasetTasks) }),
		services.Privileges.Subscribe(func() { c.refetch(DatasetPrivileges) }),
		services.Violations.Subscribe(func() { c.refetch(DatasetViolations) }),
		services.Rules.Subscribe(func() { c.refetch(DatasetRules) }),
	}
	return c
}

// SubscribeToDataChanges registers fn for one dataset; the returned func
// removes it.
func (c *Cache) SubscribeToDataChanges(ds Dataset, fn func()) func() {
	n, ok := c.notifiers[ds]
	if !ok {
		return func() {}
	}
	return n.Subscribe(fn)
}

// Start performs the initial parallel fetch of all four family-wide
// datasets. Any single failure aborts the whole batch; nothing is committed
// partially.
func (c *Cache) Start(ctx context.Context) error {
	var (
		tasks      []model.Task
		privileges []model.Privilege
		violations []model.RuleViolation
		rules      []model.Rule
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		tasks, err = c.services.Tasks.Calendar(ctx)
		return err
	})
	g.Go(func() (err error) {
		page, err := c.services.Privileges.List(ctx, api.ListParams{})
		privileges = page.Items
		return err
	})
	g.Go(func() (err error) {
		page, err := c.services.Violations.List(ctx, api.ListParams{})
		violations = page.Items
		return err
	})
	g.Go(func() (err error) {
		page, err := c.services.Rules.List(ctx, api.ListParams{})
		rules = page.Items
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("initial fetch: %w", err)
	}

	c.mu.Lock()
	c.started = true
	c.tasks = indexByID(tasks, func(t model.Task) string { return t.ID })
	c.privileges = indexByID(privileges, func(p model.Privilege) string { return p.ID })
	c.violations = indexByID(violations, func(v model.RuleViolation) string { return v.ID })
	c.rules = indexByID(rules, func(r model.Rule) string { return r.ID })
	c.mu.Unlock()

	c.logger.Info("cache primed",
		"tasks", len(tasks), "privileges", len(privileges),
		"violations", len(violations), "rules", len(rules))

	for _, ds := range []Dataset{DatasetTasks, DatasetPrivileges, DatasetViolations, DatasetRules} {
		c.notifiers[ds].Notify()
	}
	return nil
}

// Clear wipes all mirrored state, e.g. on logout.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.started = false
	c.tasks = make(map[string]model.Task)
	c.privileges = make(map[string]model.Privilege)
	c.violations = make(map[string]model.RuleViolation)
	c.rules = make(map[string]model.Rule)
	c.mu.Unlock()
}

// Close detaches the cache from the service notifiers.
func (c *Cache) Close() {
	for _, unsub := range c.unsubscribes {
		unsub()
	}
}

// refetch reloads one dataset after an invalidation signal and republishes
// to that dataset's listeners. Errors keep the previous mirror.
func (c *Cache) refetch(ds Dataset) {
	c.mu.RLock()
	started := c.started
	c.mu.RUnlock()
	if !started {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), refetchTimeout)
	defer cancel()

	var err error
	switch ds {
	case DatasetTasks:
		var tasks []model.Task
		if tasks, err = c.services.Tasks.Calendar(ctx); err == nil {
			c.mu.Lock()
			c.tasks = indexByID(tasks, func(t model.Task) string { return t.ID })
			c.mu.Unlock()
		}
	case DatasetPrivileges:
		var page api.Page[model.Privilege]
		if page, err = c.services.Privileges.List(ctx, api.ListParams{}); err == nil {
			c.mu.Lock()
			c.privileges = indexByID(page.Items, func(p model.Privilege) string { return p.ID })
			c.mu.Unlock()
		}
	case DatasetViolations:
		var page api.Page[model.RuleViolation]
		if page, err = c.services.Violations.List(ctx, api.ListParams{}); err == nil {
			c.mu.Lock()
			c.violations = indexByID(page.Items, func(v model.RuleViolation) string { return v.ID })
			c.mu.Unlock()
		}
	case DatasetRules:
		var page api.Page[model.Rule]
		if page, err = c.services.Rules.List(ctx, api.ListParams{}); err == nil {
			c.mu.Lock()
			c.rules = indexByID(page.Items, func(r model.Rule) string { return r.ID })
			c.mu.Unlock()
		}
	}
	if err != nil {
		c.logger.Error("refetch failed", "dataset", string(ds), "error", err)
		return
	}
	c.notifiers[ds].Notify()
}

// RefreshRange fetches tasks due inside [start, end] and merges them into
// the mirror by id: same-id entries are overwritten, nothing is dropped, so
// merging the same result twice is a no-op. A duplicate call for a range
// already in flight is skipped.
func (c *Cache) RefreshRange(ctx context.Context, start, end model.Date) error {
	key := start.String() + ".." + end.String()

	c.mu.Lock()
	if c.inFlightRange == key {
		c.mu.Unlock()
		return nil
	}
	c.inFlightRange = key
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if c.inFlightRange == key {
			c.inFlightRange = ""
		}
		c.mu.Unlock()
	}()

	tasks, err := c.services.Tasks.CalendarRange(ctx, start, end)
	if err != nil {
		return fmt.Errorf("refresh range %s: %w", key, err)
	}

	c.mu.Lock()
	for _, t := range tasks {
		c.tasks[t.ID] = t
	}
	c.mu.Unlock()

	c.notifiers[DatasetTasks].Notify()
	return nil
}

// --- Mirror accessors (calendar-style full-range views) ---

// Tasks returns the mirrored family-wide tasks, due date ascending.
func (c *Cache) Tasks() []model.Task {
	c.mu.RLock()
	out := make([]model.Task, 0, len(c.tasks))
	for _, t := range c.tasks {
		out = append(out, t)
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].DueDate.Equal(out[j].DueDate.Time) {
			return out[i].ID < out[j].ID
		}
		return out[i].DueDate.Before(out[j].DueDate.Time)
	})
	return out
}

// Privileges returns the mirrored privileges, date ascending.
func (c *Cache) Privileges() []model.Privilege {
	c.mu.RLock()
	out := make([]model.Privilege, 0, len(c.privileges))
	for _, p := range c.privileges {
		out = append(out, p)
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date.Time) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date.Time)
	})
	return out
}

// Violations returns the mirrored rule violations, date ascending.
func (c *Cache) Violations() []model.RuleViolation {
	c.mu.RLock()
	out := make([]model.RuleViolation, 0, len(c.violations))
	for _, v := range c.violations {
		out = append(out, v)
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date.Time) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date.Time)
	})
	return out
}

// Rules returns the mirrored rules.
func (c *Cache) Rules() []model.Rule {
	c.mu.RLock()
	out := make([]model.Rule, 0, len(c.rules))
	for _, r := range c.rules {
		out = append(out, r)
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// --- Paginated pass-through (list views; always fresh) ---

func (c *Cache) AllTasks(ctx context.Context, params api.ListParams) (api.Page[model.Task], error) {
	return c.services.Tasks.List(ctx, params)
}

func (c *Cache) UserTasks(ctx context.Context, userID string, params api.ListParams) (api.Page[model.Task], error) {
	return c.services.Tasks.ListForUser(ctx, userID, params)
}

func (c *Cache) AllPrivileges(ctx context.Context, params api.ListParams) (api.Page[model.Privilege], error) {
	return c.services.Privileges.List(ctx, params)
}

func (c *Cache) UserPrivileges(ctx context.Context, userID string, params api.ListParams) (api.Page[model.Privilege], error) {
	return c.services.Privileges.ListForUser(ctx, userID, params)
}

func (c *Cache) AllViolations(ctx context.Context, params api.ListParams) (api.Page[model.RuleViolation], error) {
	return c.services.Violations.List(ctx, params)
}

func (c *Cache) ChildViolations(ctx context.Context, childID string, params api.ListParams) (api.Page[model.RuleViolation], error) {
	return c.services.Violations.ListForChild(ctx, childID, params)
}

func indexByID[T any](items []T, id func(T) string) map[string]T {
	m := make(map[string]T, len(items))
	for _, item := range items {
		m[id(item)] = item
	}
	return m
}
