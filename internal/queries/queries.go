// Package queries orchestrates reads: cache-first lookup with
// concurrent misses for the same key collapsed into a single store
// fetch.
package queries

import (
	"context"

	"golang.org/x/sync/singleflight"
	"taskdeck/internal/cache"
	"taskdeck/internal/models"
)

// Orchestrator deduplicates in-flight fetches per cache key and fills
// the cache on a miss. Callers racing on the same key share one result.
type Orchestrator struct {
	cache *cache.Cache
	group singleflight.Group
}

// New returns an Orchestrator over the given cache.
func New(c *cache.Cache) *Orchestrator {
	return &Orchestrator{cache: c}
}

// TodosByUser returns the user's todos, cache-first.
func (o *Orchestrator) TodosByUser(ctx context.Context, userID int64, fetch func(context.Context) ([]models.Todo, error)) ([]models.Todo, error) {
	key := cache.TodosByUserKey(userID)
	var todos []models.Todo
	if o.cache.Get(ctx, key, &todos) {
		return todos, nil
	}
	v, err, _ := o.group.Do(key, func() (interface{}, error) {
		// Detached context: the shared result must not die with the
		// first caller.
		todos, err := fetch(context.Background())
		if err != nil {
			return nil, err
		}
		o.cache.Set(ctx, key, todos)
		return todos, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Todo), nil
}

// TasksByTodo returns the todo's tasks, cache-first.
func (o *Orchestrator) TasksByTodo(ctx context.Context, todoID int64, fetch func(context.Context) ([]models.Task, error)) ([]models.Task, error) {
	key := cache.TasksByTodoKey(todoID)
	var tasks []models.Task
	if o.cache.Get(ctx, key, &tasks) {
		return tasks, nil
	}
	v, err, _ := o.group.Do(key, func() (interface{}, error) {
		tasks, err := fetch(context.Background())
		if err != nil {
			return nil, err
		}
		o.cache.Set(ctx, key, tasks)
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Task), nil
}

// InvalidateTodosByUser marks the user's todo list stale.
func (o *Orchestrator) InvalidateTodosByUser(ctx context.Context, userID int64) {
	o.cache.InvalidateTodosByUser(ctx, userID)
}

// InvalidateTasksByTodo marks the todo's task list stale.
func (o *Orchestrator) InvalidateTasksByTodo(ctx context.Context, todoID int64) {
	o.cache.InvalidateTasksByTodo(ctx, todoID)
}
