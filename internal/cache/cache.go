// Package cache holds query results keyed by resource kind plus the id
// that scopes them. Entries never expire on their own (a safety TTL can
// be configured); staleness is driven by explicit invalidation after a
// successful mutation.
package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"taskdeck/pkg/logger"
)

const allTasksKey = "tasks:all"

// TodosByUserKey is the canonical key for a user's todo list.
func TodosByUserKey(userID int64) string {
	return "todos:user:" + strconv.FormatInt(userID, 10)
}

// TasksByTodoKey is the canonical key for a todo's task list.
func TasksByTodoKey(todoID int64) string {
	return "tasks:todo:" + strconv.FormatInt(todoID, 10)
}

// Cache is a JSON resource cache over Redis.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New wraps a Redis client. ttl of zero means entries live until
// invalidated.
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Get reads the entry under key into dest. Returns false on a miss or
// any error; a broken cache degrades to the store, never to a failure.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		logger.Debug(ctx, "Cache get failed", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(b, dest); err != nil {
		logger.Debug(ctx, "Cache unmarshal failed", "key", key, "error", err)
		return false
	}
	return true
}

// Set stores v under key.
func (c *Cache) Set(ctx context.Context, key string, v interface{}) {
	if c == nil || c.rdb == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		logger.Debug(ctx, "Cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		logger.Debug(ctx, "Cache set failed", "key", key, "error", err)
	}
}

// InvalidateTodosByUser drops the user's todo list and the aggregate
// task view. Called after a todo mutation succeeds.
func (c *Cache) InvalidateTodosByUser(ctx context.Context, userID int64) {
	c.del(ctx, TodosByUserKey(userID), allTasksKey)
}

// InvalidateTasksByTodo drops the todo's task list and the aggregate
// task view. Called after a task mutation succeeds, and after a todo
// delete (the store cascades task removal).
func (c *Cache) InvalidateTasksByTodo(ctx context.Context, todoID int64) {
	c.del(ctx, TasksByTodoKey(todoID), allTasksKey)
}

func (c *Cache) del(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Debug(ctx, "Cache invalidate failed", "keys", keys, "error", err)
	}
}
