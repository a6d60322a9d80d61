package database

import (
	"context"
	"fmt"

	"taskdeck/pkg/logger"
)

// Tasks reference todos with ON DELETE CASCADE: deleting a todo removes
// its tasks at the store, so a tasks-by-todo read after the delete is
// empty without the application issuing a second delete.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id          BIGSERIAL PRIMARY KEY,
		username    TEXT NOT NULL,
		email       TEXT NOT NULL UNIQUE,
		password    TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS todos (
		id          BIGSERIAL PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		user_id     BIGINT NOT NULL REFERENCES users(id),
		completed   BOOLEAN NOT NULL DEFAULT FALSE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id          BIGSERIAL PRIMARY KEY,
		todo_id     BIGINT NOT NULL REFERENCES todos(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		completed   BOOLEAN NOT NULL DEFAULT FALSE,
		status      TEXT NOT NULL DEFAULT 'todo',
		priority    INT NOT NULL DEFAULT 2,
		due_date    TIMESTAMPTZ,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_user_id ON todos (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_todo_id ON tasks (todo_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks (due_date) WHERE due_date IS NOT NULL`,
}

// MigrateOrCreateSchema creates the users/todos/tasks tables and
// indexes if they do not exist. Idempotent; called at startup.
func MigrateOrCreateSchema(ctx context.Context) error {
	db := DB(ctx)
	if db == nil {
		return fmt.Errorf("database not initialized")
	}
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	logger.Info(ctx, "Schema ensured")
	return nil
}
