// Package gateway executes row-level operations against the relational
// store. All operations are single-table with exact-match equality
// filters; shaping rows into domain structs is the access layer's job.
package gateway

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"taskdeck/pkg/logger"
)

// Filters maps column names to required values (AND-ed equality).
type Filters map[string]interface{}

// Values maps column names to values for insert/update.
type Values map[string]interface{}

// Store is the row-level persistence contract.
type Store interface {
	Select(ctx context.Context, table string, columns []string, filters Filters) (*sql.Rows, error)
	Insert(ctx context.Context, table string, values Values, returning []string) *sql.Row
	Update(ctx context.Context, table string, patch Values, filters Filters, returning []string) *sql.Row
	Delete(ctx context.Context, table string, filters Filters) error
}

// Postgres implements Store over a database/sql pool.
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps an existing pool.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Select runs SELECT <columns> FROM <table> WHERE <filters>.
func (p *Postgres) Select(ctx context.Context, table string, columns []string, filters Filters) (*sql.Rows, error) {
	q, args := buildSelect(table, columns, filters)
	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		logger.Error(ctx, "Gateway select failed", "table", table, "error", err)
		return nil, err
	}
	return rows, nil
}

// Insert runs INSERT INTO <table> (...) VALUES (...) RETURNING <returning>.
func (p *Postgres) Insert(ctx context.Context, table string, values Values, returning []string) *sql.Row {
	q, args := buildInsert(table, values, returning)
	return p.db.QueryRowContext(ctx, q, args...)
}

// Update runs UPDATE <table> SET <patch> WHERE <filters> RETURNING <returning>.
func (p *Postgres) Update(ctx context.Context, table string, patch Values, filters Filters, returning []string) *sql.Row {
	q, args := buildUpdate(table, patch, filters, returning)
	return p.db.QueryRowContext(ctx, q, args...)
}

// Delete runs DELETE FROM <table> WHERE <filters>.
func (p *Postgres) Delete(ctx context.Context, table string, filters Filters) error {
	q, args := buildDelete(table, filters)
	if _, err := p.db.ExecContext(ctx, q, args...); err != nil {
		logger.Error(ctx, "Gateway delete failed", "table", table, "error", err)
		return err
	}
	return nil
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505). The signup path matches on this to turn a
// duplicate email into a conflict.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// Map keys are sorted before placeholder assignment so generated SQL is
// deterministic.
func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func buildSelect(table string, columns []string, filters Filters) (string, []interface{}) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(table)
	args := appendWhere(&b, filters, 0)
	return b.String(), args
}

func buildInsert(table string, values Values, returning []string) (string, []interface{}) {
	keys := sortedKeys(values)
	args := make([]interface{}, 0, len(keys))
	placeholders := make([]string, 0, len(keys))
	for i, k := range keys {
		args = append(args, values[k])
		placeholders = append(placeholders, "$"+strconv.Itoa(i+1))
	}
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(keys, ", "))
	b.WriteString(") VALUES (")
	b.WriteString(strings.Join(placeholders, ", "))
	b.WriteString(")")
	if len(returning) > 0 {
		b.WriteString(" RETURNING ")
		b.WriteString(strings.Join(returning, ", "))
	}
	return b.String(), args
}

func buildUpdate(table string, patch Values, filters Filters, returning []string) (string, []interface{}) {
	keys := sortedKeys(patch)
	args := make([]interface{}, 0, len(keys)+len(filters))
	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(table)
	b.WriteString(" SET ")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		args = append(args, patch[k])
		b.WriteString(k)
		b.WriteString(" = $")
		b.WriteString(strconv.Itoa(len(args)))
	}
	args = append(args, appendWhere(&b, filters, len(args))...)
	if len(returning) > 0 {
		b.WriteString(" RETURNING ")
		b.WriteString(strings.Join(returning, ", "))
	}
	return b.String(), args
}

func buildDelete(table string, filters Filters) (string, []interface{}) {
	var b strings.Builder
	b.WriteString("DELETE FROM ")
	b.WriteString(table)
	args := appendWhere(&b, filters, 0)
	return b.String(), args
}

func appendWhere(b *strings.Builder, filters Filters, offset int) []interface{} {
	if len(filters) == 0 {
		return nil
	}
	args := make([]interface{}, 0, len(filters))
	b.WriteString(" WHERE ")
	for i, k := range sortedKeys(filters) {
		if i > 0 {
			b.WriteString(" AND ")
		}
		args = append(args, filters[k])
		b.WriteString(k)
		b.WriteString(" = $")
		b.WriteString(strconv.Itoa(offset + len(args)))
	}
	return args
}
