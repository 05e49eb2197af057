// Package registry records conversion runs in the history database so
// earlier batch outcomes stay queryable.
package registry

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/agentware/appforge/internal/batch"
)

// Run is one recorded per-application outcome.
type Run struct {
	ID        string
	Slug      string
	Path      string
	Status    string
	ToolCount int
	CreatedAt time.Time
}

// Repository handles database operations for conversion runs. It
// implements batch.Recorder.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Record inserts one batch outcome. IDs are ksuids, so insertion order
// survives a lexicographic sort.
func (r *Repository) Record(ctx context.Context, rec batch.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO runs (id, slug, path, status, tool_count)
		VALUES (?, ?, ?, ?, ?)
	`, ksuid.New().String(), rec.Slug, rec.Path, string(rec.Status), rec.Tools)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Recent retrieves the most recent runs, newest first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, slug, path, status, tool_count, created_at
		FROM runs ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Slug, &run.Path, &run.Status, &run.ToolCount, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// CountByStatus aggregates run counts per status over the whole table.
func (r *Repository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM runs GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count runs: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
