// Package journal records gather moves in a local SQLite database so that
// `kb history` can answer "when did this task move, and why". It is
// append-only; the gather engine itself never reads from it.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/mdkanban/kb/internal/gather"
)

const schema = `
CREATE TABLE IF NOT EXISTS moves (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	board TEXT NOT NULL,
	task_id TEXT NOT NULL,
	task_title TEXT NOT NULL,
	from_column TEXT NOT NULL,
	to_column TEXT NOT NULL,
	reason TEXT NOT NULL,
	moved_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_moves_board_time ON moves(board, moved_at);
`

// Journal is an open move journal.
type Journal struct {
	db *sql.DB
}

// Entry is one recorded move.
type Entry struct {
	ID        int64
	Board     string
	TaskID    string
	TaskTitle string
	From      string
	To        string
	Reason    string
	MovedAt   time.Time
}

// Open opens (creating if needed) the journal database at path.
func Open(path string) (*Journal, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	// WAL mode so a watch-mode writer does not block history readers.
	db, err := sql.Open("sqlite3", "file:"+path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping journal database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends the moves of one gather pass, all stamped with the same
// time, in one transaction.
func (j *Journal) Record(ctx context.Context, boardPath string, moves []gather.Move) error {
	if len(moves) == 0 {
		return nil
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO moves (board, task_id, task_title, from_column, to_column, reason, moved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, m := range moves {
		if _, err := stmt.ExecContext(ctx, boardPath, m.TaskID, m.TaskTitle, m.FromTitle, m.ToTitle, m.Reason, now); err != nil {
			return fmt.Errorf("failed to record move of %s: %w", m.TaskID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit journal entries: %w", err)
	}
	return nil
}

// Recent returns up to limit entries for one board, newest first. An empty
// boardPath returns entries across all boards.
func (j *Journal) Recent(ctx context.Context, boardPath string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, board, task_id, task_title, from_column, to_column, reason, moved_at
		FROM moves`
	args := []any{}
	if boardPath != "" {
		query += ` WHERE board = ?`
		args = append(args, boardPath)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var movedAt string
		if err := rows.Scan(&e.ID, &e.Board, &e.TaskID, &e.TaskTitle, &e.From, &e.To, &e.Reason, &movedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		e.MovedAt, err = time.Parse(time.RFC3339, movedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse moved_at %q: %w", movedAt, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
