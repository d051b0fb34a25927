package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists tasks and command history to relational tables.
// Emails, calendar events and reminders live in an embedded memory store
// held for the lifetime of the adapter. Timestamps are stored as unix
// seconds, the store's native resolution.
type SQLiteStore struct {
	conn *sql.DB
	mem  *MemoryStore
}

func NewSQLiteStore(dataDir string, maxConns int, fallback *MemoryStore) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	if fallback == nil {
		fallback = NewMemoryStore()
	}
	if maxConns <= 0 {
		maxConns = 5
	}

	dbPath := filepath.Join(dataDir, "zoya.db")
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	conn.SetMaxOpenConns(maxConns)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	store := &SQLiteStore{conn: conn, mem: fallback}
	if err := store.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	tx, err := s.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	createTasks := `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT,
	completed INTEGER NOT NULL DEFAULT 0,
	priority TEXT NOT NULL,
	due_date INTEGER,
	created_at INTEGER NOT NULL
);`
	if _, err := tx.Exec(createTasks); err != nil {
		return err
	}

	createHistory := `
CREATE TABLE IF NOT EXISTS command_history (
	id TEXT PRIMARY KEY,
	input TEXT NOT NULL,
	response TEXT,
	language TEXT,
	input_type TEXT,
	status TEXT,
	created_at INTEGER NOT NULL
);`
	if _, err := tx.Exec(createHistory); err != nil {
		return err
	}

	if _, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_tasks_completed_due ON tasks(completed, due_date ASC)`); err != nil {
		return err
	}
	if _, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_history_created ON command_history(created_at DESC)`); err != nil {
		return err
	}

	return tx.Commit()
}

// Emails, events and reminders delegate to the in-process store.

func (s *SQLiteStore) ListEmails(ctx context.Context) ([]Email, error) {
	return s.mem.ListEmails(ctx)
}

func (s *SQLiteStore) UnreadEmails(ctx context.Context) ([]Email, error) {
	return s.mem.UnreadEmails(ctx)
}

func (s *SQLiteStore) CreateEmail(ctx context.Context, insert InsertEmail) (Email, error) {
	return s.mem.CreateEmail(ctx, insert)
}

func (s *SQLiteStore) MarkEmailRead(ctx context.Context, id string) error {
	return s.mem.MarkEmailRead(ctx, id)
}

func (s *SQLiteStore) ListEvents(ctx context.Context) ([]CalendarEvent, error) {
	return s.mem.ListEvents(ctx)
}

func (s *SQLiteStore) TodayEvents(ctx context.Context) ([]CalendarEvent, error) {
	return s.mem.TodayEvents(ctx)
}

func (s *SQLiteStore) UpcomingEvents(ctx context.Context) ([]CalendarEvent, error) {
	return s.mem.UpcomingEvents(ctx)
}

func (s *SQLiteStore) CreateEvent(ctx context.Context, insert InsertCalendarEvent) (CalendarEvent, error) {
	return s.mem.CreateEvent(ctx, insert)
}

func (s *SQLiteStore) DeleteEvent(ctx context.Context, id string) error {
	return s.mem.DeleteEvent(ctx, id)
}

func (s *SQLiteStore) ListReminders(ctx context.Context) ([]Reminder, error) {
	return s.mem.ListReminders(ctx)
}

func (s *SQLiteStore) ActiveReminders(ctx context.Context) ([]Reminder, error) {
	return s.mem.ActiveReminders(ctx)
}

func (s *SQLiteStore) CreateReminder(ctx context.Context, insert InsertReminder) (Reminder, error) {
	return s.mem.CreateReminder(ctx, insert)
}

func (s *SQLiteStore) DeactivateReminder(ctx context.Context, id string) error {
	return s.mem.DeactivateReminder(ctx, id)
}

// Tasks

const taskColumns = `id, title, COALESCE(description, ''), completed, priority, due_date, created_at`

func (s *SQLiteStore) ListTasks(ctx context.Context) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC, rowid DESC`
	return s.queryTasks(ctx, query)
}

func (s *SQLiteStore) PendingTasks(ctx context.Context) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE completed = 0
ORDER BY CASE WHEN due_date IS NULL THEN 1 ELSE 0 END ASC, due_date ASC, created_at DESC, rowid DESC`
	return s.queryTasks(ctx, query)
}

func (s *SQLiteStore) queryTasks(ctx context.Context, query string, args ...interface{}) ([]Task, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Task, 0, 16)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, task)
	}
	return items, rows.Err()
}

func scanTask(rows *sql.Rows) (Task, error) {
	var (
		t         Task
		completed int
		due       sql.NullInt64
		created   int64
	)
	if err := rows.Scan(&t.ID, &t.Title, &t.Description, &completed, &t.Priority, &due, &created); err != nil {
		return Task{}, err
	}
	t.Completed = completed != 0
	if due.Valid {
		at := time.Unix(due.Int64, 0)
		t.DueDate = &at
	}
	t.CreatedAt = time.Unix(created, 0)
	return t, nil
}

func (s *SQLiteStore) getTask(ctx context.Context, id string) (Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	rows, err := s.conn.QueryContext(ctx, query, id)
	if err != nil {
		return Task{}, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Task{}, err
		}
		return Task{}, ErrNotFound
	}
	return scanTask(rows)
}

func (s *SQLiteStore) CreateTask(ctx context.Context, insert InsertTask) (Task, error) {
	priority := insert.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	task := Task{
		ID:          uuid.NewString(),
		Title:       insert.Title,
		Description: insert.Description,
		Completed:   insert.Completed,
		Priority:    priority,
		CreatedAt:   time.Unix(time.Now().Unix(), 0),
	}
	var due sql.NullInt64
	if insert.DueDate != nil {
		at := time.Unix(insert.DueDate.Unix(), 0)
		task.DueDate = &at
		due = sql.NullInt64{Int64: at.Unix(), Valid: true}
	}

	query := `INSERT INTO tasks (id, title, description, completed, priority, due_date, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.conn.ExecContext(ctx, query, task.ID, task.Title, task.Description, boolInt(task.Completed), task.Priority, due, task.CreatedAt.Unix()); err != nil {
		return Task{}, err
	}
	return task, nil
}

func (s *SQLiteStore) UpdateTask(ctx context.Context, id string, update TaskUpdate) (Task, error) {
	if update.isEmpty() {
		return s.getTask(ctx, id)
	}

	fields := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)
	if update.Title != nil {
		fields = append(fields, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Description != nil {
		fields = append(fields, "description = ?")
		args = append(args, *update.Description)
	}
	if update.Completed != nil {
		fields = append(fields, "completed = ?")
		args = append(args, boolInt(*update.Completed))
	}
	if update.Priority != nil {
		fields = append(fields, "priority = ?")
		args = append(args, *update.Priority)
	}
	if update.DueDate != nil {
		fields = append(fields, "due_date = ?")
		args = append(args, update.DueDate.Unix())
	}
	args = append(args, id)

	query := "UPDATE tasks SET " + strings.Join(fields, ", ") + " WHERE id = ?"
	result, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return Task{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Task{}, err
	}
	if affected == 0 {
		return Task{}, ErrNotFound
	}
	return s.getTask(ctx, id)
}

func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	_, err := s.conn.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	return err
}

// Command history

func (s *SQLiteStore) CommandHistory(ctx context.Context) ([]CommandRecord, error) {
	query := `SELECT id, input, COALESCE(response, ''), COALESCE(language, ''), COALESCE(input_type, ''), COALESCE(status, ''), created_at
FROM command_history ORDER BY created_at DESC, rowid DESC`
	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]CommandRecord, 0, 16)
	for rows.Next() {
		var (
			r       CommandRecord
			created int64
		)
		if err := rows.Scan(&r.ID, &r.Input, &r.Response, &r.Language, &r.InputType, &r.Status, &created); err != nil {
			return nil, err
		}
		r.CreatedAt = time.Unix(created, 0)
		items = append(items, r)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) CreateCommand(ctx context.Context, insert InsertCommandRecord) (CommandRecord, error) {
	status := insert.Status
	if status == "" {
		status = StatusCompleted
	}
	record := CommandRecord{
		ID:        uuid.NewString(),
		Input:     insert.Input,
		Response:  insert.Response,
		Language:  insert.Language,
		InputType: insert.InputType,
		Status:    status,
		CreatedAt: time.Unix(time.Now().Unix(), 0),
	}
	query := `INSERT INTO command_history (id, input, response, language, input_type, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.conn.ExecContext(ctx, query, record.ID, record.Input, record.Response, record.Language, record.InputType, record.Status, record.CreatedAt.Unix()); err != nil {
		return CommandRecord{}, err
	}
	return record, nil
}

func (s *SQLiteStore) ClearCommandHistory(ctx context.Context) error {
	_, err := s.conn.ExecContext(ctx, `DELETE FROM command_history`)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
