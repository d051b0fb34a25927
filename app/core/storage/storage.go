package storage

import (
	"context"
	"errors"
)

// ErrNotFound reports a lookup against an id the store does not hold.
var ErrNotFound = errors.New("storage: not found")

// Storage is the uniform persistence surface the engine runs against.
// Implementations may fail any call with a backend error; no call is
// atomic across entity kinds.
type Storage interface {
	// Emails
	ListEmails(ctx context.Context) ([]Email, error)
	UnreadEmails(ctx context.Context) ([]Email, error)
	CreateEmail(ctx context.Context, insert InsertEmail) (Email, error)
	MarkEmailRead(ctx context.Context, id string) error

	// Calendar events
	ListEvents(ctx context.Context) ([]CalendarEvent, error)
	TodayEvents(ctx context.Context) ([]CalendarEvent, error)
	UpcomingEvents(ctx context.Context) ([]CalendarEvent, error)
	CreateEvent(ctx context.Context, insert InsertCalendarEvent) (CalendarEvent, error)
	DeleteEvent(ctx context.Context, id string) error

	// Tasks
	ListTasks(ctx context.Context) ([]Task, error)
	PendingTasks(ctx context.Context) ([]Task, error)
	CreateTask(ctx context.Context, insert InsertTask) (Task, error)
	UpdateTask(ctx context.Context, id string, update TaskUpdate) (Task, error)
	DeleteTask(ctx context.Context, id string) error

	// Reminders
	ListReminders(ctx context.Context) ([]Reminder, error)
	ActiveReminders(ctx context.Context) ([]Reminder, error)
	CreateReminder(ctx context.Context, insert InsertReminder) (Reminder, error)
	DeactivateReminder(ctx context.Context, id string) error

	// Command history
	CommandHistory(ctx context.Context) ([]CommandRecord, error)
	CreateCommand(ctx context.Context, insert InsertCommandRecord) (CommandRecord, error)
	ClearCommandHistory(ctx context.Context) error

	Close() error
}
