package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps every entity in per-kind maps. It never persists across
// restarts and by construction cannot return a backend error. Queries sort
// explicitly; map order is never relied on.
type MemoryStore struct {
	mu        sync.RWMutex
	emails    map[string]Email
	events    map[string]CalendarEvent
	tasks     map[string]Task
	reminders map[string]Reminder
	commands  map[string]CommandRecord

	// Insertion sequence per id, used to break createdAt ties so that
	// "most recent" stays stable within a single clock tick.
	seq     map[string]uint64
	nextSeq uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		emails:    map[string]Email{},
		events:    map[string]CalendarEvent{},
		tasks:     map[string]Task{},
		reminders: map[string]Reminder{},
		commands:  map[string]CommandRecord{},
		seq:       map[string]uint64{},
	}
}

// NewSeededMemoryStore returns a store preloaded with demo emails, events
// and tasks so a fresh process has something to show.
func NewSeededMemoryStore() *MemoryStore {
	s := NewMemoryStore()
	s.seed()
	return s
}

func (s *MemoryStore) track(id string) {
	s.nextSeq++
	s.seq[id] = s.nextSeq
}

func (s *MemoryStore) newer(aID string, aAt time.Time, bID string, bAt time.Time) bool {
	if !aAt.Equal(bAt) {
		return aAt.After(bAt)
	}
	return s.seq[aID] > s.seq[bID]
}

// Emails

func (s *MemoryStore) ListEmails(ctx context.Context) ([]Email, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]Email, 0, len(s.emails))
	for _, e := range s.emails {
		items = append(items, e)
	}
	sort.Slice(items, func(i, j int) bool {
		return s.newer(items[i].ID, items[i].CreatedAt, items[j].ID, items[j].CreatedAt)
	})
	return items, nil
}

func (s *MemoryStore) UnreadEmails(ctx context.Context) ([]Email, error) {
	all, _ := s.ListEmails(ctx)
	unread := make([]Email, 0, len(all))
	for _, e := range all {
		if !e.IsRead {
			unread = append(unread, e)
		}
	}
	return unread, nil
}

func (s *MemoryStore) CreateEmail(ctx context.Context, insert InsertEmail) (Email, error) {
	email := Email{
		ID:        uuid.NewString(),
		Sender:    insert.Sender,
		Recipient: insert.Recipient,
		Subject:   insert.Subject,
		Content:   insert.Content,
		IsRead:    insert.IsRead,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.emails[email.ID] = email
	s.track(email.ID)
	s.mu.Unlock()
	return email, nil
}

func (s *MemoryStore) MarkEmailRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.emails[id]
	if !ok {
		return ErrNotFound
	}
	email.IsRead = true
	s.emails[id] = email
	return nil
}

// Calendar events

func (s *MemoryStore) ListEvents(ctx context.Context) ([]CalendarEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]CalendarEvent, 0, len(s.events))
	for _, e := range s.events {
		items = append(items, e)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].StartTime.Before(items[j].StartTime)
	})
	return items, nil
}

func (s *MemoryStore) TodayEvents(ctx context.Context) ([]CalendarEvent, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	all, _ := s.ListEvents(ctx)
	today := make([]CalendarEvent, 0, len(all))
	for _, e := range all {
		if !e.StartTime.Before(dayStart) && e.StartTime.Before(dayEnd) {
			today = append(today, e)
		}
	}
	return today, nil
}

func (s *MemoryStore) UpcomingEvents(ctx context.Context) ([]CalendarEvent, error) {
	now := time.Now()
	all, _ := s.ListEvents(ctx)
	upcoming := make([]CalendarEvent, 0, len(all))
	for _, e := range all {
		if e.StartTime.After(now) {
			upcoming = append(upcoming, e)
		}
	}
	if len(upcoming) > 10 {
		upcoming = upcoming[:10]
	}
	return upcoming, nil
}

func (s *MemoryStore) CreateEvent(ctx context.Context, insert InsertCalendarEvent) (CalendarEvent, error) {
	attendees := insert.Attendees
	if attendees == nil {
		attendees = []string{}
	}
	event := CalendarEvent{
		ID:          uuid.NewString(),
		Title:       insert.Title,
		Description: insert.Description,
		StartTime:   insert.StartTime,
		EndTime:     insert.EndTime,
		Attendees:   attendees,
		Location:    insert.Location,
		CreatedAt:   time.Now(),
	}
	s.mu.Lock()
	s.events[event.ID] = event
	s.track(event.ID)
	s.mu.Unlock()
	return event, nil
}

func (s *MemoryStore) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.events, id)
	s.mu.Unlock()
	return nil
}

// Tasks

func (s *MemoryStore) ListTasks(ctx context.Context) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		items = append(items, t)
	}
	sort.Slice(items, func(i, j int) bool {
		return s.newer(items[i].ID, items[i].CreatedAt, items[j].ID, items[j].CreatedAt)
	})
	return items, nil
}

func (s *MemoryStore) PendingTasks(ctx context.Context) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			pending = append(pending, t)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		a, b := pending[i], pending[j]
		switch {
		case a.DueDate != nil && b.DueDate != nil:
			if !a.DueDate.Equal(*b.DueDate) {
				return a.DueDate.Before(*b.DueDate)
			}
			return s.newer(a.ID, a.CreatedAt, b.ID, b.CreatedAt)
		case a.DueDate != nil:
			return true
		case b.DueDate != nil:
			return false
		default:
			return s.newer(a.ID, a.CreatedAt, b.ID, b.CreatedAt)
		}
	})
	return pending, nil
}

func (s *MemoryStore) CreateTask(ctx context.Context, insert InsertTask) (Task, error) {
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
		DueDate:     insert.DueDate,
		CreatedAt:   time.Now(),
	}
	s.mu.Lock()
	s.tasks[task.ID] = task
	s.track(task.ID)
	s.mu.Unlock()
	return task, nil
}

func (s *MemoryStore) UpdateTask(ctx context.Context, id string, update TaskUpdate) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Completed != nil {
		task.Completed = *update.Completed
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}
	if update.DueDate != nil {
		task.DueDate = update.DueDate
	}
	s.tasks[id] = task
	return task, nil
}

func (s *MemoryStore) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.tasks, id)
	s.mu.Unlock()
	return nil
}

// Reminders

func (s *MemoryStore) ListReminders(ctx context.Context) ([]Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]Reminder, 0, len(s.reminders))
	for _, r := range s.reminders {
		items = append(items, r)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ReminderTime.Before(items[j].ReminderTime)
	})
	return items, nil
}

func (s *MemoryStore) ActiveReminders(ctx context.Context) ([]Reminder, error) {
	all, _ := s.ListReminders(ctx)
	active := make([]Reminder, 0, len(all))
	for _, r := range all {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return active, nil
}

func (s *MemoryStore) CreateReminder(ctx context.Context, insert InsertReminder) (Reminder, error) {
	reminder := Reminder{
		ID:           uuid.NewString(),
		Title:        insert.Title,
		Description:  insert.Description,
		ReminderTime: insert.ReminderTime,
		IsActive:     insert.IsActive,
		CreatedAt:    time.Now(),
	}
	s.mu.Lock()
	s.reminders[reminder.ID] = reminder
	s.track(reminder.ID)
	s.mu.Unlock()
	return reminder, nil
}

func (s *MemoryStore) DeactivateReminder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	reminder, ok := s.reminders[id]
	if !ok {
		return ErrNotFound
	}
	reminder.IsActive = false
	s.reminders[id] = reminder
	return nil
}

// Command history

func (s *MemoryStore) CommandHistory(ctx context.Context) ([]CommandRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]CommandRecord, 0, len(s.commands))
	for _, c := range s.commands {
		items = append(items, c)
	}
	sort.Slice(items, func(i, j int) bool {
		return s.newer(items[i].ID, items[i].CreatedAt, items[j].ID, items[j].CreatedAt)
	})
	return items, nil
}

func (s *MemoryStore) CreateCommand(ctx context.Context, insert InsertCommandRecord) (CommandRecord, error) {
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
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.commands[record.ID] = record
	s.track(record.ID)
	s.mu.Unlock()
	return record, nil
}

func (s *MemoryStore) ClearCommandHistory(ctx context.Context) error {
	s.mu.Lock()
	s.commands = map[string]CommandRecord{}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
