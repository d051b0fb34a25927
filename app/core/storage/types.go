package storage

import "time"

// Task priorities. Anything else is rejected at the API boundary.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Command statuses recorded in history.
const (
	StatusCompleted  = "completed"
	StatusProcessed  = "processed"
	StatusFailed     = "failed"
	StatusProcessing = "processing"
)

type Email struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type CalendarEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Attendees   []string  `json:"attendees"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type Reminder struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	ReminderTime time.Time `json:"reminderTime"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CommandRecord struct {
	ID        string    `json:"id"`
	Input     string    `json:"input"`
	Response  string    `json:"response"`
	Language  string    `json:"language"`
	InputType string    `json:"inputType"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Insert shapes carry everything but the server-assigned id and createdAt.

type InsertEmail struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Content   string `json:"content"`
	IsRead    bool   `json:"isRead"`
}

type InsertCalendarEvent struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Attendees   []string  `json:"attendees"`
	Location    string    `json:"location"`
}

type InsertTask struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

type InsertReminder struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ReminderTime time.Time `json:"reminderTime"`
	IsActive     bool      `json:"isActive"`
}

type InsertCommandRecord struct {
	Input     string `json:"input"`
	Response  string `json:"response"`
	Language  string `json:"language"`
	InputType string `json:"inputType"`
	Status    string `json:"status"`
}

// TaskUpdate is a partial update; nil fields are left untouched.
type TaskUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

func (u TaskUpdate) isEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Completed == nil && u.Priority == nil && u.DueDate == nil
}
