package http

import (
	"strings"
	"time"

	"zoya/app/core/storage"
)

// fieldViolation names one bad field in a 400 response.
type fieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type createEmailRequest struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Content   string `json:"content"`
	IsRead    bool   `json:"isRead"`
}

func (r createEmailRequest) validate() []fieldViolation {
	var violations []fieldViolation
	if strings.TrimSpace(r.Sender) == "" {
		violations = append(violations, fieldViolation{"sender", "sender is required"})
	}
	if strings.TrimSpace(r.Recipient) == "" {
		violations = append(violations, fieldViolation{"recipient", "recipient is required"})
	}
	if strings.TrimSpace(r.Subject) == "" {
		violations = append(violations, fieldViolation{"subject", "subject is required"})
	}
	if strings.TrimSpace(r.Content) == "" {
		violations = append(violations, fieldViolation{"content", "content is required"})
	}
	return violations
}

func (r createEmailRequest) insert() storage.InsertEmail {
	return storage.InsertEmail{
		Sender:    r.Sender,
		Recipient: r.Recipient,
		Subject:   r.Subject,
		Content:   r.Content,
		IsRead:    r.IsRead,
	}
}

type createEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Attendees   []string   `json:"attendees"`
	Location    string     `json:"location"`
}

func (r createEventRequest) validate() []fieldViolation {
	var violations []fieldViolation
	if strings.TrimSpace(r.Title) == "" {
		violations = append(violations, fieldViolation{"title", "title is required"})
	}
	if r.StartTime == nil {
		violations = append(violations, fieldViolation{"startTime", "startTime is required"})
	}
	if r.EndTime == nil {
		violations = append(violations, fieldViolation{"endTime", "endTime is required"})
	}
	if r.StartTime != nil && r.EndTime != nil && !r.EndTime.After(*r.StartTime) {
		violations = append(violations, fieldViolation{"endTime", "endTime must be after startTime"})
	}
	return violations
}

func (r createEventRequest) insert() storage.InsertCalendarEvent {
	attendees := r.Attendees
	if attendees == nil {
		attendees = []string{}
	}
	return storage.InsertCalendarEvent{
		Title:       r.Title,
		Description: r.Description,
		StartTime:   *r.StartTime,
		EndTime:     *r.EndTime,
		Attendees:   attendees,
		Location:    r.Location,
	}
}

type createTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

func validPriority(priority string) bool {
	switch priority {
	case storage.PriorityLow, storage.PriorityMedium, storage.PriorityHigh:
		return true
	}
	return false
}

func (r createTaskRequest) validate() []fieldViolation {
	var violations []fieldViolation
	if strings.TrimSpace(r.Title) == "" {
		violations = append(violations, fieldViolation{"title", "title is required"})
	}
	if r.Priority != "" && !validPriority(r.Priority) {
		violations = append(violations, fieldViolation{"priority", "priority must be low, medium or high"})
	}
	return violations
}

func (r createTaskRequest) insert() storage.InsertTask {
	return storage.InsertTask{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
	}
}

type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

func (r updateTaskRequest) validate() []fieldViolation {
	var violations []fieldViolation
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		violations = append(violations, fieldViolation{"title", "title cannot be empty"})
	}
	if r.Priority != nil && !validPriority(*r.Priority) {
		violations = append(violations, fieldViolation{"priority", "priority must be low, medium or high"})
	}
	return violations
}

func (r updateTaskRequest) update() storage.TaskUpdate {
	return storage.TaskUpdate{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
	}
}

type createReminderRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ReminderTime *time.Time `json:"reminderTime"`
	IsActive     *bool      `json:"isActive"`
}

func (r createReminderRequest) validate() []fieldViolation {
	var violations []fieldViolation
	if strings.TrimSpace(r.Title) == "" {
		violations = append(violations, fieldViolation{"title", "title is required"})
	}
	if r.ReminderTime == nil {
		violations = append(violations, fieldViolation{"reminderTime", "reminderTime is required"})
	}
	return violations
}

func (r createReminderRequest) insert() storage.InsertReminder {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return storage.InsertReminder{
		Title:        r.Title,
		Description:  r.Description,
		ReminderTime: *r.ReminderTime,
		IsActive:     active,
	}
}

type processCommandRequest struct {
	Input     string `json:"input"`
	Language  string `json:"language"`
	InputType string `json:"inputType"`
}

type summarizeEmailsRequest struct {
	Language string `json:"language"`
}

type generateEmailRequest struct {
	Subject  string `json:"subject"`
	Context  string `json:"context"`
	Language string `json:"language"`
}
