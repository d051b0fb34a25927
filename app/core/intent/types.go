package intent

import "time"

// Action vocabulary the provider is prompted with, plus the local-only
// actions the fallback matcher and error paths can produce.
const (
	ActionScheduleMeeting   = "schedule_meeting"
	ActionCheckCalendar     = "check_calendar"
	ActionSendEmail         = "send_email"
	ActionCheckEmails       = "check_emails"
	ActionCreateTask        = "create_task"
	ActionSetReminder       = "set_reminder"
	ActionSummarizeEmails   = "summarize_emails"
	ActionRescheduleMeeting = "reschedule_meeting"

	ActionCheckTasks = "check_tasks"
	ActionGreeting   = "greeting"
	ActionUnknown    = "unknown"
	ActionError      = "error"
)

// Params is the tagged parameter union. Each known action carries its own
// typed variant; anything outside the vocabulary rides in RawParams.
type Params interface {
	params()
}

type ScheduleMeetingParams struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	Attendees   []string   `json:"attendees,omitempty"`
	Location    string     `json:"location,omitempty"`
}

type CreateTaskParams struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

type SetReminderParams struct {
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	ReminderTime time.Time `json:"reminderTime"`
}

// QueryParams carries the free text for read-only lookups and for unknown
// input that could not be matched to anything.
type QueryParams struct {
	Query string `json:"query,omitempty"`
}

// RawParams is the unparsed bag for actions outside the enumerated set.
type RawParams map[string]interface{}

func (ScheduleMeetingParams) params() {}
func (CreateTaskParams) params()      {}
func (SetReminderParams) params()     {}
func (QueryParams) params()           {}
func (RawParams) params()             {}

// Intent is the classified form of one command. Confidence is in [0,1].
type Intent struct {
	Action     string  `json:"action"`
	Params     Params  `json:"parameters"`
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// Result pairs the intent with the assistant's reply text in the
// detected language.
type Result struct {
	Intent   Intent `json:"intent"`
	Response string `json:"response"`
	Language string `json:"language"`
}
