package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"zoya/app/core/gemini"
	"zoya/app/core/intent"
	"zoya/app/core/storage"
	"zoya/app/pkg/logger"
)

// ErrEmptyInput rejects commands with no usable text before classification.
var ErrEmptyInput = errors.New("executor: empty input")

// Classifier resolves command text into an intent. It never fails; degraded
// classification surfaces as a low-confidence result.
type Classifier interface {
	Classify(ctx context.Context, input, language string) intent.Result
}

// Assistant generates freeform text for the summarize path. Optional; when
// absent the executor uses the static fallback listing.
type Assistant interface {
	SummarizeEmails(ctx context.Context, emails []gemini.EmailInput, language string) (string, error)
}

// Event is a state change the caller should broadcast after a command ran.
type Event struct {
	Type string
	Data interface{}
}

// Result is the full outcome of one command: the reply text, the classified
// intent, whatever the side effect produced, the history record, and the
// events to broadcast.
type Result struct {
	Response  string                `json:"response"`
	Language  string                `json:"language"`
	Intent    intent.Intent         `json:"intent"`
	Execution interface{}           `json:"result"`
	Command   storage.CommandRecord `json:"command"`
	Events    []Event               `json:"-"`
}

// EmailSummary is the execution payload of a summarize command.
type EmailSummary struct {
	Summary    string `json:"summary"`
	EmailCount int    `json:"emailCount"`
}

type Executor struct {
	classifier Classifier
	store      storage.Storage
	assistant  Assistant
}

func New(classifier Classifier, store storage.Storage, assistant Assistant) *Executor {
	return &Executor{
		classifier: classifier,
		store:      store,
		assistant:  assistant,
	}
}

// Execute classifies and runs one command. Side-effect failures never fail
// the call; they mark the history record failed and leave the reply as the
// classifier produced it. Only an unusable input or a history write failure
// returns an error.
func (e *Executor) Execute(ctx context.Context, input, language, inputType string) (Result, error) {
	if strings.TrimSpace(input) == "" {
		return Result{}, ErrEmptyInput
	}
	if language == "" {
		language = "en"
	}
	if inputType == "" {
		inputType = "text"
	}

	classified := e.classifier.Classify(ctx, input, language)

	response := classified.Response
	status := storage.StatusCompleted
	var execution interface{}
	var events []Event

	ran, err := e.runIntent(ctx, classified, language)
	switch {
	case err != nil:
		logger.Error("Command execution failed for action %s: %v", classified.Intent.Action, err)
		status = storage.StatusFailed
	case !ran.handled:
		status = storage.StatusProcessed
	default:
		execution = ran.execution
		events = ran.events
		if ran.response != "" {
			response = ran.response
		}
	}

	command, err := e.store.CreateCommand(ctx, storage.InsertCommandRecord{
		Input:     input,
		Response:  response,
		Language:  classified.Language,
		InputType: inputType,
		Status:    status,
	})
	if err != nil {
		return Result{}, fmt.Errorf("record command: %w", err)
	}

	return Result{
		Response:  response,
		Language:  classified.Language,
		Intent:    classified.Intent,
		Execution: execution,
		Command:   command,
		Events:    events,
	}, nil
}

type intentOutcome struct {
	handled   bool
	execution interface{}
	response  string
	events    []Event
}

func (e *Executor) runIntent(ctx context.Context, classified intent.Result, language string) (intentOutcome, error) {
	out := intentOutcome{handled: true}

	switch classified.Intent.Action {
	case intent.ActionScheduleMeeting:
		params, ok := classified.Intent.Params.(intent.ScheduleMeetingParams)
		if !ok || params.Title == "" || params.StartTime.IsZero() {
			return out, nil
		}
		end := params.StartTime.Add(time.Hour)
		if params.EndTime != nil {
			end = *params.EndTime
		}
		attendees := params.Attendees
		if attendees == nil {
			attendees = []string{}
		}
		location := params.Location
		if location == "" {
			location = "Virtual"
		}
		event, err := e.store.CreateEvent(ctx, storage.InsertCalendarEvent{
			Title:       params.Title,
			Description: params.Description,
			StartTime:   params.StartTime,
			EndTime:     end,
			Attendees:   attendees,
			Location:    location,
		})
		if err != nil {
			return out, err
		}
		out.execution = event
		out.events = append(out.events, Event{Type: "event_created", Data: event})

	case intent.ActionCreateTask:
		params, ok := classified.Intent.Params.(intent.CreateTaskParams)
		if !ok || params.Title == "" {
			return out, nil
		}
		priority := params.Priority
		if priority == "" {
			priority = storage.PriorityMedium
		}
		task, err := e.store.CreateTask(ctx, storage.InsertTask{
			Title:       params.Title,
			Description: params.Description,
			Priority:    priority,
			DueDate:     params.DueDate,
		})
		if err != nil {
			return out, err
		}
		out.execution = task
		out.response = fmt.Sprintf("Task created successfully: %q", task.Title)
		out.events = append(out.events, Event{Type: "task_created", Data: task})

	case intent.ActionSetReminder:
		params, ok := classified.Intent.Params.(intent.SetReminderParams)
		if !ok || params.Title == "" || params.ReminderTime.IsZero() {
			return out, nil
		}
		reminder, err := e.store.CreateReminder(ctx, storage.InsertReminder{
			Title:        params.Title,
			Description:  params.Description,
			ReminderTime: params.ReminderTime,
			IsActive:     true,
		})
		if err != nil {
			return out, err
		}
		out.execution = reminder
		out.events = append(out.events, Event{Type: "reminder_created", Data: reminder})

	case intent.ActionCheckCalendar:
		events, err := e.store.TodayEvents(ctx)
		if err != nil {
			return out, err
		}
		out.execution = events
		if len(events) == 0 {
			out.response = "You have no events scheduled for today."
			return out, nil
		}
		shown := events
		if len(shown) > 3 {
			shown = shown[:3]
		}
		entries := make([]string, len(shown))
		for i, event := range shown {
			entries[i] = fmt.Sprintf("%s at %s", event.Title, event.StartTime.Format("03:04 PM"))
		}
		out.response = fmt.Sprintf("You have %d event(s) today: %s%s",
			len(events), strings.Join(entries, ", "), ellipsis(len(events)))

	case intent.ActionCheckEmails:
		unread, err := e.store.UnreadEmails(ctx)
		if err != nil {
			return out, err
		}
		out.execution = unread
		if len(unread) == 0 {
			out.response = "You have no unread emails."
			return out, nil
		}
		out.response = fmt.Sprintf("You have %d unread email(s). The most recent is from %s: %q",
			len(unread), unread[0].Sender, unread[0].Subject)

	case intent.ActionCheckTasks:
		tasks, err := e.store.ListTasks(ctx)
		if err != nil {
			return out, err
		}
		out.execution = tasks
		if len(tasks) == 0 {
			out.response = "You have no tasks. Would you like to create one?"
			return out, nil
		}
		var pending []storage.Task
		for _, task := range tasks {
			if !task.Completed {
				pending = append(pending, task)
			}
		}
		if len(pending) == 0 {
			out.response = "All your tasks are completed! Great job!"
			return out, nil
		}
		shown := pending
		if len(shown) > 3 {
			shown = shown[:3]
		}
		entries := make([]string, len(shown))
		for i, task := range shown {
			entries[i] = task.Title
			if task.Priority != "" {
				entries[i] = fmt.Sprintf("%s (%s)", task.Title, task.Priority)
			}
		}
		out.response = fmt.Sprintf("You have %d pending task(s): %s%s",
			len(pending), strings.Join(entries, ", "), ellipsis(len(pending)))

	case intent.ActionSummarizeEmails:
		unread, err := e.store.UnreadEmails(ctx)
		if err != nil {
			return out, err
		}
		inputs := make([]gemini.EmailInput, len(unread))
		for i, email := range unread {
			inputs[i] = gemini.EmailInput{Subject: email.Subject, Content: email.Content, Sender: email.Sender}
		}
		summary := ""
		if e.assistant != nil {
			summary, err = e.assistant.SummarizeEmails(ctx, inputs, language)
			if err != nil {
				logger.Error("Email summarization failed, using listing fallback: %v", err)
				summary = ""
			}
		}
		if summary == "" {
			summary = gemini.FallbackSummary(inputs)
		}
		out.execution = EmailSummary{Summary: summary, EmailCount: len(unread)}

	default:
		out.handled = false
	}

	return out, nil
}

func ellipsis(total int) string {
	if total > 3 {
		return "..."
	}
	return ""
}
