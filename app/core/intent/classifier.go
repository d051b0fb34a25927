package intent

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"zoya/app/core/gemini"
	"zoya/app/pkg/logger"
)

const defaultCooldown = 60 * time.Second

// Provider is the external text-completion dependency. It is treated as an
// opaque classifier; its output is never trusted as-is.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Classifier turns raw command text into a structured intent. It never
// returns an error: provider failures degrade to the pattern fallback.
type Classifier struct {
	provider Provider
	cooldown time.Duration

	// Availability breaker. Races under concurrent commands cost at most a
	// few extra live calls after an outage, which is acceptable.
	mu        sync.Mutex
	available bool
	lastCheck time.Time
}

func NewClassifier(provider Provider, cooldown time.Duration) *Classifier {
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}
	return &Classifier{
		provider:  provider,
		cooldown:  cooldown,
		available: true,
	}
}

// Available reports the breaker state, for health reporting.
func (c *Classifier) Available() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.available
}

func (c *Classifier) shouldSkipProvider() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.available && time.Since(c.lastCheck) < c.cooldown
}

func (c *Classifier) markAvailable() {
	c.mu.Lock()
	c.available = true
	c.lastCheck = time.Now()
	c.mu.Unlock()
}

func (c *Classifier) markUnavailable() {
	c.mu.Lock()
	c.available = false
	c.lastCheck = time.Now()
	c.mu.Unlock()
}

// Classify resolves input text plus a language hint into a Result. The
// provider is skipped entirely while the breaker is open and cooling down.
func (c *Classifier) Classify(ctx context.Context, input, language string) Result {
	if strings.TrimSpace(language) == "" {
		language = "en"
	}

	if c.provider == nil {
		return Fallback(input, language)
	}
	if c.shouldSkipProvider() {
		logger.Info("Classifier provider cooling down, using fallback")
		return Fallback(input, language)
	}

	out, err := c.provider.Complete(ctx, classifyPrompt(input))
	if err != nil {
		logger.Error("Classifier provider call failed: %v", err)
		if gemini.IsUnavailable(err) {
			c.markUnavailable()
		}
		return Fallback(input, language)
	}

	result, err := parseProviderResult(out, language)
	if err != nil {
		logger.Error("Classifier provider returned unusable output: %v", err)
		return Fallback(input, language)
	}

	c.markAvailable()
	return result
}

func classifyPrompt(input string) string {
	var b strings.Builder
	b.WriteString("You are Zoya, an AI personal assistant. Analyze the user's command and extract the intent and parameters.\n\n")
	b.WriteString("Support these actions:\n")
	b.WriteString("- schedule_meeting: Schedule a new meeting (requires title, date/time, attendees)\n")
	b.WriteString("- check_calendar: Check calendar for specific date or today\n")
	b.WriteString("- send_email: Send an email (requires recipient, subject, content)\n")
	b.WriteString("- check_emails: Check recent or unread emails\n")
	b.WriteString("- create_task: Create a new task (requires title, optional priority/due date)\n")
	b.WriteString("- set_reminder: Set a reminder (requires title, date/time)\n")
	b.WriteString("- summarize_emails: Summarize recent emails\n")
	b.WriteString("- reschedule_meeting: Reschedule an existing meeting\n\n")
	b.WriteString("Languages supported: English (en), Urdu (ur), Roman Urdu (roman-ur)\n\n")
	b.WriteString("Respond with JSON in this format:\n")
	b.WriteString(`{
  "intent": {
    "action": "action_name",
    "parameters": { "key": "value" },
    "language": "detected_language",
    "confidence": 0.95
  },
  "response": "Natural response in the detected language",
  "language": "detected_language"
}`)
	b.WriteString("\n\nFor Roman Urdu, respond in Roman Urdu. For Urdu, respond in Urdu script. For English, respond in English.\n\n")
	b.WriteString("User command: " + input)
	return b.String()
}

// parseProviderResult defensively parses the untrusted provider output.
// Missing pieces get conservative defaults; garbage fails the parse.
func parseProviderResult(text, language string) (Result, error) {
	payload, err := extractJSONObject(text)
	if err != nil {
		return Result{}, err
	}
	if !gjson.Valid(payload) {
		return Result{}, fmt.Errorf("provider output is not valid JSON")
	}

	root := gjson.Parse(payload)
	action := strings.TrimSpace(root.Get("intent.action").String())
	if action == "" {
		action = ActionUnknown
	}

	confidence := 0.5
	if conf := root.Get("intent.confidence"); conf.Exists() {
		confidence = conf.Float()
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	intentLanguage := strings.TrimSpace(root.Get("intent.language").String())
	if intentLanguage == "" {
		intentLanguage = language
	}
	resultLanguage := strings.TrimSpace(root.Get("language").String())
	if resultLanguage == "" {
		resultLanguage = language
	}

	response := root.Get("response").String()
	if strings.TrimSpace(response) == "" {
		response = "Command processed."
	}

	return Result{
		Intent: Intent{
			Action:     action,
			Params:     decodeParams(action, root.Get("intent.parameters")),
			Language:   intentLanguage,
			Confidence: confidence,
		},
		Response: response,
		Language: resultLanguage,
	}, nil
}

func extractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("json object not found")
	}
	return text[start : end+1], nil
}

func decodeParams(action string, params gjson.Result) Params {
	switch action {
	case ActionScheduleMeeting, ActionRescheduleMeeting:
		p := ScheduleMeetingParams{
			Title:       params.Get("title").String(),
			Description: params.Get("description").String(),
			Location:    params.Get("location").String(),
		}
		if at, ok := parseTime(params.Get("startTime").String()); ok {
			p.StartTime = at
		}
		if at, ok := parseTime(params.Get("endTime").String()); ok {
			p.EndTime = &at
		}
		for _, attendee := range params.Get("attendees").Array() {
			if name := strings.TrimSpace(attendee.String()); name != "" {
				p.Attendees = append(p.Attendees, name)
			}
		}
		return p
	case ActionCreateTask:
		p := CreateTaskParams{
			Title:       params.Get("title").String(),
			Description: params.Get("description").String(),
			Priority:    params.Get("priority").String(),
		}
		if at, ok := parseTime(params.Get("dueDate").String()); ok {
			p.DueDate = &at
		}
		return p
	case ActionSetReminder:
		p := SetReminderParams{
			Title:       params.Get("title").String(),
			Description: params.Get("description").String(),
		}
		if at, ok := parseTime(params.Get("reminderTime").String()); ok {
			p.ReminderTime = at
		}
		return p
	case ActionCheckCalendar, ActionCheckEmails, ActionCheckTasks, ActionSummarizeEmails:
		return QueryParams{Query: params.Get("query").String()}
	default:
		raw := RawParams{}
		if value, ok := params.Value().(map[string]interface{}); ok {
			raw = value
		}
		return raw
	}
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if at, err := time.Parse(layout, value); err == nil {
			return at, true
		}
	}
	return time.Time{}, false
}
