package intent

import (
	"strings"
	"testing"
)

func TestFallbackGreeting(t *testing.T) {
	result := Fallback("hello there", "en")

	if result.Intent.Action != ActionGreeting {
		t.Fatalf("expected greeting action, got %s", result.Intent.Action)
	}
	if result.Intent.Confidence != 0.8 {
		t.Fatalf("expected confidence 0.8, got %f", result.Intent.Confidence)
	}
	if !strings.Contains(result.Response, "Zoya") {
		t.Fatalf("expected introduction response, got %q", result.Response)
	}
}

func TestFallbackGreetingRomanUrdu(t *testing.T) {
	result := Fallback("salam", "roman-ur")

	if result.Intent.Action != ActionGreeting {
		t.Fatalf("expected greeting action, got %s", result.Intent.Action)
	}
	if result.Language != "roman-ur" {
		t.Fatalf("expected roman-ur language, got %s", result.Language)
	}
	if !strings.Contains(result.Response, "Assalam o alaikum") {
		t.Fatalf("expected Roman Urdu response, got %q", result.Response)
	}
}

func TestFallbackExplicitCreationExtractsTitle(t *testing.T) {
	result := Fallback("add a note buy groceries", "en")

	if result.Intent.Action != ActionCreateTask {
		t.Fatalf("expected create_task action, got %s", result.Intent.Action)
	}
	if result.Intent.Confidence != 0.7 {
		t.Fatalf("expected confidence 0.7, got %f", result.Intent.Confidence)
	}
	params, ok := result.Intent.Params.(CreateTaskParams)
	if !ok {
		t.Fatalf("expected CreateTaskParams, got %T", result.Intent.Params)
	}
	if params.Title != "buy groceries" {
		t.Fatalf("expected title %q, got %q", "buy groceries", params.Title)
	}
}

func TestFallbackCreationBeatsTaskKeyword(t *testing.T) {
	result := Fallback("create a task to call the dentist", "en")

	if result.Intent.Action != ActionCreateTask {
		t.Fatalf("expected create_task over check_tasks, got %s", result.Intent.Action)
	}
}

func TestFallbackTaskKeyword(t *testing.T) {
	result := Fallback("what's on my todo list", "en")

	if result.Intent.Action != ActionCheckTasks {
		t.Fatalf("expected check_tasks action, got %s", result.Intent.Action)
	}
	if result.Intent.Confidence != 0.6 {
		t.Fatalf("expected confidence 0.6, got %f", result.Intent.Confidence)
	}
}

func TestFallbackMeetingKeyword(t *testing.T) {
	result := Fallback("do I have any meetings", "en")

	if result.Intent.Action != ActionCheckCalendar {
		t.Fatalf("expected check_calendar action, got %s", result.Intent.Action)
	}
	params, ok := result.Intent.Params.(QueryParams)
	if !ok {
		t.Fatalf("expected QueryParams, got %T", result.Intent.Params)
	}
	if params.Query != "do I have any meetings" {
		t.Fatalf("expected raw text query, got %q", params.Query)
	}
}

func TestFallbackEmailKeyword(t *testing.T) {
	result := Fallback("any new mail for me", "ur")

	if result.Intent.Action != ActionCheckEmails {
		t.Fatalf("expected check_emails action, got %s", result.Intent.Action)
	}
	if result.Language != "ur" {
		t.Fatalf("expected ur language, got %s", result.Language)
	}
}

func TestFallbackUnknown(t *testing.T) {
	result := Fallback("what is the weather like", "en")

	if result.Intent.Action != ActionUnknown {
		t.Fatalf("expected unknown action, got %s", result.Intent.Action)
	}
	if result.Intent.Confidence != 0.3 {
		t.Fatalf("expected confidence 0.3, got %f", result.Intent.Confidence)
	}
	params, ok := result.Intent.Params.(QueryParams)
	if !ok {
		t.Fatalf("expected QueryParams, got %T", result.Intent.Params)
	}
	if params.Query != "what is the weather like" {
		t.Fatalf("expected raw text carried as query, got %q", params.Query)
	}
}
