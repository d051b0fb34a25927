package intent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/openai/openai-go/v3"
)

type fakeProvider struct {
	calls int
	out   string
	err   error
}

func (f *fakeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

func TestClassifyParsesProviderResult(t *testing.T) {
	provider := &fakeProvider{out: `Here is the analysis:
{
  "intent": {
    "action": "create_task",
    "parameters": {"title": "Buy milk", "priority": "high", "dueDate": "2026-09-02T10:00:00Z"},
    "language": "en",
    "confidence": 0.92
  },
  "response": "Creating your task now.",
  "language": "en"
}
Let me know if you need anything else.`}
	classifier := NewClassifier(provider, 0)

	result := classifier.Classify(context.Background(), "create a task to buy milk", "en")

	if result.Intent.Action != ActionCreateTask {
		t.Fatalf("expected create_task, got %s", result.Intent.Action)
	}
	if result.Intent.Confidence != 0.92 {
		t.Fatalf("expected confidence 0.92, got %f", result.Intent.Confidence)
	}
	if result.Response != "Creating your task now." {
		t.Fatalf("unexpected response: %q", result.Response)
	}
	params, ok := result.Intent.Params.(CreateTaskParams)
	if !ok {
		t.Fatalf("expected CreateTaskParams, got %T", result.Intent.Params)
	}
	if params.Title != "Buy milk" || params.Priority != "high" {
		t.Fatalf("unexpected params: %+v", params)
	}
	if params.DueDate == nil || !params.DueDate.Equal(time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected due date: %v", params.DueDate)
	}
	if !classifier.Available() {
		t.Fatal("expected classifier to be marked available after success")
	}
}

func TestClassifyDefaultsMissingFields(t *testing.T) {
	provider := &fakeProvider{out: `{"intent": {"parameters": {}}}`}
	classifier := NewClassifier(provider, 0)

	result := classifier.Classify(context.Background(), "something", "ur")

	if result.Intent.Action != ActionUnknown {
		t.Fatalf("expected unknown action default, got %s", result.Intent.Action)
	}
	if result.Intent.Confidence != 0.5 {
		t.Fatalf("expected confidence default 0.5, got %f", result.Intent.Confidence)
	}
	if result.Intent.Language != "ur" || result.Language != "ur" {
		t.Fatalf("expected language hint to fill in, got %s / %s", result.Intent.Language, result.Language)
	}
	if result.Response != "Command processed." {
		t.Fatalf("expected default response, got %q", result.Response)
	}
}

func TestClassifyBreakerSkipsProviderDuringCooldown(t *testing.T) {
	provider := &fakeProvider{err: &openai.Error{StatusCode: 401}}
	classifier := NewClassifier(provider, time.Minute)

	first := classifier.Classify(context.Background(), "hello", "en")
	if provider.calls != 1 {
		t.Fatalf("expected 1 provider call, got %d", provider.calls)
	}
	if first.Intent.Action != ActionGreeting {
		t.Fatalf("expected fallback greeting, got %s", first.Intent.Action)
	}
	if classifier.Available() {
		t.Fatal("expected classifier to be marked unavailable")
	}

	second := classifier.Classify(context.Background(), "check my emails", "en")
	if provider.calls != 1 {
		t.Fatalf("expected cooldown to skip the provider, got %d calls", provider.calls)
	}
	if second.Intent.Confidence > 0.8 {
		t.Fatalf("fallback confidence must stay at or below 0.8, got %f", second.Intent.Confidence)
	}
}

func TestClassifyBreakerRetriesAfterCooldown(t *testing.T) {
	provider := &fakeProvider{err: &openai.Error{StatusCode: 404}}
	classifier := NewClassifier(provider, 10*time.Millisecond)

	classifier.Classify(context.Background(), "hello", "en")
	if provider.calls != 1 {
		t.Fatalf("expected 1 provider call, got %d", provider.calls)
	}

	time.Sleep(20 * time.Millisecond)
	classifier.Classify(context.Background(), "hello", "en")
	if provider.calls != 2 {
		t.Fatalf("expected a retry after the cooldown, got %d calls", provider.calls)
	}
}

func TestClassifyTransientErrorKeepsBreakerClosed(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection reset")}
	classifier := NewClassifier(provider, time.Minute)

	classifier.Classify(context.Background(), "hello", "en")
	classifier.Classify(context.Background(), "hello", "en")

	if provider.calls != 2 {
		t.Fatalf("transient errors must not open the breaker, got %d calls", provider.calls)
	}
	if !classifier.Available() {
		t.Fatal("expected classifier to stay available on transient errors")
	}
}

func TestClassifyMalformedOutputFallsBack(t *testing.T) {
	provider := &fakeProvider{out: "I cannot help with that."}
	classifier := NewClassifier(provider, time.Minute)

	result := classifier.Classify(context.Background(), "check my emails", "en")

	if result.Intent.Action != ActionCheckEmails {
		t.Fatalf("expected fallback check_emails, got %s", result.Intent.Action)
	}
	if !classifier.Available() {
		t.Fatal("malformed output must not open the breaker")
	}
}

func TestClassifyWithoutProviderUsesFallback(t *testing.T) {
	classifier := NewClassifier(nil, time.Minute)

	result := classifier.Classify(context.Background(), "schedule a meeting", "en")

	if result.Intent.Action != ActionCheckCalendar {
		t.Fatalf("expected fallback check_calendar, got %s", result.Intent.Action)
	}
}
