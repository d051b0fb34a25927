package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tidwall/gjson"

	"zoya/app/core/executor"
	"zoya/app/core/hub"
	"zoya/app/core/intent"
	"zoya/app/core/storage"
)

type stubClassifier struct {
	result intent.Result
}

func (s stubClassifier) Classify(ctx context.Context, input, language string) intent.Result {
	return s.result
}

func newTestServer(store storage.Storage, result intent.Result) *Server {
	exec := executor.New(stubClassifier{result: result}, store, nil)
	return NewServer("127.0.0.1", 0, store, exec, hub.New(), nil, nil)
}

func doRequest(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(storage.NewMemoryStore(), intent.Result{})

	rec := doRequest(t, s, http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := gjson.Parse(rec.Body.String())
	if body.Get("status").String() != "ok" {
		t.Fatalf("unexpected health body: %s", rec.Body.String())
	}
	if body.Get("classifier").String() != "fallback-only" {
		t.Fatalf("expected fallback-only classifier state, got %s", body.Get("classifier").String())
	}
}

func TestDashboardAggregatesSeedData(t *testing.T) {
	s := newTestServer(storage.NewSeededMemoryStore(), intent.Result{})

	rec := doRequest(t, s, http.MethodGet, "/api/dashboard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := gjson.Parse(rec.Body.String())
	if body.Get("todayMeetings").Int() != 3 {
		t.Fatalf("expected 3 today meetings, got %d", body.Get("todayMeetings").Int())
	}
	if body.Get("unreadEmails").Int() != 3 {
		t.Fatalf("expected 3 unread emails, got %d", body.Get("unreadEmails").Int())
	}
	if body.Get("pendingTasks").Int() != 2 {
		t.Fatalf("expected 2 pending tasks, got %d", body.Get("pendingTasks").Int())
	}
	if !body.Get("upcomingEvents").IsArray() || !body.Get("commandHistory").IsArray() {
		t.Fatalf("expected array slices in dashboard: %s", rec.Body.String())
	}
}

func TestCreateTaskValidation(t *testing.T) {
	s := newTestServer(storage.NewMemoryStore(), intent.Result{})

	rec := doRequest(t, s, http.MethodPost, "/api/tasks", map[string]interface{}{
		"description": "no title",
		"priority":    "urgent",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := gjson.Parse(rec.Body.String())
	violations := body.Get("errors").Array()
	if len(violations) != 2 {
		t.Fatalf("expected title and priority violations, got %s", rec.Body.String())
	}
	if violations[0].Get("field").String() != "title" {
		t.Fatalf("expected title violation first, got %s", rec.Body.String())
	}
}

func TestCreateAndUpdateTask(t *testing.T) {
	store := storage.NewMemoryStore()
	s := newTestServer(store, intent.Result{})

	rec := doRequest(t, s, http.MethodPost, "/api/tasks", map[string]interface{}{"title": "Buy milk"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	created := gjson.Parse(rec.Body.String())
	if created.Get("priority").String() != storage.PriorityMedium {
		t.Fatalf("expected medium default, got %s", rec.Body.String())
	}
	id := created.Get("id").String()

	rec = doRequest(t, s, http.MethodPatch, "/api/tasks/"+id, map[string]interface{}{"completed": true})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !gjson.Parse(rec.Body.String()).Get("completed").Bool() {
		t.Fatalf("expected completed task, got %s", rec.Body.String())
	}

	rec = doRequest(t, s, http.MethodPatch, "/api/tasks/missing", map[string]interface{}{"completed": true})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing task, got %d", rec.Code)
	}
}

func TestCreateEventValidation(t *testing.T) {
	s := newTestServer(storage.NewMemoryStore(), intent.Result{})

	rec := doRequest(t, s, http.MethodPost, "/api/calendar/events", map[string]interface{}{
		"title":     "Broken",
		"startTime": "2026-09-01T15:00:00Z",
		"endTime":   "2026-09-01T14:00:00Z",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	body := gjson.Parse(rec.Body.String())
	if body.Get("errors.0.field").String() != "endTime" {
		t.Fatalf("expected endTime violation, got %s", rec.Body.String())
	}
}

func TestDeactivateReminder(t *testing.T) {
	store := storage.NewMemoryStore()
	s := newTestServer(store, intent.Result{})

	rec := doRequest(t, s, http.MethodPost, "/api/reminders", map[string]interface{}{
		"title":        "call mom",
		"reminderTime": "2026-09-01T18:00:00Z",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	id := gjson.Parse(rec.Body.String()).Get("id").String()

	rec = doRequest(t, s, http.MethodPatch, "/api/reminders/"+id+"/deactivate", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, s, http.MethodGet, "/api/reminders/active", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if active := gjson.Parse(rec.Body.String()).Array(); len(active) != 0 {
		t.Fatalf("expected no active reminders, got %s", rec.Body.String())
	}

	rec = doRequest(t, s, http.MethodPatch, "/api/reminders/missing/deactivate", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestProcessCommand(t *testing.T) {
	store := storage.NewMemoryStore()
	s := newTestServer(store, intent.Result{
		Intent: intent.Intent{
			Action:     intent.ActionCreateTask,
			Params:     intent.CreateTaskParams{Title: "Buy milk"},
			Language:   "en",
			Confidence: 0.9,
		},
		Response: "On it.",
		Language: "en",
	})

	rec := doRequest(t, s, http.MethodPost, "/api/commands/process", map[string]interface{}{
		"input": "create a task to buy milk",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := gjson.Parse(rec.Body.String())
	if !body.Get("success").Bool() {
		t.Fatalf("expected success, got %s", rec.Body.String())
	}
	if body.Get("response").String() != `Task created successfully: "Buy milk"` {
		t.Fatalf("unexpected response text: %s", body.Get("response").String())
	}
	if body.Get("command.status").String() != storage.StatusCompleted {
		t.Fatalf("expected completed command, got %s", rec.Body.String())
	}

	history, err := store.CommandHistory(context.Background())
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected one history record, got %d", len(history))
	}
}

func TestProcessCommandRejectsEmptyInput(t *testing.T) {
	s := newTestServer(storage.NewMemoryStore(), intent.Result{})

	rec := doRequest(t, s, http.MethodPost, "/api/commands/process", map[string]interface{}{"input": "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if gjson.Parse(rec.Body.String()).Get("success").Bool() {
		t.Fatalf("expected failure body, got %s", rec.Body.String())
	}
}

func TestClearCommandHistory(t *testing.T) {
	store := storage.NewMemoryStore()
	if _, err := store.CreateCommand(context.Background(), storage.InsertCommandRecord{Input: "x", Response: "y"}); err != nil {
		t.Fatalf("seed command failed: %v", err)
	}
	s := newTestServer(store, intent.Result{})

	rec := doRequest(t, s, http.MethodDelete, "/api/commands/history", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	history, err := store.CommandHistory(context.Background())
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected cleared history, got %d", len(history))
	}
}

func TestSummarizeEmailsFallback(t *testing.T) {
	store := storage.NewMemoryStore()
	if _, err := store.CreateEmail(context.Background(), storage.InsertEmail{Sender: "Sarah", Recipient: "me", Subject: "Timeline", Content: "body"}); err != nil {
		t.Fatalf("seed email failed: %v", err)
	}
	s := newTestServer(store, intent.Result{})

	rec := doRequest(t, s, http.MethodPost, "/api/emails/summarize", map[string]interface{}{"language": "en"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := gjson.Parse(rec.Body.String())
	if body.Get("emailCount").Int() != 1 {
		t.Fatalf("expected 1 email, got %s", rec.Body.String())
	}
	if body.Get("summary").String() == "" {
		t.Fatalf("expected fallback summary text, got %s", rec.Body.String())
	}
}

func TestGenerateEmailFallback(t *testing.T) {
	s := newTestServer(storage.NewMemoryStore(), intent.Result{})

	rec := doRequest(t, s, http.MethodPost, "/api/emails/generate", map[string]interface{}{
		"subject": "Follow up",
		"context": "Thanks for the call earlier.",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	content := gjson.Parse(rec.Body.String()).Get("content").String()
	if content == "" {
		t.Fatalf("expected generated content, got %s", rec.Body.String())
	}
}
