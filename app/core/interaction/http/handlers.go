package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"zoya/app/core/executor"
	"zoya/app/core/gemini"
	"zoya/app/core/storage"
	"zoya/app/pkg/logger"
)

// Emails

func (s *Server) handleListEmails(c *gin.Context) {
	emails, err := s.store.ListEmails(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch emails"})
		return
	}
	c.JSON(http.StatusOK, emails)
}

func (s *Server) handleUnreadEmails(c *gin.Context) {
	emails, err := s.store.UnreadEmails(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch unread emails"})
		return
	}
	c.JSON(http.StatusOK, emails)
}

func (s *Server) handleCreateEmail(c *gin.Context) {
	var req createEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email data", "errors": []fieldViolation{{"body", err.Error()}}})
		return
	}
	if violations := req.validate(); len(violations) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email data", "errors": violations})
		return
	}
	email, err := s.store.CreateEmail(c.Request.Context(), req.insert())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create email"})
		return
	}
	s.hub.Broadcast("email_created", email)
	c.JSON(http.StatusOK, email)
}

func (s *Server) handleMarkEmailRead(c *gin.Context) {
	id := c.Param("id")
	if err := s.store.MarkEmailRead(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Email not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to mark email as read"})
		return
	}
	s.hub.Broadcast("email_read", gin.H{"id": id})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleSummarizeEmails(c *gin.Context) {
	// Body is optional; an absent or bad one just means the default language.
	var req summarizeEmailsRequest
	_ = c.ShouldBindJSON(&req)
	if req.Language == "" {
		req.Language = "en"
	}

	emails, err := s.store.UnreadEmails(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to summarize emails"})
		return
	}
	inputs := make([]gemini.EmailInput, len(emails))
	for i, email := range emails {
		inputs[i] = gemini.EmailInput{Subject: email.Subject, Content: email.Content, Sender: email.Sender}
	}

	summary := ""
	if s.assistant != nil {
		summary, err = s.assistant.SummarizeEmails(c.Request.Context(), inputs, req.Language)
		if err != nil {
			logger.Error("Email summarization failed, serving listing fallback: %v", err)
			summary = ""
		}
	}
	if summary == "" {
		summary = gemini.FallbackSummary(inputs)
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary, "emailCount": len(emails)})
}

func (s *Server) handleGenerateEmail(c *gin.Context) {
	var req generateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "errors": []fieldViolation{{"body", err.Error()}}})
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}

	content := ""
	if s.assistant != nil {
		var err error
		content, err = s.assistant.GenerateEmail(c.Request.Context(), req.Subject, req.Context, req.Language)
		if err != nil {
			logger.Error("Email generation failed, serving template fallback: %v", err)
			content = ""
		}
	}
	if content == "" {
		content = gemini.FallbackEmailBody(req.Subject, req.Context)
	}
	c.JSON(http.StatusOK, gin.H{"content": content})
}

// Calendar

func (s *Server) handleListEvents(c *gin.Context) {
	events, err := s.store.ListEvents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch calendar events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

func (s *Server) handleTodayEvents(c *gin.Context) {
	events, err := s.store.TodayEvents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch today's events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

func (s *Server) handleCreateEvent(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event data", "errors": []fieldViolation{{"body", err.Error()}}})
		return
	}
	if violations := req.validate(); len(violations) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event data", "errors": violations})
		return
	}
	event, err := s.store.CreateEvent(c.Request.Context(), req.insert())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create event"})
		return
	}
	s.hub.Broadcast("event_created", event)
	c.JSON(http.StatusOK, event)
}

func (s *Server) handleDeleteEvent(c *gin.Context) {
	id := c.Param("id")
	if err := s.store.DeleteEvent(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete event"})
		return
	}
	s.hub.Broadcast("event_deleted", gin.H{"id": id})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Tasks

func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.store.ListTasks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handlePendingTasks(c *gin.Context) {
	tasks, err := s.store.PendingTasks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch pending tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task data", "errors": []fieldViolation{{"body", err.Error()}}})
		return
	}
	if violations := req.validate(); len(violations) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task data", "errors": violations})
		return
	}
	task, err := s.store.CreateTask(c.Request.Context(), req.insert())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create task"})
		return
	}
	s.hub.Broadcast("task_created", task)
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task data", "errors": []fieldViolation{{"body", err.Error()}}})
		return
	}
	if violations := req.validate(); len(violations) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task data", "errors": violations})
		return
	}
	task, err := s.store.UpdateTask(c.Request.Context(), c.Param("id"), req.update())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update task"})
		return
	}
	s.hub.Broadcast("task_updated", task)
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	id := c.Param("id")
	if err := s.store.DeleteTask(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete task"})
		return
	}
	s.hub.Broadcast("task_deleted", gin.H{"id": id})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Reminders

func (s *Server) handleListReminders(c *gin.Context) {
	reminders, err := s.store.ListReminders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch reminders"})
		return
	}
	c.JSON(http.StatusOK, reminders)
}

func (s *Server) handleActiveReminders(c *gin.Context) {
	reminders, err := s.store.ActiveReminders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch reminders"})
		return
	}
	c.JSON(http.StatusOK, reminders)
}

func (s *Server) handleCreateReminder(c *gin.Context) {
	var req createReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid reminder data", "errors": []fieldViolation{{"body", err.Error()}}})
		return
	}
	if violations := req.validate(); len(violations) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid reminder data", "errors": violations})
		return
	}
	reminder, err := s.store.CreateReminder(c.Request.Context(), req.insert())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create reminder"})
		return
	}
	s.hub.Broadcast("reminder_created", reminder)
	c.JSON(http.StatusOK, reminder)
}

func (s *Server) handleDeactivateReminder(c *gin.Context) {
	if err := s.store.DeactivateReminder(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Reminder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to deactivate reminder"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Command history and processing

func (s *Server) handleCommandHistory(c *gin.Context) {
	commands, err := s.store.CommandHistory(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch command history"})
		return
	}
	c.JSON(http.StatusOK, commands)
}

func (s *Server) handleClearHistory(c *gin.Context) {
	if err := s.store.ClearCommandHistory(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to clear command history"})
		return
	}
	s.hub.Broadcast("history_cleared", gin.H{})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleProcessCommand(c *gin.Context) {
	var req processCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Input) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}

	result, err := s.exec.Execute(c.Request.Context(), req.Input, req.Language, req.InputType)
	if err != nil {
		if errors.Is(err, executor.ErrEmptyInput) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
			return
		}
		logger.Error("Command processing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to process command"})
		return
	}

	for _, event := range result.Events {
		s.hub.Broadcast(event.Type, event.Data)
	}
	s.hub.Broadcast("command_executed", gin.H{
		"command": result.Command,
		"result":  result.Execution,
		"aiResponse": gin.H{
			"intent":   result.Intent,
			"response": result.Response,
			"language": result.Language,
		},
	})

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"response": result.Response,
		"language": result.Language,
		"intent":   result.Intent,
		"result":   result.Execution,
		"command":  result.Command,
	})
}
