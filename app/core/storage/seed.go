package storage

import (
	"context"
	"time"
)

// seed loads the demo data set: a few unread emails, today's meetings and a
// mixed task list. Only the memory store is seeded; a durable store keeps
// whatever it already holds.
func (s *MemoryStore) seed() {
	ctx := context.Background()

	sampleEmails := []InsertEmail{
		{
			Sender:    "Sarah Johnson",
			Recipient: "user@company.com",
			Subject:   "Project Timeline Update",
			Content:   "Hi! I wanted to update you on the project timeline. We've made good progress and should be able to deliver on schedule.",
		},
		{
			Sender:    "Marketing Team",
			Recipient: "user@company.com",
			Subject:   "Monthly Report Ready",
			Content:   "The monthly marketing report is ready for review. Please find the attached document with all the key metrics.",
		},
		{
			Sender:    "Alex Chen",
			Recipient: "user@company.com",
			Subject:   "Meeting Reschedule Request",
			Content:   "Could we please reschedule our meeting to tomorrow? Something urgent came up that needs my immediate attention.",
		},
	}
	for _, e := range sampleEmails {
		_, _ = s.CreateEmail(ctx, e)
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	sampleEvents := []InsertCalendarEvent{
		{
			Title:       "Team Standup with Development Team",
			Description: "Daily standup meeting",
			StartTime:   today.Add(14 * time.Hour),
			EndTime:     today.Add(14*time.Hour + 30*time.Minute),
			Attendees:   []string{"Development Team"},
			Location:    "Conference Room A",
		},
		{
			Title:       "Client Meeting - Project Review",
			Description: "Review project progress with client",
			StartTime:   today.Add(15*time.Hour + 30*time.Minute),
			EndTime:     today.Add(16*time.Hour + 30*time.Minute),
			Attendees:   []string{"Client", "Project Manager"},
			Location:    "Meeting Room B",
		},
		{
			Title:       "Weekly Team Sync",
			Description: "Weekly team synchronization meeting",
			StartTime:   today.Add(17 * time.Hour),
			EndTime:     today.Add(17*time.Hour + 30*time.Minute),
			Attendees:   []string{"Team"},
			Location:    "Virtual",
		},
	}
	for _, e := range sampleEvents {
		_, _ = s.CreateEvent(ctx, e)
	}

	due1 := today.Add(18 * time.Hour)
	due2 := today.Add(-2 * time.Hour)
	due3 := today.Add(24 * time.Hour)
	sampleTasks := []InsertTask{
		{
			Title:       "Review client proposal document",
			Description: "Review and provide feedback on the new client proposal",
			Priority:    PriorityHigh,
			DueDate:     &due1,
		},
		{
			Title:       "Send meeting notes to team",
			Description: "Send notes from today's meeting to all team members",
			Completed:   true,
			Priority:    PriorityMedium,
			DueDate:     &due2,
		},
		{
			Title:       "Prepare Q4 budget presentation",
			Description: "Prepare the quarterly budget presentation for management",
			Priority:    PriorityMedium,
			DueDate:     &due3,
		},
	}
	for _, t := range sampleTasks {
		_, _ = s.CreateTask(ctx, t)
	}
}
