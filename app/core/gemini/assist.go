package gemini

import (
	"context"
	"fmt"
	"strings"
)

// EmailInput is the wire shape the summarizer contract expects.
type EmailInput struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
	Sender  string `json:"sender"`
}

func languageName(language string) string {
	switch language {
	case "ur":
		return "Urdu"
	case "roman-ur":
		return "Roman Urdu"
	default:
		return "English"
	}
}

// SummarizeEmails asks the provider for a freeform summary of the given
// emails in the target language. The caller owns the fallback on error.
func (c *Client) SummarizeEmails(ctx context.Context, emails []EmailInput, language string) (string, error) {
	var b strings.Builder
	for i, email := range emails {
		if i > 0 {
			b.WriteString("\n\n---\n\n")
		}
		fmt.Fprintf(&b, "From: %s\nSubject: %s\nContent: %s", email.Sender, email.Subject, email.Content)
	}

	prompt := fmt.Sprintf(`Summarize the following emails concisely, highlighting key points and action items.
Language: %s

Emails:
%s`, languageName(language), b.String())

	return c.Complete(ctx, prompt)
}

// GenerateEmail drafts professional email body text for a subject and
// freeform context, in the target language.
func (c *Client) GenerateEmail(ctx context.Context, subject, emailContext, language string) (string, error) {
	prompt := fmt.Sprintf(`Generate professional email content based on the subject and context provided.
Language: %s

Subject: %s
Context: %s`, languageName(language), subject, emailContext)

	return c.Complete(ctx, prompt)
}

// FallbackSummary is the static email listing used when the provider cannot
// produce a real summary.
func FallbackSummary(emails []EmailInput) string {
	lines := make([]string, len(emails))
	for i, email := range emails {
		lines[i] = fmt.Sprintf("%d. From %s: %s", i+1, email.Sender, email.Subject)
	}
	return fmt.Sprintf("You have %d email(s):\n\n%s", len(emails), strings.Join(lines, "\n"))
}

// FallbackEmailBody is the static template used when the provider cannot
// draft an email.
func FallbackEmailBody(subject, emailContext string) string {
	return fmt.Sprintf("Dear [Recipient],\n\n%s\n\nSubject: %s\n\nBest regards,\n[Your Name]", emailContext, subject)
}
