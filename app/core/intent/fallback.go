package intent

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	greetingPattern   = regexp.MustCompile(`^(hi|hello|hey|salam|assalam)`)
	createThenNoun    = regexp.MustCompile(`(?i)(?:create|add|make|save|take|write|new).*(?:task|todo|note|reminder)`)
	nounThenCreate    = regexp.MustCompile(`(?i)(?:task|todo|note|reminder).*(?:create|add|make|save|take|write|new)`)
	titleAfterVerb    = regexp.MustCompile(`(?i)(?:create|add|make|save|take|write|new)\s+(?:a\s+)?(?:task|todo|note|reminder)?\s*(?:to|for|about|that|:)?\s*(.+)`)
	titleAfterNoun    = regexp.MustCompile(`(?i)(?:task|todo|note|reminder)\s*(?:to|for|about|that|:)?\s*(.+)`)
	titleExtractOrder = []*regexp.Regexp{titleAfterVerb, titleAfterNoun}
)

func phrase(language, ur, romanUr, en string) string {
	switch language {
	case "ur":
		return ur
	case "roman-ur":
		return romanUr
	default:
		return en
	}
}

// Fallback is the deterministic pattern matcher used whenever the provider
// cannot be called or cannot be trusted. It always yields a usable result.
func Fallback(input, language string) Result {
	lower := strings.ToLower(input)

	if greetingPattern.MatchString(lower) {
		return Result{
			Intent: Intent{
				Action:     ActionGreeting,
				Params:     RawParams{},
				Language:   language,
				Confidence: 0.8,
			},
			Response: phrase(language,
				"السلام علیکم! میں زویا ہوں، آپ کی ذاتی معاون۔ میں کیسے مدد کر سکتی ہوں؟",
				"Assalam o alaikum! Main Zoya hun, aap ki personal assistant. Main kaise madad kar sakti hun?",
				"Hello! I'm Zoya, your personal assistant. How can I help you today?"),
			Language: language,
		}
	}

	if createThenNoun.MatchString(lower) || nounThenCreate.MatchString(lower) {
		title := input
		for _, pattern := range titleExtractOrder {
			if match := pattern.FindStringSubmatch(input); len(match) > 1 && match[1] != "" {
				title = strings.TrimSpace(match[1])
				break
			}
		}
		return Result{
			Intent: Intent{
				Action:     ActionCreateTask,
				Params:     CreateTaskParams{Title: title, Description: title},
				Language:   language,
				Confidence: 0.7,
			},
			Response: phrase(language,
				fmt.Sprintf("ٹاسک بنایا جا رہا ہے: %s", title),
				fmt.Sprintf("Task banaya ja raha hai: %s", title),
				fmt.Sprintf("Creating task: %s", title)),
			Language: language,
		}
	}

	if strings.Contains(lower, "task") || strings.Contains(lower, "todo") || strings.Contains(lower, "note") {
		return Result{
			Intent: Intent{
				Action:     ActionCheckTasks,
				Params:     RawParams{},
				Language:   language,
				Confidence: 0.6,
			},
			Response: phrase(language,
				"میں آپ کے ٹاسک چیک کر رہی ہوں",
				"Main aap ke tasks check kar rahi hun",
				"Let me check your tasks"),
			Language: language,
		}
	}

	if strings.Contains(lower, "meeting") || strings.Contains(lower, "schedule") {
		return Result{
			Intent: Intent{
				Action:     ActionCheckCalendar,
				Params:     QueryParams{Query: input},
				Language:   language,
				Confidence: 0.6,
			},
			Response: phrase(language,
				"میں آپ کی کیلنڈر چیک کر رہی ہوں",
				"Main aap ki calendar check kar rahi hun",
				"Let me check your calendar"),
			Language: language,
		}
	}

	if strings.Contains(lower, "email") || strings.Contains(lower, "mail") {
		return Result{
			Intent: Intent{
				Action:     ActionCheckEmails,
				Params:     RawParams{},
				Language:   language,
				Confidence: 0.6,
			},
			Response: phrase(language,
				"میں آپ کے ای میل چیک کر رہی ہوں",
				"Main aap ke emails check kar rahi hun",
				"Let me check your emails"),
			Language: language,
		}
	}

	return Result{
		Intent: Intent{
			Action:     ActionUnknown,
			Params:     QueryParams{Query: input},
			Language:   language,
			Confidence: 0.3,
		},
		Response: phrase(language,
			"معذرت، میں آپ کی مدد کرنے کی کوشش کر رہی ہوں۔ براہ کرم زیادہ تفصیل سے بتائیں",
			"Maazrat, main aap ki madad karne ki koshish kar rahi hun. Meherbani karke zyada tafseel se batayein",
			"I'm here to help! Could you please be more specific about what you need?"),
		Language: language,
	}
}
