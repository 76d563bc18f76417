// Package timectx stamps a message with wall-clock context and detects
// time-sensitive content for memory prioritization.
package timectx

import (
	"strings"
	"time"

	"github.com/luminal-ai/companion/pkg/lexicon"
)

// Context is the transient time stamp attached to a processed message.
type Context struct {
	Timestamp    time.Time
	TimeOfDay    string
	DayOfWeek    string
	IsWeekend    bool
	RelativeTime string
}

// relativeMarkers are checked in order; the first phrase found in the
// message wins.
var relativeMarkers = []string{
	"yesterday", "last night", "last week", "this morning", "this afternoon",
	"this evening", "tonight", "tomorrow", "today", "right now", "next week",
}

// Extract derives the temporal context for a message received at now.
func Extract(message string, now time.Time) Context {
	return Context{
		Timestamp:    now,
		TimeOfDay:    timeOfDay(now.Hour()),
		DayOfWeek:    now.Weekday().String(),
		IsWeekend:    now.Weekday() == time.Saturday || now.Weekday() == time.Sunday,
		RelativeTime: relativeTime(message),
	}
}

// IsTimeSensitive reports whether the message references urgent or
// near-term timing and should be prioritized for recall.
func IsTimeSensitive(message string, lex *lexicon.Set) bool {
	return lexicon.ContainsAny(message, lex.UrgencyTerms)
}

func timeOfDay(hour int) string {
	switch {
	case hour < 5:
		return "night"
	case hour < 12:
		return "morning"
	case hour < 17:
		return "afternoon"
	case hour < 21:
		return "evening"
	default:
		return "night"
	}
}

func relativeTime(message string) string {
	lower := strings.ToLower(message)
	for _, marker := range relativeMarkers {
		if strings.Contains(lower, marker) {
			return marker
		}
	}
	return "present"
}
