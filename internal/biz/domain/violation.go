package domain

import (
	"strings"
	"time"
)

// TimeLayout is the storage format for violation timestamps
const TimeLayout = "2006-01-02 15:04:05"

// Violation represents a recorded forbidden-word hit
type Violation struct {
	ID           int64
	ChatName     string
	Username     string // empty for anonymous senders
	MessageText  string
	SentAt       time.Time
	MatchedWords []string
}

// MatchedList returns the matched words as the stored comma-joined form
func (v *Violation) MatchedList() string {
	return strings.Join(v.MatchedWords, ", ")
}
