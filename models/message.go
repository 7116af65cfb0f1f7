package models

import (
	"strings"
	"time"
)

// TimeLayout is the ISO-8601 layout used for ContactMessage.Date.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// ContactMessage is one submission of the contact form.
// Sentiment and Priority are filled in from the advisory analysis when it is available.
type ContactMessage struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Message   string    `json:"message" bson:"message"`
	Date      string    `json:"date" bson:"date"`
	Sentiment Sentiment `json:"sentiment,omitempty" bson:"sentiment,omitempty"`
	Priority  Priority  `json:"priority,omitempty" bson:"priority,omitempty"`
}

// Time parses Date. Messages built by this service always parse.
func (m ContactMessage) Time() (time.Time, error) {
	return time.Parse(TimeLayout, m.Date)
}

// FormatTime renders t the way ContactMessage.Date expects.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityNormal Priority = "Normal"
	PriorityLow    Priority = "Low"
)

// Analysis is the advisory classification of a contact message.
type Analysis struct {
	Sentiment Sentiment `json:"sentiment"`
	Priority  Priority  `json:"priority"`
}

// DefaultAnalysis is what callers get whenever classification is unavailable.
func DefaultAnalysis() Analysis {
	return Analysis{Sentiment: SentimentNeutral, Priority: PriorityNormal}
}

// NormalizeAnalysis maps raw labels onto the enumerations field by field.
// Anything unrecognised falls back to the default for that field.
func NormalizeAnalysis(sentiment, priority string) Analysis {
	out := DefaultAnalysis()
	switch strings.ToLower(strings.TrimSpace(sentiment)) {
	case "positive":
		out.Sentiment = SentimentPositive
	case "negative":
		out.Sentiment = SentimentNegative
	}
	switch strings.ToLower(strings.TrimSpace(priority)) {
	case "high":
		out.Priority = PriorityHigh
	case "low":
		out.Priority = PriorityLow
	}
	return out
}

// WithAnalysis returns a copy of m carrying a.
func (m ContactMessage) WithAnalysis(a Analysis) ContactMessage {
	m.Sentiment = a.Sentiment
	m.Priority = a.Priority
	return m
}
