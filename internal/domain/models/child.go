package models

import "time"

// Sentiment partitions completed logs by the nature of the logged behavior.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
)

// ChildRecord is the whole-document record for one tracked child. Every
// mutation is a full read-modify-write of this document against a single
// key-value entry; there are no partial-field updates.
type ChildRecord struct {
	ChildUUID            string                    `json:"child_uuid"`
	ChildName            string                    `json:"child_name"`
	ChildNameCapitalized string                    `json:"child_name_capitalized"`
	Pronouns             string                    `json:"pronouns,omitempty"`
	CreatedAt            time.Time                 `json:"created_at"`
	UpdatedAt            time.Time                 `json:"updated_at"`
	IsDeleted            bool                      `json:"is_deleted"`
	CompletedLogs        CompletedLogs             `json:"completed_logs"`
	CustomOptions        map[string][]CustomOption `json:"custom_options,omitempty"`
}

// CompletedLogs holds the two sentiment-partitioned log arrays. Both arrays
// are always present (possibly empty) once a record exists.
type CompletedLogs struct {
	Positive []LogEntry `json:"flow_basic_1_positive"`
	Negative []LogEntry `json:"flow_basic_1_negative"`
}

// All returns the union of both partitions. Order is positive then negative;
// callers that care about time order sort on Timestamp.
func (c CompletedLogs) All() []LogEntry {
	entries := make([]LogEntry, 0, len(c.Positive)+len(c.Negative))
	entries = append(entries, c.Positive...)
	entries = append(entries, c.Negative...)
	return entries
}

// Partition returns the array for the given sentiment.
func (c *CompletedLogs) Partition(s Sentiment) []LogEntry {
	if s == SentimentPositive {
		return c.Positive
	}
	return c.Negative
}

// Append adds an entry to the given sentiment's partition.
func (c *CompletedLogs) Append(s Sentiment, entry LogEntry) {
	if s == SentimentPositive {
		c.Positive = append(c.Positive, entry)
		return
	}
	c.Negative = append(c.Negative, entry)
}

// LogEntry is one completed questionnaire pass. Timestamp is the
// caregiver-entered event time, not the wall-clock save time, so backfilled
// incidents land on the right calendar day.
type LogEntry struct {
	ID        string              `json:"id"`
	Timestamp time.Time           `json:"timestamp"`
	Responses map[string]Response `json:"responses"`
}

// Response captures the answers to one question of the flow.
type Response struct {
	Question  string    `json:"question"`
	Answers   []Answer  `json:"answers"`
	Comment   string    `json:"comment,omitempty"`
	Sentiment Sentiment `json:"sentiment,omitempty"`
}

// Answer is a single selected (or caregiver-typed) answer.
type Answer struct {
	Answer   string `json:"answer"`
	IsCustom bool   `json:"isCustom"`
}

// CustomOption is a caregiver-defined answer choice ("pin") attached to a
// question id on one child's record.
type CustomOption struct {
	Label     string    `json:"label"`
	Emoji     string    `json:"emoji,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SelectedChild is the single "currently active child" pointer read by
// screens that do not take an explicit child parameter.
type SelectedChild struct {
	ID        string `json:"id"`
	ChildUUID string `json:"child_uuid"`
	ChildName string `json:"child_name"`
}
