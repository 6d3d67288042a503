// Package export builds plain-text summaries of log entries for a date
// range and hands them to the sharing boundary: a mailto compose URL for the
// client, or server-side email delivery when SES is configured.
package export

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"abctrack/internal/domain"
	"abctrack/internal/domain/models"
)

// Range selects which entries a summary covers.
type Range string

const (
	RangeToday     Range = "today"
	RangeYesterday Range = "yesterday"
	RangeWeek      Range = "week"
)

// ParseRange validates a range string from the API.
func ParseRange(s string) (Range, error) {
	switch Range(s) {
	case RangeToday, RangeYesterday, RangeWeek:
		return Range(s), nil
	}
	return "", &domain.ValidationError{Message: "range must be today, yesterday or week"}
}

// Bounds returns the half-open local-time interval [start, end) for a range.
// Week is the Monday-start week containing now.
func (r Range) Bounds(now time.Time) (time.Time, time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch r {
	case RangeYesterday:
		return today.AddDate(0, 0, -1), today
	case RangeWeek:
		offset := int(today.Weekday()) - int(time.Monday)
		if offset < 0 {
			offset += 7
		}
		start := today.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	default:
		return today, today.AddDate(0, 0, 1)
	}
}

// EntriesInRange returns the union of both partitions restricted to the
// range, oldest first.
func EntriesInRange(record *models.ChildRecord, r Range, now time.Time) []models.LogEntry {
	start, end := r.Bounds(now)

	var entries []models.LogEntry
	for _, e := range record.CompletedLogs.All() {
		ts := e.Timestamp.In(now.Location())
		if !ts.Before(start) && ts.Before(end) {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	return entries
}

// BuildSummary renders the plain-text summary a therapist receives.
func BuildSummary(record *models.ChildRecord, r Range, now time.Time) string {
	entries := EntriesInRange(record, r, now)
	start, end := r.Bounds(now)

	var b strings.Builder
	fmt.Fprintf(&b, "ABC log summary for %s\n", record.ChildNameCapitalized)
	fmt.Fprintf(&b, "Range: %s (%s - %s)\n",
		r,
		start.Format("Mon Jan 2 2006"),
		end.AddDate(0, 0, -1).Format("Mon Jan 2 2006"),
	)
	fmt.Fprintf(&b, "Entries: %d\n", len(entries))

	for _, e := range entries {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s\n", e.Timestamp.In(now.Location()).Format("Mon Jan 2, 3:04 PM"))
		writeResponse(&b, e, "behavior", "Behavior")
		writeResponse(&b, e, "antecedent", "Antecedent")
		writeResponse(&b, e, "consequence", "Consequence")
		writeResponse(&b, e, "intensity", "Intensity")
	}

	if len(entries) == 0 {
		b.WriteString("\nNo entries logged in this range.\n")
	}
	return b.String()
}

func writeResponse(b *strings.Builder, entry models.LogEntry, questionID, label string) {
	resp, ok := entry.Responses[questionID]
	if !ok {
		return
	}
	answers := make([]string, 0, len(resp.Answers))
	for _, a := range resp.Answers {
		answers = append(answers, a.Answer)
	}
	fmt.Fprintf(b, "  %s: %s\n", label, strings.Join(answers, ", "))
	if resp.Comment != "" {
		fmt.Fprintf(b, "    Note: %s\n", resp.Comment)
	}
}

// MailtoURL builds the compose-intent URL the mobile client opens. Spaces
// and newlines are percent-encoded, not plus-encoded, per RFC 6068.
func MailtoURL(recipient, subject, body string) string {
	return "mailto:" + url.PathEscape(recipient) +
		"?subject=" + escapeMailtoValue(subject) +
		"&body=" + escapeMailtoValue(body)
}

func escapeMailtoValue(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
