package export

import (
	"errors"
	"strings"
	"testing"
	"time"

	"abctrack/internal/domain"
	"abctrack/internal/domain/models"
)

// fixedNow is a Wednesday afternoon.
var fixedNow = time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)

func TestParseRange(t *testing.T) {
	for _, valid := range []string{"today", "yesterday", "week"} {
		if _, err := ParseRange(valid); err != nil {
			t.Errorf("ParseRange(%q) error = %v", valid, err)
		}
	}

	_, err := ParseRange("month")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("ParseRange(month) error = %v, want ErrValidation", err)
	}
}

func TestRangeBounds(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		r          Range
		start, end time.Time
	}{
		{RangeToday, day(12), day(13)},
		{RangeYesterday, day(11), day(12)},
		{RangeWeek, day(10), day(17)}, // Monday through next Monday
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			start, end := tt.r.Bounds(fixedNow)
			if !start.Equal(tt.start) || !end.Equal(tt.end) {
				t.Errorf("Bounds() = [%v, %v), want [%v, %v)", start, end, tt.start, tt.end)
			}
		})
	}
}

func sampleRecord() *models.ChildRecord {
	at := func(d, h int) time.Time {
		return time.Date(2025, 3, d, h, 0, 0, 0, time.UTC)
	}
	entry := func(id string, ts time.Time, behavior string) models.LogEntry {
		return models.LogEntry{
			ID:        id,
			Timestamp: ts,
			Responses: map[string]models.Response{
				"behavior": {
					Question: "What did they do?",
					Answers:  []models.Answer{{Answer: behavior}},
				},
				"antecedent": {
					Question: "What happened before?",
					Answers:  []models.Answer{{Answer: "Was told no"}},
					Comment:  "right before dinner",
				},
			},
		}
	}

	return &models.ChildRecord{
		ChildUUID:            "uuid-1",
		ChildName:            "mia",
		ChildNameCapitalized: "Mia",
		CompletedLogs: models.CompletedLogs{
			Positive: []models.LogEntry{
				entry("p1", at(12, 9), "sharing"),
			},
			Negative: []models.LogEntry{
				entry("n1", at(12, 14), "hitting"),
				entry("n2", at(11, 10), "screaming"), // yesterday
				entry("n3", at(3, 10), "biting"),     // previous week
			},
		},
	}
}

func TestEntriesInRange(t *testing.T) {
	record := sampleRecord()

	tests := []struct {
		r       Range
		wantIDs []string
	}{
		{RangeToday, []string{"p1", "n1"}},
		{RangeYesterday, []string{"n2"}},
		{RangeWeek, []string{"n2", "p1", "n1"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			entries := EntriesInRange(record, tt.r, fixedNow)
			if len(entries) != len(tt.wantIDs) {
				t.Fatalf("got %d entries, want %d", len(entries), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if entries[i].ID != want {
					t.Errorf("entries[%d].ID = %s, want %s (oldest first)", i, entries[i].ID, want)
				}
			}
		})
	}
}

func TestBuildSummary(t *testing.T) {
	summary := BuildSummary(sampleRecord(), RangeToday, fixedNow)

	for _, want := range []string{
		"ABC log summary for Mia",
		"Entries: 2",
		"Behavior: sharing",
		"Behavior: hitting",
		"Antecedent: Was told no",
		"Note: right before dinner",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestBuildSummaryEmptyRange(t *testing.T) {
	record := &models.ChildRecord{ChildNameCapitalized: "Theo"}

	summary := BuildSummary(record, RangeToday, fixedNow)
	if !strings.Contains(summary, "No entries logged in this range.") {
		t.Errorf("summary = %q", summary)
	}
}

func TestMailtoURL(t *testing.T) {
	got := MailtoURL("therapist@example.com", "ABC log summary", "line one\nline two")

	if !strings.HasPrefix(got, "mailto:therapist@example.com?") {
		t.Errorf("url = %q", got)
	}
	if strings.Contains(got, "+") {
		t.Errorf("spaces must be percent-encoded, not plus-encoded: %q", got)
	}
	if !strings.Contains(got, "subject=ABC%20log%20summary") {
		t.Errorf("subject not encoded as expected: %q", got)
	}
	if !strings.Contains(got, "body=line%20one%0Aline%20two") {
		t.Errorf("body not encoded as expected: %q", got)
	}
}
