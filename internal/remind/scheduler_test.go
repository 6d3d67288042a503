package remind

import (
	"sort"
	"testing"
	"time"

	"abctrack/internal/domain/models"
)

func TestDueNow(t *testing.T) {
	settings := map[string]models.ReminderSettings{
		"due-1":       {Enabled: true, TimeOfDay: "19:30"},
		"due-2":       {Enabled: true, TimeOfDay: "19:30", Email: "a@example.com"},
		"other-time":  {Enabled: true, TimeOfDay: "08:00"},
		"disabled":    {Enabled: false, TimeOfDay: "19:30"},
		"unconfigured": {},
	}

	now := time.Date(2025, 3, 12, 19, 30, 45, 0, time.UTC)

	due := DueNow(settings, now)
	sort.Strings(due)

	want := []string{"due-1", "due-2"}
	if len(due) != len(want) {
		t.Fatalf("DueNow() = %v, want %v", due, want)
	}
	for i := range want {
		if due[i] != want[i] {
			t.Errorf("DueNow() = %v, want %v", due, want)
			break
		}
	}
}

func TestDueNowEmpty(t *testing.T) {
	if due := DueNow(nil, time.Now()); due != nil {
		t.Errorf("DueNow(nil) = %v, want nil", due)
	}
}
