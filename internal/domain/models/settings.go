package models

// ReminderSettings is the persisted daily-reminder configuration for one
// caregiver. TimeOfDay is "HH:MM" in the caregiver's local time; changing it
// takes effect on the scheduler's next tick.
type ReminderSettings struct {
	Enabled   bool   `json:"enabled"`
	TimeOfDay string `json:"time_of_day"`
	Email     string `json:"email,omitempty"`
}
