package store

import (
	"context"
	"encoding/json"
	"strings"

	"abctrack/internal/domain"
	"abctrack/internal/domain/models"
)

// ReminderSettings reads the caregiver's persisted daily-reminder settings.
// An unset key means reminders were never configured: disabled, no time.
func (s *RecordStore) ReminderSettings(ctx context.Context, userID string) (models.ReminderSettings, error) {
	var settings models.ReminderSettings
	raw, ok, err := s.kv.Get(ctx, userKey(userID, keyReminderSettings))
	if err != nil {
		return settings, err
	}
	if !ok {
		return settings, nil
	}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return settings, &domain.CorruptedRecordError{Key: keyReminderSettings, Reason: err.Error()}
	}
	return settings, nil
}

// SetReminderSettings overwrites the reminder settings. The scheduler reads
// current settings on every tick, so this is all rescheduling amounts to.
func (s *RecordStore) SetReminderSettings(ctx context.Context, userID string, settings models.ReminderSettings) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return &domain.StorageError{Op: "set", Key: keyReminderSettings, Err: err}
	}
	return s.kv.Set(ctx, userKey(userID, keyReminderSettings), string(payload))
}

// AllReminderSettings enumerates every caregiver's reminder settings, keyed
// by user id. The reminder scheduler calls this on each tick.
func (s *RecordStore) AllReminderSettings(ctx context.Context) (map[string]models.ReminderSettings, error) {
	keys, err := s.kv.GetAllKeys(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[string]models.ReminderSettings)
	for _, k := range keys {
		if !strings.HasPrefix(k, "u:") || !strings.HasSuffix(k, ":"+keyReminderSettings) {
			continue
		}
		userID := strings.TrimSuffix(strings.TrimPrefix(k, "u:"), ":"+keyReminderSettings)
		raw, ok, err := s.kv.Get(ctx, k)
		if err != nil || !ok {
			continue
		}
		var settings models.ReminderSettings
		if err := json.Unmarshal([]byte(raw), &settings); err != nil {
			s.logger.Warn("skipping corrupted reminder settings", "key", k)
			continue
		}
		result[userID] = settings
	}
	return result, nil
}

// OnboardingCompleted reads the per-caregiver onboarding flag.
func (s *RecordStore) OnboardingCompleted(ctx context.Context, userID string) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, userKey(userID, keyOnboarding))
	if err != nil {
		return false, err
	}
	return ok && raw == "true", nil
}

// SetOnboardingCompleted writes the onboarding flag.
func (s *RecordStore) SetOnboardingCompleted(ctx context.Context, userID string, done bool) error {
	value := "false"
	if done {
		value = "true"
	}
	return s.kv.Set(ctx, userKey(userID, keyOnboarding), value)
}
