package store

import (
	"context"

	"abctrack/internal/domain/models"
)

// AddCustomOption attaches a caregiver-defined answer choice ("pin") to a
// question id on one child's record. Duplicate labels are overwritten in
// place rather than appended twice.
func (s *RecordStore) AddCustomOption(ctx context.Context, userID, id, questionID string, option models.CustomOption) (*models.ChildRecord, error) {
	return s.Mutate(ctx, userID, id, func(record *models.ChildRecord) error {
		if record.CustomOptions == nil {
			record.CustomOptions = make(map[string][]models.CustomOption)
		}
		existing := record.CustomOptions[questionID]
		for i, opt := range existing {
			if opt.Label == option.Label {
				existing[i] = option
				return nil
			}
		}
		record.CustomOptions[questionID] = append(existing, option)
		return nil
	})
}

// RemoveCustomOption removes a pin by label. Removing an absent label is a
// no-op.
func (s *RecordStore) RemoveCustomOption(ctx context.Context, userID, id, questionID, label string) (*models.ChildRecord, error) {
	return s.Mutate(ctx, userID, id, func(record *models.ChildRecord) error {
		existing := record.CustomOptions[questionID]
		filtered := existing[:0]
		for _, opt := range existing {
			if opt.Label != label {
				filtered = append(filtered, opt)
			}
		}
		if len(filtered) == 0 {
			delete(record.CustomOptions, questionID)
			return nil
		}
		record.CustomOptions[questionID] = filtered
		return nil
	})
}
