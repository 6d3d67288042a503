package store

import (
	"context"
	"encoding/json"
	"errors"

	"abctrack/internal/domain"
	"abctrack/internal/domain/models"
)

// Selected returns the current selection pointer, or nil when none is set.
// This is a pure read; defaulting lives in EnsureSelection so queries never
// write.
func (s *RecordStore) Selected(ctx context.Context, userID string) (*models.SelectedChild, error) {
	raw, ok, err := s.kv.Get(ctx, userKey(userID, keySelectedChild))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var sel models.SelectedChild
	if err := json.Unmarshal([]byte(raw), &sel); err != nil {
		return nil, &domain.CorruptedRecordError{Key: keySelectedChild, Reason: err.Error()}
	}
	return &sel, nil
}

// SetSelected overwrites the selection pointer.
func (s *RecordStore) SetSelected(ctx context.Context, userID string, sel models.SelectedChild) error {
	payload, err := json.Marshal(sel)
	if err != nil {
		return &domain.StorageError{Op: "set", Key: keySelectedChild, Err: err}
	}
	if err := s.kv.Set(ctx, userKey(userID, keySelectedChild), string(payload)); err != nil {
		return err
	}
	s.logger.Info("selection updated", "child_id", sel.ID, "user_id", userID)
	return nil
}

// EnsureSelection is the explicit command invoked at client startup (and
// after deletes): when no valid selection exists and the caregiver has at
// least one child, the first enumerated child becomes selected and is
// persisted. Returns the effective selection, nil when there are no children.
func (s *RecordStore) EnsureSelection(ctx context.Context, userID string) (*models.SelectedChild, error) {
	sel, err := s.Selected(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrCorrupted) {
		return nil, err
	}

	records, ids, listErr := s.ListChildren(ctx, userID)
	if listErr != nil {
		return nil, listErr
	}

	// A pointer at a soft-deleted or vanished child is dangling.
	if sel != nil {
		for _, id := range ids {
			if id == sel.ID {
				return sel, nil
			}
		}
	}

	if len(records) == 0 {
		return nil, nil
	}

	next := models.SelectedChild{
		ID:        ids[0],
		ChildUUID: records[0].ChildUUID,
		ChildName: records[0].ChildName,
	}
	if err := s.SetSelected(ctx, userID, next); err != nil {
		return nil, err
	}
	return &next, nil
}
