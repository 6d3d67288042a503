package store

import (
	"context"
	"encoding/json"

	"abctrack/internal/domain/models"
)

// PurgeCorrupted deletes this caregiver's keys whose stored values fail to
// parse as a child document. It is the only code path that removes data on
// behalf of a read failure: LoadChild and ListChildren surface or skip
// corrupted records but never delete them.
func (s *RecordStore) PurgeCorrupted(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.childKeys(ctx, userID)
	if err != nil {
		return nil, err
	}

	var purged []string
	for _, id := range ids {
		key := userKey(userID, id)
		raw, ok, err := s.kv.Get(ctx, key)
		if err != nil || !ok {
			continue
		}
		var record models.ChildRecord
		if json.Unmarshal([]byte(raw), &record) == nil {
			continue
		}
		if err := s.kv.Remove(ctx, key); err != nil {
			return purged, err
		}
		s.logger.Warn("purged corrupted record", "key", id, "user_id", userID)
		purged = append(purged, id)
	}
	return purged, nil
}
