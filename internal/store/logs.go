package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"abctrack/internal/domain/models"
)

// AppendLog appends a completed questionnaire pass to the sentiment
// partition of one child's document. eventTime is the caregiver-entered
// incident time so backfilled logs land on the right day. The append runs
// under the per-child write lock; arrays grow unbounded by design.
func (s *RecordStore) AppendLog(ctx context.Context, userID, id string, sentiment models.Sentiment, responses map[string]models.Response, eventTime time.Time) (*models.LogEntry, error) {
	entry := models.LogEntry{
		ID:        uuid.New().String(),
		Timestamp: eventTime,
		Responses: responses,
	}

	_, err := s.Mutate(ctx, userID, id, func(record *models.ChildRecord) error {
		record.CompletedLogs.Append(sentiment, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("log appended",
		"child_id", id,
		"user_id", userID,
		"sentiment", string(sentiment),
		"entry_id", entry.ID,
	)
	return &entry, nil
}

// ClearLogs resets both log arrays. The parent record, its name fields and
// custom options are untouched; there is no hard-delete path for children.
func (s *RecordStore) ClearLogs(ctx context.Context, userID, id string) error {
	_, err := s.Mutate(ctx, userID, id, func(record *models.ChildRecord) error {
		record.CompletedLogs = models.CompletedLogs{
			Positive: []models.LogEntry{},
			Negative: []models.LogEntry{},
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("logs cleared", "child_id", id, "user_id", userID)
	return nil
}
