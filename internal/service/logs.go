package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"abctrack/internal/domain"
	"abctrack/internal/domain/models"
	"abctrack/internal/domain/services"
	"abctrack/internal/export"
	"abctrack/internal/flow"
	"abctrack/internal/store"
	"abctrack/internal/streak"
)

// primaryQuestionID is the flow step whose answer classifies the log.
const primaryQuestionID = "behavior"

// logService implements LogService: sentiment classification, append, and
// the derived progress views.
type logService struct {
	store  *store.RecordStore
	flows  *flow.Registry
	logger *slog.Logger
	now    func() time.Time
}

// NewLogService creates a new log service.
func NewLogService(recordStore *store.RecordStore, flows *flow.Registry, logger *slog.Logger) services.LogService {
	return &logService{
		store:  recordStore,
		flows:  flows,
		logger: logger,
		now:    time.Now,
	}
}

func (s *logService) AppendLog(ctx context.Context, userID, childID string, req *services.AppendLogRequest) (*services.AppendLogResult, error) {
	if len(req.Responses) == 0 {
		return nil, fmt.Errorf("%w: responses are required", domain.ErrValidation)
	}

	primary, ok := req.Responses[primaryQuestionID]
	if !ok || len(primary.Answers) == 0 {
		return nil, fmt.Errorf("%w: a behavior answer is required", domain.ErrValidation)
	}

	sentiment := s.flows.Classify(primary.Answers[0].Answer)

	eventTime := req.Timestamp
	if eventTime.IsZero() {
		eventTime = s.now()
	}

	entry, err := s.store.AppendLog(ctx, userID, childID, sentiment, req.Responses, eventTime)
	if err != nil {
		return nil, err
	}

	return &services.AppendLogResult{Entry: *entry, Sentiment: sentiment}, nil
}

func (s *logService) Progress(ctx context.Context, userID, childID string) (*services.ProgressView, error) {
	record, err := s.store.LoadChild(ctx, userID, childID)
	if err != nil {
		return nil, err
	}

	entries := record.CompletedLogs.All()
	now := s.now()
	return &services.ProgressView{
		Streak: streak.Streak(entries, now),
		Week:   streak.Week(entries, now),
	}, nil
}

func (s *logService) EntriesInRange(ctx context.Context, userID, childID string, r export.Range) ([]models.LogEntry, error) {
	record, err := s.store.LoadChild(ctx, userID, childID)
	if err != nil {
		return nil, err
	}
	return export.EntriesInRange(record, r, s.now()), nil
}
