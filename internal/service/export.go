package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"abctrack/internal/domain"
	"abctrack/internal/domain/services"
	"abctrack/internal/export"
	"abctrack/internal/store"
)

// exportService builds summaries and optionally delivers them by email.
type exportService struct {
	store  *store.RecordStore
	mailer *export.Mailer
	logger *slog.Logger
	now    func() time.Time
}

// NewExportService creates a new export service.
func NewExportService(recordStore *store.RecordStore, mailer *export.Mailer, logger *slog.Logger) services.ExportService {
	return &exportService{
		store:  recordStore,
		mailer: mailer,
		logger: logger,
		now:    time.Now,
	}
}

func (s *exportService) Export(ctx context.Context, userID string, req *services.ExportRequest) (*services.ExportResult, error) {
	if req.ChildID == "" {
		return nil, fmt.Errorf("%w: child_id is required", domain.ErrValidation)
	}
	r, err := export.ParseRange(req.Range)
	if err != nil {
		return nil, err
	}

	record, err := s.store.LoadChild(ctx, userID, req.ChildID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	summary := export.BuildSummary(record, r, now)
	subject := fmt.Sprintf("ABC log summary for %s", record.ChildNameCapitalized)

	result := &services.ExportResult{
		Summary:   summary,
		MailtoURL: export.MailtoURL(req.Recipient, subject, summary),
	}

	if req.Recipient != "" && s.mailer.Enabled() {
		sent, err := s.mailer.Send(ctx, req.Recipient, subject, summary)
		if err != nil {
			// Delivery failure still leaves the client the mailto path.
			s.logger.Error("summary email failed", "error", err, "user_id", userID)
		}
		result.EmailSent = sent && err == nil
	}

	s.logger.Info("summary exported",
		"child_id", req.ChildID,
		"range", req.Range,
		"email_sent", result.EmailSent,
		"user_id", userID,
	)
	return result, nil
}
