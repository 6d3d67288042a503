package services

import (
	"context"
	"time"

	"abctrack/internal/domain/models"
	"abctrack/internal/export"
	"abctrack/internal/streak"
)

// AppendLogRequest is one completed questionnaire pass. Timestamp is the
// caregiver-entered event time; zero means now.
type AppendLogRequest struct {
	Responses map[string]models.Response `json:"responses"`
	Timestamp time.Time                  `json:"timestamp"`
}

// AppendLogResult reports the stored entry and the partition it landed in.
type AppendLogResult struct {
	Entry     models.LogEntry  `json:"entry"`
	Sentiment models.Sentiment `json:"sentiment"`
}

// ProgressView is the derived streak and weekly completion state.
type ProgressView struct {
	Streak int             `json:"streak"`
	Week   streak.WeekView `json:"week"`
}

// ExportRequest selects entries for a summary and optionally a recipient for
// server-side delivery.
type ExportRequest struct {
	ChildID   string `json:"child_id"`
	Range     string `json:"range"`
	Recipient string `json:"recipient"`
}

// ExportResult carries the summary text, the compose URL for the client, and
// whether a server-side email went out.
type ExportResult struct {
	Summary   string `json:"summary"`
	MailtoURL string `json:"mailto_url"`
	EmailSent bool   `json:"email_sent"`
}

// LogService defines operations over a child's completed logs.
type LogService interface {
	// AppendLog classifies the pass by its primary behavior answer and
	// appends it to the matching sentiment partition.
	AppendLog(ctx context.Context, userID, childID string, req *AppendLogRequest) (*AppendLogResult, error)

	// Progress derives the streak and weekly view from the unioned logs.
	Progress(ctx context.Context, userID, childID string) (*ProgressView, error)

	// EntriesInRange lists log entries within a named range, oldest first.
	EntriesInRange(ctx context.Context, userID, childID string, r export.Range) ([]models.LogEntry, error)
}

// ExportService builds and optionally delivers summaries.
type ExportService interface {
	Export(ctx context.Context, userID string, req *ExportRequest) (*ExportResult, error)
}
