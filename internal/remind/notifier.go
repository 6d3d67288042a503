package remind

import (
	"context"
	"log/slog"

	"abctrack/internal/domain/models"
	"abctrack/internal/export"
)

// EmailNotifier delivers reminders through the export mailer. Caregivers
// without an email on their settings, or deployments without SES, fall back
// to a log line so the tick never errors on configuration.
type EmailNotifier struct {
	mailer *export.Mailer
	logger *slog.Logger
}

// NewEmailNotifier creates an email-backed notifier.
func NewEmailNotifier(mailer *export.Mailer, logger *slog.Logger) *EmailNotifier {
	return &EmailNotifier{mailer: mailer, logger: logger}
}

func (n *EmailNotifier) Notify(ctx context.Context, userID string, settings models.ReminderSettings) error {
	if settings.Email == "" || !n.mailer.Enabled() {
		n.logger.Info("reminder due", "user_id", userID)
		return nil
	}

	_, err := n.mailer.Send(ctx, settings.Email,
		"Time to log today's moments",
		"A quick reminder to log how today went. A minute now keeps the streak alive.",
	)
	return err
}
