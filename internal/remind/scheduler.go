// Package remind dispatches the daily logging reminder. A minute-resolution
// cron tick reads every caregiver's current reminder settings, so changing a
// time-of-day is just a settings write; nothing needs rescheduling.
package remind

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"abctrack/internal/domain/models"
)

// SettingsSource enumerates current reminder settings per caregiver.
type SettingsSource interface {
	AllReminderSettings(ctx context.Context) (map[string]models.ReminderSettings, error)
}

// Notifier delivers one reminder.
type Notifier interface {
	Notify(ctx context.Context, userID string, settings models.ReminderSettings) error
}

// Scheduler fires reminders whose time-of-day matches the current minute.
type Scheduler struct {
	source   SettingsSource
	notifier Notifier
	cron     *cron.Cron
	logger   *slog.Logger
	now      func() time.Time
}

// NewScheduler creates a reminder scheduler.
func NewScheduler(source SettingsSource, notifier Notifier, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		source:   source,
		notifier: notifier,
		cron:     cron.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// Start begins the minute tick.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("* * * * *", func() {
		s.tick()
	})
	if err != nil {
		return fmt.Errorf("add reminder job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("reminder scheduler started")
	return nil
}

// Stop stops the tick and waits for a running dispatch to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("reminder scheduler stopped")
}

// tick dispatches reminders for every enabled caregiver whose configured
// time-of-day equals the current minute.
func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	settings, err := s.source.AllReminderSettings(ctx)
	if err != nil {
		s.logger.Error("reminder settings read failed", "error", err)
		return
	}

	for _, userID := range DueNow(settings, s.now()) {
		if err := s.notifier.Notify(ctx, userID, settings[userID]); err != nil {
			s.logger.Error("reminder dispatch failed", "user_id", userID, "error", err)
			continue
		}
		s.logger.Info("reminder dispatched", "user_id", userID)
	}
}

// DueNow reports which caregivers a tick at now would remind. Split out so
// the matching rule is testable without cron.
func DueNow(settings map[string]models.ReminderSettings, now time.Time) []string {
	minute := now.Format("15:04")
	var due []string
	for userID, cfg := range settings {
		if cfg.Enabled && cfg.TimeOfDay == minute {
			due = append(due, userID)
		}
	}
	return due
}
