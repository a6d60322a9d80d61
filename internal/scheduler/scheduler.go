// Package scheduler periodically scans for tasks approaching or past
// their due date and publishes one reminder event per match.
package scheduler

import (
	"context"
	"time"

	"taskdeck/internal/models"
	"taskdeck/internal/queue"
	"taskdeck/internal/views"
	"taskdeck/pkg/logger"
)

// TaskSource is the slice of the store the scheduler needs.
type TaskSource interface {
	ListTasksDueBy(ctx context.Context, before time.Time) ([]models.Task, error)
}

// Scheduler runs the due-date scan loop.
type Scheduler struct {
	source      TaskSource
	publisher   queue.ReminderPublisher
	interval    time.Duration
	horizonDays int
}

// New returns a Scheduler scanning every interval with the given
// due-soon horizon.
func New(source TaskSource, publisher queue.ReminderPublisher, interval time.Duration, horizonDays int) *Scheduler {
	if horizonDays <= 0 {
		horizonDays = views.DefaultDueSoonHorizonDays
	}
	return &Scheduler{source: source, publisher: publisher, interval: interval, horizonDays: horizonDays}
}

// Run blocks until the context is done, scanning once per interval.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	logger.Info(ctx, "Reminder scheduler started", "interval", s.interval.String(), "horizon_days", s.horizonDays)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Scan(ctx); err != nil {
				logger.Error(ctx, "Reminder scan failed", "error", err)
			}
		}
	}
}

// Scan fetches candidate tasks and publishes a reminder for each task
// that is overdue or due within the horizon. The clock is read once so
// the whole pass agrees on "now".
func (s *Scheduler) Scan(ctx context.Context) error {
	now := time.Now()
	horizon := now.AddDate(0, 0, s.horizonDays)
	tasks, err := s.source.ListTasksDueBy(ctx, horizon)
	if err != nil {
		return err
	}
	var published int
	for _, t := range tasks {
		if t.DueDate == nil || t.Completed {
			continue
		}
		overdue := views.IsOverdue(*t.DueDate, now)
		if !overdue && !views.IsDueSoon(*t.DueDate, now, s.horizonDays) {
			continue
		}
		ev := &models.ReminderEvent{
			TaskID:      t.ID,
			TodoID:      t.TodoID,
			Title:       t.Title,
			DueDate:     *t.DueDate,
			Overdue:     overdue,
			RequestedAt: now,
		}
		if err := s.publisher.PublishReminder(ctx, ev); err != nil {
			logger.Error(ctx, "Reminder publish failed", "error", err, "task_id", t.ID)
			continue
		}
		published++
	}
	if published > 0 {
		logger.Debug(ctx, "Reminder scan complete", "published", published, "candidates", len(tasks))
	}
	return nil
}
