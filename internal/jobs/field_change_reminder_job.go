package jobs

import (
	"context"
	"log/slog"
	"time"

	"procurement/internal/core/application/notifications"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// PendingFieldChangesReader is implemented by queries.GetPendingFieldChangesQueryHandler.
type PendingFieldChangesReader interface {
	Handle(ctx context.Context, query queries.GetPendingFieldChangesQuery) ([]queries.PendingFieldChange, error)
}

// Notifier is implemented by *notifications.Notifier.
type Notifier interface {
	Notify(ctx context.Context, notifications ...ports.Notification) int
}

// FieldChangeReminderJob re-notifies the approver group about field change
// requests that have been pending for at least minAge. It never resolves or
// expires a request.
type FieldChangeReminderJob struct {
	reader   PendingFieldChangesReader
	composer notifications.Composer
	notifier Notifier
	schedule string
	minAge   time.Duration
	clock    func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewFieldChangeReminderJob creates the job. schedule is a six-field cron
// expression (seconds first); a nil clock means time.Now.
func NewFieldChangeReminderJob(
	reader PendingFieldChangesReader,
	notifier Notifier,
	schedule string,
	minAge time.Duration,
	clock func() time.Time,
	logger *slog.Logger,
) *FieldChangeReminderJob {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FieldChangeReminderJob{
		reader:   reader,
		composer: notifications.NewComposer(),
		notifier: notifier,
		schedule: schedule,
		minAge:   minAge,
		clock:    clock,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "field_change_reminder_job"),
	}
}

// Start registers the job with its schedule and starts the scheduler.
func (j *FieldChangeReminderJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Field change reminder job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Field change reminder job started",
		"schedule", j.schedule, "min_age", j.minAge.String())
	return nil
}

// RunOnce sends one reminder per request pending since before now-minAge and
// returns how many were handed to the dispatcher.
func (j *FieldChangeReminderJob) RunOnce(ctx context.Context) (int, error) {
	now := j.clock()

	pending, err := j.reader.Handle(ctx, queries.NewGetPendingFieldChangesQuery(now.Add(-j.minAge)))
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	reminders := make([]ports.Notification, 0, len(pending))
	for _, p := range pending {
		reminders = append(reminders, j.composer.Reminder(p, now))
	}

	sent := j.notifier.Notify(ctx, reminders...)
	j.logger.InfoContext(ctx, "Field change reminders sent", "pending", len(pending), "sent", sent)
	return sent, nil
}

// Stop stops the scheduler and waits for a running reminder pass to finish.
func (j *FieldChangeReminderJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Field change reminder job stopped")
}
