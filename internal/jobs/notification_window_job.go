package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const notificationWindowSchedule = "@every 1m"

// WindowRefresher pushes a refresh to recipients whose notifications were seen in [from, to).
type WindowRefresher interface {
	RefreshSeenBetween(ctx context.Context, from, to time.Time) (int, error)
}

// NotificationWindowJob refreshes notification channels once a seen notification
// leaves the visibility window. Each run covers the minute that just expired.
type NotificationWindowJob struct {
	refresher WindowRefresher
	window    time.Duration
	interval  time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
	now       func() time.Time
}

func NewNotificationWindowJob(refresher WindowRefresher, window time.Duration, logger *slog.Logger) *NotificationWindowJob {
	return &NotificationWindowJob{
		refresher: refresher,
		window:    window,
		interval:  time.Minute,
		cron:      cron.New(),
		logger:    logger.With("component", "notification_window_job"),
		now:       time.Now,
	}
}

// Start schedules the job to run every minute.
func (j *NotificationWindowJob) Start() error {
	if _, err := j.cron.AddFunc(notificationWindowSchedule, func() {
		j.Run(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification window job started", "window", j.window.String())
	return nil
}

// Run performs one refresh pass. Errors are logged; the next tick retries the next minute.
func (j *NotificationWindowJob) Run(ctx context.Context) {
	to := j.now().Add(-j.window)
	from := to.Add(-j.interval)

	refreshed, err := j.refresher.RefreshSeenBetween(ctx, from, to)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification window job failed", "error", err)
		return
	}
	if refreshed > 0 {
		j.logger.DebugContext(ctx, "Notification channels refreshed", "recipients", refreshed)
	}
}

// Stop waits for a running pass to finish.
func (j *NotificationWindowJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification window job stopped")
}
