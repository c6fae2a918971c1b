package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	notificationWindowJob *NotificationWindowJob
}

func NewJobManager(refresher WindowRefresher, notificationWindow time.Duration, logger *slog.Logger) *JobManager {
	return &JobManager{
		notificationWindowJob: NewNotificationWindowJob(refresher, notificationWindow, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationWindowJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification window job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.notificationWindowJob.Stop()
}
