package jobs

import (
	"fmt"
	"log/slog"

	"marketplace/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	notificationDispatchJob *NotificationDispatchJob
}

// NewJobManager creates a job manager with the notification dispatch job.
func NewJobManager(
	source NotificationSource,
	publisher ports.NotificationPublisher,
	dispatchSpec string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		notificationDispatchJob: NewNotificationDispatchJob(source, publisher, dispatchSpec, DefaultDispatchBatch, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification dispatch job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.notificationDispatchJob.Stop()
}
