package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DefaultDispatchSpec runs the dispatch every second.
const DefaultDispatchSpec = "* * * * * *"

// DefaultDispatchBatch is the largest batch handed to the publisher per run.
const DefaultDispatchBatch = 100

// NotificationSource yields pending notifications without blocking.
type NotificationSource interface {
	Drain(limit int) []ports.Notification
}

// NotificationDispatchJob periodically moves notifications from the outbox to
// the publisher. A failed batch is dropped after logging; notifications are
// best effort.
type NotificationDispatchJob struct {
	source    NotificationSource
	publisher ports.NotificationPublisher
	spec      string
	batch     int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewNotificationDispatchJob creates the job. An empty spec falls back to
// DefaultDispatchSpec and a batch below one to DefaultDispatchBatch.
func NewNotificationDispatchJob(
	source NotificationSource,
	publisher ports.NotificationPublisher,
	spec string,
	batch int,
	logger *slog.Logger,
) *NotificationDispatchJob {
	if spec == "" {
		spec = DefaultDispatchSpec
	}
	if batch < 1 {
		batch = DefaultDispatchBatch
	}
	return &NotificationDispatchJob{
		source:    source,
		publisher: publisher,
		spec:      spec,
		batch:     batch,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "notification_dispatch_job"),
	}
}

// Start schedules the dispatch.
func (j *NotificationDispatchJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		j.Dispatch(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification dispatch job started", "spec", j.spec)
	return nil
}

// Stop waits for a running dispatch to finish, then flushes what is left.
func (j *NotificationDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.Dispatch(context.Background())
	j.logger.InfoContext(context.Background(), "Notification dispatch job stopped")
}

// Dispatch publishes queued notifications batch by batch until the source is
// empty or a publish fails. It returns how many were published.
func (j *NotificationDispatchJob) Dispatch(ctx context.Context) int {
	published := 0
	for {
		batch := j.source.Drain(j.batch)
		if len(batch) == 0 {
			return published
		}

		if err := j.publisher.Publish(ctx, batch); err != nil {
			j.logger.ErrorContext(ctx, "Notification publish failed", "dropped", len(batch), "error", err)
			return published
		}
		published += len(batch)

		if len(batch) < j.batch {
			return published
		}
	}
}
