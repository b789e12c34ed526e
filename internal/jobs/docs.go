// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// NotificationDispatchJob drains the notification outbox filled by the cancel
// and deliver command handlers and hands each batch to a publisher (Kafka, or
// the log when no broker is configured).
//
// # Usage
//
//	jobManager := jobs.NewJobManager(outbox, publisher, "* * * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// StopAll flushes whatever is still queued before returning.
package jobs
