// Package jobs runs the service's periodic background work on
// github.com/robfig/cron/v3 schedules.
//
// Each job owns its own cron.Cron built with cron.WithSeconds, so schedules take six
// fields with seconds first: "*/5 * * * * *" fires every five seconds. A job wraps a
// command handler from the application layer behind a one-method interface
// (AutoAssigner, OutboxPublisher), which keeps the jobs testable with plain mocks.
//
// # Available Jobs
//
//  1. AutoAssignJob hands the oldest paid pending-pickup parcel to an approved,
//     available rider from the sender's district. Only districts that currently have
//     a free rider are searched, so a parcel from an unserved district never blocks
//     the queue. Disabled unless AUTO_ASSIGN_ENABLED is set; the schedule comes from
//     AUTO_ASSIGN_SCHEDULE (default "*/5 * * * * *").
//  2. OutboxPublisherJob sends committed tracking events to Kafka in batches of
//     OUTBOX_BATCH_SIZE on OUTBOX_SCHEDULE (default "*/2 * * * * *"). Delivery is at
//     least once; a message that keeps failing is parked after OUTBOX_MAX_ATTEMPTS.
//
// # Usage
//
// JobManager starts and stops the enabled jobs as a group:
//
//	manager := jobs.NewJobManager(
//		jobs.NewOutboxPublisherJob(publishHandler, "*/2 * * * * *", 100, logger),
//		jobs.NewAutoAssignJob(autoAssignHandler, "*/5 * * * * *", logger),
//	)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// A single tick can also be driven directly, which is how the tests exercise a job:
//
//	jobs.NewAutoAssignJob(handler, "@every 1s", logger).Run(ctx)
//
// # Overlap
//
// A tick that is still running when the next one fires is skipped
// (cron.SkipIfStillRunning), so a slow broker or database never stacks up concurrent
// runs inside one process. Across processes the row locks taken by the handlers
// (FOR UPDATE SKIP LOCKED) keep two replicas off the same parcel or message.
//
// # Error Handling
//
//   - StartAll rejects an unparsable schedule and stops the jobs it already started.
//   - AutoAssignJob treats "no parcel waiting" and "no rider free" as quiet outcomes
//     and logs every other failure.
//   - OutboxPublisherJob logs a failed batch and retries it on the next tick.
//   - StopAll stops jobs in reverse order and waits for in-flight ticks to return.
package jobs
