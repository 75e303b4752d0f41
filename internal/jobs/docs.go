// Package jobs provides scheduled background tasks for the procurement service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// FieldChangeReminderJob reminds the privileged approver group about field
// change requests that are still pending after a configured age. Pending
// requests never expire; the job only nudges.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	reminder := jobs.NewFieldChangeReminderJob(pendingHandler, notifier,
//		"0 0 */4 * * *", 24*time.Hour, nil, logger)
//	jobManager := jobs.NewJobManager(reminder)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use six fields with seconds first, e.g. "0 0 */4 * * *" runs
// every four hours on the hour.
//
// # Error Handling
//
// A failed query is logged and the next tick tries again. Dispatch failures
// are logged by the notifier and do not stop the remaining reminders.
package jobs
