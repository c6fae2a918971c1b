// Package jobs provides scheduled background tasks, built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// NotificationWindowJob runs every minute. Seen notifications stay visible on a
// recipient's notification channel for a fixed window; the job finds recipients
// whose notifications crossed the end of that window during the last minute and
// publishes sendNotifications<id> so their open channels re-render.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(notifierService, 10*time.Minute, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed pass is logged and skipped. The next pass covers the next minute, so
// the channels of that minute's recipients refresh on their next push instead.
package jobs
