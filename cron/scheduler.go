package cron

import (
	"context"
	"log"
	"time"

	"churchapp/config"
	"churchapp/services/janitor"
	"churchapp/services/notification"

	cron "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Schedules, evaluated in the configured civil time zone.
const (
	dispatchSpec = "0 * * * *" // hourly push dispatch
	janitorSpec  = "0 3 * * *" // daily log retention sweep
)

// StartScheduler installs the hourly push dispatch and the daily log janitor
// on a cron running in the configured location, and starts it.
func StartScheduler(notifSvc notification.NotificationService, janitorSvc janitor.JanitorService) (*cron.Cron, error) {
	loc, err := time.LoadLocation(config.AppConfig.PushTimeZone)
	if err != nil {
		return nil, err
	}

	c := cron.New(cron.WithLocation(loc))

	if _, err := c.AddFunc(dispatchSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		now := time.Now().In(loc)
		logs, err := notifSvc.DispatchAt(ctx, now)
		if err != nil {
			zap.L().Sugar().Errorf("scheduler: push dispatch failed: %v", err)
			return
		}
		zap.L().Sugar().Infof("scheduler: push dispatch done, %d recipient(s)", len(logs))
	}); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc(janitorSpec, func() {
		if _, err := janitorSvc.Purge(time.Now().In(loc)); err != nil {
			zap.L().Sugar().Errorf("scheduler: log janitor failed: %v", err)
		}
	}); err != nil {
		return nil, err
	}

	c.Start()
	log.Printf("[Scheduler] cron started in %s", loc)
	return c, nil
}
