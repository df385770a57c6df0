// Package crontab runs the scheduled maintenance jobs
package crontab

import (
	"context"

	"github.com/mediashelf/mediashelf/pkg/cache"
	"github.com/mediashelf/mediashelf/pkg/conf"
	"github.com/mediashelf/mediashelf/pkg/organizer"
	"github.com/mediashelf/mediashelf/pkg/util"
	"github.com/robfig/cron/v3"
)

// Cron the scheduled job runner
var Cron *cron.Cron

// Init starts the scheduled jobs using the expressions from the
// configuration file
func Init() {
	util.Log().Info("Initializing crontab jobs...")
	Cron = cron.New()

	if _, err := Cron.AddFunc(conf.CronConfig.Remediate, remediate); err != nil {
		util.Log().Panic("Failed to schedule remediation job: %s", err)
	}
	if _, err := Cron.AddFunc(conf.CronConfig.GarbageCollect, garbageCollect); err != nil {
		util.Log().Panic("Failed to schedule garbage collection job: %s", err)
	}

	Cron.Start()
}

// Stop halts the job runner, running jobs finish first
func Stop() {
	if Cron != nil {
		Cron.Stop()
	}
}

// remediate sweeps attachments without any folder into Unassigned
func remediate() {
	assigned, err := organizer.EnsureAllAssigned(context.Background())
	if err != nil {
		util.Log().Warning("Remediation sweep failed: %s", err)
		return
	}
	if assigned > 0 {
		util.Log().Info("Remediation sweep assigned %d orphaned attachment(s) to Unassigned.", assigned)
	}
	util.Log().Info("Crontab job \"remediate\" complete.")
}

// garbageCollect drops expired entries from the in-memory cache
func garbageCollect() {
	if store, ok := cache.Store.(*cache.MemoStore); ok {
		collected := store.GarbageCollect()
		if collected > 0 {
			util.Log().Debug("Collected %d expired cache entries.", collected)
		}
	}
	util.Log().Info("Crontab job \"cache garbage collect\" complete.")
}
