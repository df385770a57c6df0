// Package bootstrap wires the application together at startup
package bootstrap

import (
	"github.com/gin-gonic/gin"
	model "github.com/mediashelf/mediashelf/models"
	"github.com/mediashelf/mediashelf/pkg/cache"
	"github.com/mediashelf/mediashelf/pkg/conf"
	"github.com/mediashelf/mediashelf/pkg/crontab"
	"github.com/mediashelf/mediashelf/pkg/organizer"
	"github.com/mediashelf/mediashelf/pkg/util"
)

// Init initializes every subsystem in dependency order
func Init(path string) {
	conf.Init(path)

	// Switch to production mode unless debugging
	if !conf.SystemConfig.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	util.BuildLogger(conf.SystemConfig.LogLevel)
	cache.Init()
	cache.Restore(cache.DefaultCacheFile)
	model.Init()
	organizer.Init()
	crontab.Init()
}
