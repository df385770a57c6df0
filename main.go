package main

import (
	"flag"

	"github.com/mediashelf/mediashelf/bootstrap"
	"github.com/mediashelf/mediashelf/pkg/cache"
	"github.com/mediashelf/mediashelf/pkg/conf"
	"github.com/mediashelf/mediashelf/pkg/crontab"
	"github.com/mediashelf/mediashelf/pkg/organizer"
	"github.com/mediashelf/mediashelf/pkg/util"
	"github.com/mediashelf/mediashelf/routers"
)

var confPath string

func init() {
	flag.StringVar(&confPath, "c", "conf.ini", "Path to the config file")
	flag.Parse()
	bootstrap.Init(confPath)
}

func main() {
	api := routers.InitRouter()

	defer func() {
		crontab.Stop()
		organizer.StopPendingRecount()
		cache.Persist(cache.DefaultCacheFile)
	}()

	util.Log().Info("Listening on %q.", conf.SystemConfig.Listen)
	if err := api.Run(conf.SystemConfig.Listen); err != nil {
		util.Log().Error("Failed to listen on %q: %s", conf.SystemConfig.Listen, err)
	}
}
