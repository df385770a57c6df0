package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/mediashelf/mediashelf/pkg/conf"
	"github.com/mediashelf/mediashelf/pkg/util"
)

// Store the session store
var Store memstore.Store

// Session initializes the session layer. Sessions live in Redis when
// configured and not running under test.
func Session(secret string) gin.HandlerFunc {
	if conf.RedisConfig.Server != "" && gin.Mode() != gin.TestMode {
		var err error
		Store, err = redis.NewStoreWithDB(10, conf.RedisConfig.Network, conf.RedisConfig.Server,
			conf.RedisConfig.Password, conf.RedisConfig.DB, []byte(secret))
		if err != nil {
			util.Log().Panic("Failed to connect to Redis: %s", err)
		}

		util.Log().Info("Connected to Redis server %q.", conf.RedisConfig.Server)
	} else {
		Store = memstore.NewStore([]byte(secret))
	}

	Store.Options(sessions.Options{HttpOnly: true, MaxAge: 7 * 86400, Path: "/"})
	return sessions.Sessions("mediashelf-session", Store)
}
