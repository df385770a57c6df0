package cache

import (
	"github.com/gin-gonic/gin"
	"github.com/mediashelf/mediashelf/pkg/conf"
	"github.com/mediashelf/mediashelf/pkg/util"
)

// Store the default cache store
var Store Driver = NewMemoStore()

// Init initializes the cache store. Redis is used when configured and
// not running under test.
func Init() {
	if conf.RedisConfig.Server != "" && gin.Mode() != gin.TestMode {
		Store = NewRedisStore(
			10,
			conf.RedisConfig.Network,
			conf.RedisConfig.Server,
			conf.RedisConfig.Password,
			conf.RedisConfig.DB,
		)
		util.Log().Info("Connected to Redis server %q.", conf.RedisConfig.Server)
	}
}

// Driver key-value cache storage
type Driver interface {
	// Set stores a value, ttl is the expiration in seconds, 0 means no expiration
	Set(key string, value interface{}, ttl int) error

	// Get fetches a value, reporting whether it was found
	Get(key string) (interface{}, bool)

	// Gets fetches values in batch, returning found values and missed keys
	Gets(keys []string, prefix string) (map[string]interface{}, []string)

	// Sets stores values in batch, all keys are prefixed with prefix
	Sets(values map[string]interface{}, prefix string) error

	// Delete removes values in batch, all keys are prefixed with prefix
	Delete(keys []string, prefix string) error
}

// Set stores a value in the default store
func Set(key string, value interface{}, ttl int) error {
	return Store.Set(key, value, ttl)
}

// Get fetches a value from the default store
func Get(key string) (interface{}, bool) {
	return Store.Get(key)
}

// Deletes removes values in batch from the default store
func Deletes(keys []string, prefix string) error {
	return Store.Delete(keys, prefix)
}

// Restore loads persisted items when the default store is memory-backed
func Restore(path string) {
	if store, ok := Store.(*MemoStore); ok {
		if err := store.Restore(path); err != nil {
			util.Log().Warning("Failed to restore cache from %q: %s", path, err)
		}
	}
}

// Persist writes the default store to disk when it is memory-backed
func Persist(path string) {
	if store, ok := Store.(*MemoStore); ok {
		if err := store.Persist(path); err != nil {
			util.Log().Warning("Failed to persist cache to %q: %s", path, err)
		}
	}
}
