package cache

import (
	"bytes"
	"encoding/gob"
	"io/ioutil"
	"os"
	"sync"
	"time"

	"github.com/mediashelf/mediashelf/pkg/util"
)

// DefaultCacheFile file used to persist the memo store across restarts
const DefaultCacheFile = "cache_persist.bin"

// MemoStore in-memory cache store
type MemoStore struct {
	Store *sync.Map
}

// item with expiration timestamp
type itemWithTTL struct {
	Expires int64
	Value   interface{}
}

// newItem wraps a value with its expiration. ttl in seconds, 0 means
// the item never expires.
func newItem(value interface{}, expires int) itemWithTTL {
	expires64 := int64(expires)
	if expires > 0 {
		expires64 = time.Now().Unix() + expires64
	}
	return itemWithTTL{
		Value:   value,
		Expires: expires64,
	}
}

// getValue unwraps a stored item, reporting whether it is still valid
func getValue(item interface{}, ok bool) (interface{}, bool) {
	if !ok {
		return nil, ok
	}

	var itemObj itemWithTTL
	if itemObj, ok = item.(itemWithTTL); !ok {
		return item, true
	}

	if itemObj.Expires > 0 && itemObj.Expires < time.Now().Unix() {
		return nil, false
	}

	return itemObj.Value, ok
}

// GarbageCollect removes expired items
func (store *MemoStore) GarbageCollect() int {
	collected := 0
	store.Store.Range(func(key, value interface{}) bool {
		if item, ok := value.(itemWithTTL); ok {
			if item.Expires > 0 && item.Expires < time.Now().Unix() {
				store.Store.Delete(key)
				collected++
			}
		}
		return true
	})
	return collected
}

// NewMemoStore creates a new in-memory store
func NewMemoStore() *MemoStore {
	return &MemoStore{
		Store: &sync.Map{},
	}
}

// Persist writes every live item to the given file
func (store *MemoStore) Persist(path string) error {
	items := make(map[string]itemWithTTL)
	store.Store.Range(func(key, value interface{}) bool {
		name, keyOK := key.(string)
		item, valueOK := value.(itemWithTTL)
		if keyOK && valueOK {
			items[name] = item
		}
		return true
	})

	var buffer bytes.Buffer
	if err := gob.NewEncoder(&buffer).Encode(items); err != nil {
		return err
	}
	return ioutil.WriteFile(path, buffer.Bytes(), 0644)
}

// Restore loads persisted items from the given file, dropping expired
// ones. The file is removed after a successful load.
func (store *MemoStore) Restore(path string) error {
	if !util.Exists(path) {
		return nil
	}

	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}

	items := make(map[string]itemWithTTL)
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&items); err != nil {
		return err
	}

	loaded := 0
	for key, item := range items {
		if item.Expires > 0 && item.Expires < time.Now().Unix() {
			continue
		}
		store.Store.Store(key, item)
		loaded++
	}
	util.Log().Info("Restored %d cache entries from %q.", loaded, path)

	return os.Remove(path)
}

// Set stores a value
func (store *MemoStore) Set(key string, value interface{}, ttl int) error {
	store.Store.Store(key, newItem(value, ttl))
	return nil
}

// Get fetches a value
func (store *MemoStore) Get(key string) (interface{}, bool) {
	return getValue(store.Store.Load(key))
}

// Gets fetches values in batch
func (store *MemoStore) Gets(keys []string, prefix string) (map[string]interface{}, []string) {
	var res = make(map[string]interface{})
	var notFound = make([]string, 0, len(keys))

	for _, key := range keys {
		if value, ok := getValue(store.Store.Load(prefix + key)); ok {
			res[key] = value
		} else {
			notFound = append(notFound, key)
		}
	}

	return res, notFound
}

// Sets stores values in batch
func (store *MemoStore) Sets(values map[string]interface{}, prefix string) error {
	for key, value := range values {
		store.Store.Store(prefix+key, newItem(value, 0))
	}
	return nil
}

// Delete removes values in batch
func (store *MemoStore) Delete(keys []string, prefix string) error {
	for _, key := range keys {
		store.Store.Delete(prefix + key)
	}
	return nil
}
