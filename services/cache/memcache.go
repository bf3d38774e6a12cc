package cache

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// keyPrefix namespaces this worker's keys on shared memcache clusters.
const keyPrefix = "pricescout:"

// MemcacheService implements CacheService using memcache. It backs the
// fetcher's host block keys, so entries are small and short-lived.
type MemcacheService struct {
	client *memcache.Client
}

// NewMemcacheService creates a new memcache service
func NewMemcacheService(serverAddr string) *MemcacheService {
	return &MemcacheService{
		client: memcache.New(serverAddr),
	}
}

// Get retrieves a value from memcache
func (m *MemcacheService) Get(key string) ([]byte, error) {
	item, err := m.client.Get(keyPrefix + key)
	if err != nil {
		return nil, err
	}
	return item.Value, nil
}

// Set stores a value in memcache with an expiration time
func (m *MemcacheService) Set(key string, value []byte, expiration time.Duration) error {
	return m.client.Set(&memcache.Item{
		Key:        keyPrefix + key,
		Value:      value,
		Expiration: int32(expiration.Seconds()),
	})
}

// Delete removes a value from memcache
func (m *MemcacheService) Delete(key string) error {
	return m.client.Delete(keyPrefix + key)
}
