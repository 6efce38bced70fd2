package memory

import (
	"sync"
	"time"

	"github.com/hkweather/backend/internal/domain"
)

// TTL is the freshness window shared by every slot in the cache
const TTL = 5 * time.Minute

// Cache implements domain.StationCache in process memory.
// It has no eviction: a stale cache simply reports misses until the next put.
type Cache struct {
	mu          sync.RWMutex
	stations    []domain.Station
	readings    map[int]domain.Reading
	lastUpdated time.Time

	now func() time.Time
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{
		readings: make(map[int]domain.Reading),
		now:      time.Now,
	}
}

// Fresh reports whether the cache was written less than TTL ago
func (c *Cache) Fresh() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.freshLocked()
}

func (c *Cache) freshLocked() bool {
	if c.lastUpdated.IsZero() {
		return false
	}
	return c.now().Sub(c.lastUpdated) < TTL
}

// Stations returns a copy of the cached station list
func (c *Cache) Stations() ([]domain.Station, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.freshLocked() || c.stations == nil {
		return nil, false
	}
	out := make([]domain.Station, len(c.stations))
	copy(out, c.stations)
	return out, true
}

// Reading returns the cached reading for a station
func (c *Cache) Reading(id int) (domain.Reading, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.freshLocked() {
		return domain.Reading{}, false
	}
	r, ok := c.readings[id]
	return r, ok
}

// PutStations replaces the station list and stamps the cache
func (c *Cache) PutStations(stations []domain.Station) {
	list := make([]domain.Station, len(stations))
	copy(list, stations)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.stations = list
	c.lastUpdated = c.now()
}

// PutReading replaces the reading for one station and stamps the cache
func (c *Cache) PutReading(id int, reading domain.Reading) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readings[id] = reading
	c.lastUpdated = c.now()
}
