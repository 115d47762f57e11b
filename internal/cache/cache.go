// Package cache provides a file-backed store of previous probe results.
// It exists purely to save API round trips between preflight runs; every
// failure mode degrades to a cache miss, never to a pipeline error.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultTTL is how long cached probe results stay valid. Quota increases
// propagate within hours; a day-old answer is stale enough to re-check.
const DefaultTTL = 24 * time.Hour

type regionEntry struct {
	Quotas   map[string]float64 `json:"quotas,omitempty"`
	QuotasAt time.Time          `json:"quotasAt,omitempty"`
	Zones    []string           `json:"zones,omitempty"`
	ZonesAt  time.Time          `json:"zonesAt,omitempty"`
}

type document struct {
	Regions map[string]*regionEntry `json:"regions"`
}

// Store is a file-backed probe-result cache implementing
// preflight.ProbeCache. Writes go through to disk best-effort.
type Store struct {
	path string
	ttl  time.Duration

	mu  sync.Mutex
	doc document
	now func() time.Time
}

// Open loads the cache file at path, creating an empty store when the file
// is missing or unreadable. ttl <= 0 selects DefaultTTL.
func Open(path string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	store := &Store{
		path: path,
		ttl:  ttl,
		doc:  document{Regions: map[string]*regionEntry{}},
		now:  time.Now,
	}

	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return store
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil || doc.Regions == nil {
		// Corrupt cache files are discarded, not repaired.
		return store
	}
	store.doc = doc
	return store
}

// GetQuotas returns the cached quota table for a region if still fresh.
func (s *Store) GetQuotas(region string) (map[string]float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.doc.Regions[region]
	if entry == nil || entry.QuotasAt.IsZero() || s.expired(entry.QuotasAt) {
		return nil, false
	}
	return entry.Quotas, true
}

// PutQuotas stores the quota table observed for a region.
func (s *Store) PutQuotas(region string, quotas map[string]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.entry(region)
	entry.Quotas = quotas
	entry.QuotasAt = s.now().UTC()
	s.save()
}

// GetZones returns the cached zone list for a region if still fresh.
func (s *Store) GetZones(region string) ([]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.doc.Regions[region]
	if entry == nil || entry.ZonesAt.IsZero() || s.expired(entry.ZonesAt) {
		return nil, false
	}
	return entry.Zones, true
}

// PutZones stores the available zones observed for a region.
func (s *Store) PutZones(region string, zones []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.entry(region)
	entry.Zones = zones
	entry.ZonesAt = s.now().UTC()
	s.save()
}

func (s *Store) entry(region string) *regionEntry {
	entry := s.doc.Regions[region]
	if entry == nil {
		entry = &regionEntry{}
		s.doc.Regions[region] = entry
	}
	return entry
}

func (s *Store) expired(at time.Time) bool {
	return s.now().Sub(at) > s.ttl
}

// save writes the cache to disk. Errors are ignored: losing the cache only
// costs a future probe.
func (s *Store) save() {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return
	}
	_ = os.WriteFile(s.path, data, 0o600)
}
