// Package profiles owns the in-memory LeadProfile map and its durability.
// Persistence is a best-effort full-map snapshot after every mutation:
// failures are counted and logged, never surfaced to the mutating caller,
// and in-memory state stays authoritative for the process lifetime.
package profiles

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"member_portal_backend/internal/leads/domain"
	"member_portal_backend/internal/leads/prediction"
	"member_portal_backend/platform/kv"
	"member_portal_backend/platform/logger"
)

// ProfilesKey is the persistence key holding the full profile map.
const ProfilesKey = "lead_profiles"

// Store holds every known profile keyed by profile id. Stored profiles are
// treated as immutable: mutations clone, modify, and swap the pointer, so
// readers never observe partial state. Mutations on the same id are
// serialized by a per-id lock to prevent lost updates under concurrent
// requests.
type Store struct {
	kv  kv.Store
	log *logger.Logger
	now func() time.Time

	mu       sync.RWMutex
	profiles map[string]*domain.LeadProfile
	locks    map[string]*sync.Mutex

	persistFailures atomic.Int64
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the store's time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store and loads the persisted profile map. A missing key or
// malformed stored document is treated as no prior data, never a fatal error.
func New(ctx context.Context, store kv.Store, log *logger.Logger, opts ...Option) *Store {
	s := &Store{
		kv:       store,
		log:      log,
		now:      time.Now,
		profiles: make(map[string]*domain.LeadProfile),
		locks:    make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.loadAll(ctx)
	return s
}

func (s *Store) loadAll(ctx context.Context) {
	data, err := s.kv.Read(ctx, ProfilesKey)
	if err != nil {
		s.log.PersistFailure(ProfilesKey, err)
		s.persistFailures.Add(1)
		return
	}
	if data == nil {
		return
	}

	loaded := make(map[string]*domain.LeadProfile)
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.log.Warn("discarding malformed profile snapshot", "key", ProfilesKey, "error", err)
		return
	}

	s.mu.Lock()
	s.profiles = loaded
	s.mu.Unlock()
}

// Get returns a copy of the profile, or nil when absent. Pure read; never
// creates.
func (s *Store) Get(id string) *domain.LeadProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profiles[id].Clone()
}

// GetOrCreate returns a copy of the profile, synthesizing, storing, and
// persisting a default one on miss.
func (s *Store) GetOrCreate(ctx context.Context, id, source string, attribution *domain.AttributionData) *domain.LeadProfile {
	lock := s.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	existing := s.profiles[id]
	s.mu.RUnlock()
	if existing != nil {
		return existing.Clone()
	}

	created := s.newDefaultProfile(id, source, attribution)
	s.mu.Lock()
	s.profiles[id] = created
	s.mu.Unlock()

	s.persistAll(ctx)
	return created.Clone()
}

// Mutate applies fn to the profile under the per-id lock, persists the full
// map, and returns a copy of the updated profile. Returns ok=false without
// calling fn when the id is unknown.
func (s *Store) Mutate(ctx context.Context, id string, fn func(*domain.LeadProfile)) (*domain.LeadProfile, bool) {
	lock := s.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	current := s.profiles[id]
	s.mu.RUnlock()
	if current == nil {
		return nil, false
	}

	updated := current.Clone()
	fn(updated)

	s.mu.Lock()
	s.profiles[id] = updated
	s.mu.Unlock()

	s.persistAll(ctx)
	return updated.Clone(), true
}

// Save upserts the profile and persists the full map.
func (s *Store) Save(ctx context.Context, profile *domain.LeadProfile) {
	lock := s.lockFor(profile.ID)
	lock.Lock()
	defer lock.Unlock()

	stored := profile.Clone()
	s.mu.Lock()
	s.profiles[profile.ID] = stored
	s.mu.Unlock()

	s.persistAll(ctx)
}

// PersistFailures returns the number of failed persistence writes since
// startup. Surfaced on the health endpoint.
func (s *Store) PersistFailures() int64 {
	return s.persistFailures.Load()
}

func (s *Store) newDefaultProfile(id, source string, attribution *domain.AttributionData) *domain.LeadProfile {
	return &domain.LeadProfile{
		ID:           id,
		Status:       domain.StatusVisitor,
		LastActivity: s.now().UTC(),
		Source:       source,
		Attribution:  attribution,
		Activities:   []domain.EngagementActivity{},
		Predictions:  prediction.Initial(),
	}
}

func (s *Store) lockFor(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

func (s *Store) persistAll(ctx context.Context) {
	s.mu.RLock()
	data, err := json.Marshal(s.profiles)
	s.mu.RUnlock()
	if err != nil {
		s.log.PersistFailure(ProfilesKey, err)
		s.persistFailures.Add(1)
		return
	}

	if err := s.kv.Write(ctx, ProfilesKey, data); err != nil {
		s.log.PersistFailure(ProfilesKey, err)
		s.persistFailures.Add(1)
	}
}
