package services

import "sync"

// KeyedSetStore tracks which sentences have already been served, keyed by
// session id. Implementations must be safe for concurrent use; the default
// is an in-process map, production may back it with a shared cache.
type KeyedSetStore interface {
	Members(key string) []string
	Add(key, member string)
	Clear(key string)
}

// MemorySetStore is the in-process KeyedSetStore. State does not survive
// restarts and is never evicted, which matches the session lifetime being
// short-lived non-repeat tracking only.
type MemorySetStore struct {
	sets  map[string]map[string]struct{}
	mutex sync.RWMutex
}

// NewMemorySetStore creates an empty in-memory set store.
func NewMemorySetStore() *MemorySetStore {
	return &MemorySetStore{
		sets: make(map[string]map[string]struct{}),
	}
}

// Members returns a copy of the set stored under key.
func (s *MemorySetStore) Members(key string) []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	set, ok := s.sets[key]
	if !ok {
		return nil
	}
	members := make([]string, 0, len(set))
	for member := range set {
		members = append(members, member)
	}
	return members
}

// Add records a member under key.
func (s *MemorySetStore) Add(key, member string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	set, ok := s.sets[key]
	if !ok {
		set = make(map[string]struct{})
		s.sets[key] = set
	}
	set[member] = struct{}{}
}

// Clear drops the whole set for key.
func (s *MemorySetStore) Clear(key string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.sets, key)
}
