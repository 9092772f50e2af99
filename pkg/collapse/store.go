// Package collapse holds the set of collapsed group keys for one component instance.
package collapse

// Store is an insertion-ordered set of collapsed group keys.
// It is not safe for concurrent use; callers serialize access per component.
type Store struct {
	keys  []string
	index map[string]int
}

// New returns a store containing keys, in order, without duplicates.
func New(keys ...string) *Store {
	s := &Store{}
	s.Restore(keys)
	return s
}

// IsCollapsed reports whether key is in the store.
func (s *Store) IsCollapsed(key string) bool {
	_, ok := s.index[key]
	return ok
}

// Toggle inserts key if absent, removes it otherwise, and returns the new membership.
func (s *Store) Toggle(key string) bool {
	if i, ok := s.index[key]; ok {
		s.keys = append(s.keys[:i], s.keys[i+1:]...)
		delete(s.index, key)
		for j := i; j < len(s.keys); j++ {
			s.index[s.keys[j]] = j
		}
		return false
	}
	s.add(key)
	return true
}

// Serialize returns the collapsed keys in insertion order.
// The result is never nil so it encodes as an empty list.
func (s *Store) Serialize() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Restore replaces the store's contents wholesale.
func (s *Store) Restore(keys []string) {
	s.keys = make([]string, 0, len(keys))
	s.index = make(map[string]int, len(keys))
	for _, k := range keys {
		if _, dup := s.index[k]; !dup {
			s.add(k)
		}
	}
}

// Len returns the number of collapsed keys.
func (s *Store) Len() int {
	return len(s.keys)
}

func (s *Store) add(key string) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	s.index[key] = len(s.keys)
	s.keys = append(s.keys, key)
}
