package config

import "sync"

// Store holds the live Config behind a RWMutex in a read-mostly locking
// shape: readers (every accepted connection, resolving its hostname) take
// RLock; writers (Reload, Mutate) take the full Lock.
type Store struct {
	mu   sync.RWMutex
	path string
	cfg  Config
}

// NewStore wraps cfg, remembering path so Reload/Mutate know where to
// re-read and save it.
func NewStore(path string, cfg Config) *Store {
	return &Store{path: path, cfg: cfg}
}

// Snapshot returns a copy of the current config. The VirtualHosts slice is
// copied into a new backing array, but the pointers inside each element's
// Action (and DefaultHost) still point at the stored config's values -
// callers must not mutate what those pointers reference.
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg := s.cfg
	cfg.VirtualHosts = append([]VirtualHost(nil), s.cfg.VirtualHosts...)
	return cfg
}

// Reload re-reads the config file from disk and replaces the in-memory
// config wholesale.
func (s *Store) Reload() error {
	cfg, err := Load(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}

// Mutate applies fn to a copy of the current config, persists the result to
// disk, and only then swaps it into the store - a failed Save leaves the
// in-memory config untouched.
func (s *Store) Mutate(fn func(cfg *Config)) error {
	s.mu.Lock()
	cfg := s.cfg
	cfg.VirtualHosts = append([]VirtualHost(nil), s.cfg.VirtualHosts...)
	fn(&cfg)
	s.mu.Unlock()

	if err := Save(cfg, s.path); err != nil {
		return err
	}

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}

// Resolve looks up hostname in the current config's VirtualHosts by exact
// match, falling back to DefaultHost's implied forward-everything action
// when nothing matches. ok is false only when neither a virtualhost nor a
// default host apply, meaning the caller should close the connection.
//
// The returned Action is a shallow copy: its pointer fields are shared with
// the stored config, not deep-cloned. Reload and Mutate replace whole
// values rather than writing through those pointers.
func (s *Store) Resolve(hostname string) (Action, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, vh := range s.cfg.VirtualHosts {
		if string(vh.Hostname) == hostname {
			return vh.Action, true
		}
	}
	if s.cfg.DefaultHost != nil {
		addr := *s.cfg.DefaultHost
		return Action{Forward: &addr}, true
	}
	return Action{}, false
}
