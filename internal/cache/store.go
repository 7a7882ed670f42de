package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Result is the cached tuple spec.md §5 describes: the diagnostics and
// exit code produced by a run_affected_tests invocation, serialized by the
// caller (e.g. to JSON) into Payload before Update and deserialized after
// Check.
type Result struct {
	ExitCode int
	Payload  []byte
}

// Store is the in-process computation cache: check(key) -> Option<result>,
// update(key, result). A process-local LRU backs it; spec.md leaves the
// storage backend to the implementation ("optional content-addressed
// computation cache"), and an in-memory bound keeps it well-defined without
// a persistence format this spec doesn't name.
type Store struct {
	lru *lru.Cache[string, Result]
}

// NewStore creates a Store holding at most capacity entries.
func NewStore(capacity int) (*Store, error) {
	c, err := lru.New[string, Result](capacity)
	if err != nil {
		return nil, err
	}
	return &Store{lru: c}, nil
}

// Check looks up a previously cached result for key.
func (s *Store) Check(key string) (Result, bool) {
	return s.lru.Get(key)
}

// Update stores result under key, evicting the least-recently-used entry
// if the store is at capacity.
func (s *Store) Update(key string, result Result) {
	s.lru.Add(key, result)
}

// Len reports the number of cached entries.
func (s *Store) Len() int {
	return s.lru.Len()
}
