// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datastore

import (
	"errors"
	"log/slog"
	"maps"
	"sync"

	"github.com/bureau-foundation/widgets/lib/errkind"
)

// Options configures a Store.
type Options struct {
	Locator Locator

	// Logger receives warnings about malformed data files. Nil
	// discards them.
	Logger *slog.Logger
}

// Store is the in-memory cache of every group's key-value map. It is
// safe for concurrent use.
type Store struct {
	locator Locator
	logger  *slog.Logger

	// mu guards groups. It is never held across file I/O.
	mu     sync.Mutex
	groups map[string]map[string]string

	// persistLocks serialize updates of one group across the file
	// write.
	persistLocksMu sync.Mutex
	persistLocks   map[string]*sync.Mutex

	observersMu sync.RWMutex
	observers   map[int]func(group string)
	nextID      int
}

// New creates a Store. Nothing is read from disk until a group is
// first accessed.
func New(options Options) *Store {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		locator:      options.Locator,
		logger:       logger,
		groups:       make(map[string]map[string]string),
		persistLocks: make(map[string]*sync.Mutex),
		observers:    make(map[int]func(string)),
	}
}

// Path returns the data file for group.
func (s *Store) Path(group string) string { return s.locator.Path(group) }

// Get returns the value stored under key in group. A missing key is
// reported by ok == false, not by an error.
func (s *Store) Get(group, key string) (value string, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.loadLocked(group)
	if err != nil {
		return "", false, err
	}
	value, ok = values[key]
	return value, ok, nil
}

// Snapshot returns a copy of group's map.
func (s *Store) Snapshot(group string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.loadLocked(group)
	if err != nil {
		return nil, err
	}
	return maps.Clone(values), nil
}

// Set stores value under key in group, persists the group, and
// notifies observers. When persistence fails the in-memory value is
// kept and an errkind.IO error is returned; the next successful write
// of the group persists it.
func (s *Store) Set(group, key, value string) error {
	return s.Update(group, func(values map[string]string) bool {
		values[key] = value
		return true
	})
}

// SetMany stores every entry of items in group with a single write.
func (s *Store) SetMany(group string, items map[string]string) error {
	return s.Update(group, func(values map[string]string) bool {
		maps.Copy(values, items)
		return len(items) > 0
	})
}

// Update runs mutate on group's map under the store lock. When mutate
// returns true the group is persisted and observers are notified.
// mutate must not call back into the Store.
//
// Updates of the same group are serialized end to end, including the
// file write, so the file always converges to the in-memory map. The
// store lock itself is released before any file I/O.
func (s *Store) Update(group string, mutate func(values map[string]string) bool) error {
	return s.update(group, false, mutate)
}

// Reload is Update on a map freshly read from the group's file. Used
// when another process may have appended to the file since it was
// last read.
func (s *Store) Reload(group string, mutate func(values map[string]string) bool) error {
	return s.update(group, true, mutate)
}

func (s *Store) update(group string, reread bool, mutate func(values map[string]string) bool) error {
	changed, err := s.apply(group, reread, mutate)
	if err != nil || !changed {
		return err
	}
	s.notify(group)
	return nil
}

func (s *Store) apply(group string, reread bool, mutate func(values map[string]string) bool) (bool, error) {
	lock := s.persistLock(group)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	if reread {
		delete(s.groups, group)
	}
	values, err := s.loadLocked(group)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	if !mutate(values) {
		s.mu.Unlock()
		return false, nil
	}
	snapshot := maps.Clone(values)
	s.mu.Unlock()

	if err := WriteMapFile(s.locator.Path(group), snapshot); err != nil {
		return false, err
	}
	return true, nil
}

// Invalidate drops the cached map of group so the next access re-reads
// the file. Used after another process rewrote it.
func (s *Store) Invalidate(group string) {
	lock := s.persistLock(group)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.groups, group)
}

// Subscribe registers fn to be called with the group name after every
// successful write. The returned function removes the registration.
func (s *Store) Subscribe(fn func(group string)) (unsubscribe func()) {
	s.observersMu.Lock()
	defer s.observersMu.Unlock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	return func() {
		s.observersMu.Lock()
		defer s.observersMu.Unlock()
		delete(s.observers, id)
	}
}

func (s *Store) notify(group string) {
	s.observersMu.RLock()
	observers := make([]func(string), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.observersMu.RUnlock()

	for _, fn := range observers {
		fn(group)
	}
}

// loadLocked returns the cached map for group, reading the file on
// first access. Must be called with s.mu held.
func (s *Store) loadLocked(group string) (map[string]string, error) {
	if values, ok := s.groups[group]; ok {
		return values, nil
	}
	path := s.locator.Path(group)
	values, err := ReadMapFile(path)
	if errors.Is(err, errkind.Deserialization) {
		s.logger.Warn("widget data file is malformed, starting empty",
			"group", group,
			"path", path,
			"error", err,
		)
		values, err = map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	s.groups[group] = values
	return values, nil
}

func (s *Store) persistLock(group string) *sync.Mutex {
	s.persistLocksMu.Lock()
	defer s.persistLocksMu.Unlock()
	lock, ok := s.persistLocks[group]
	if !ok {
		lock = new(sync.Mutex)
		s.persistLocks[group] = lock
	}
	return lock
}
