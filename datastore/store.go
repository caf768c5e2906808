/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/suparena/hbnb/errors"
	"github.com/suparena/hbnb/registry"
	"github.com/suparena/hbnb/storagemodels"
)

// Store owns the canonical mapping from composite key to entity and keeps
// its Backend in sync on Persist. It loads the backend lazily on first
// access; Open loads eagerly.
//
// Entities never leave or enter the store by reference: reads return clones
// and Put stores a clone.
type Store struct {
	mu      sync.RWMutex
	objects map[string]*storagemodels.Entity
	loaded  bool
	backend Backend
	catalog *registry.Catalog
	logger  *zap.SugaredLogger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The store logs under the "datastore" name.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *Store) {
		s.logger = logger.Named("datastore")
	}
}

// New creates a store over backend without touching it.
func New(backend Backend, catalog *registry.Catalog, opts ...Option) *Store {
	s := &Store{
		objects: make(map[string]*storagemodels.Entity),
		backend: backend,
		catalog: catalog,
		logger:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a store and loads it from backend. A corrupt backend aborts
// the open.
func Open(ctx context.Context, backend Backend, catalog *registry.Catalog, opts ...Option) (*Store, error) {
	s := New(backend, catalog, opts...)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the in-memory state with the content of the backend. The
// current state is kept when any record fails to decode.
func (s *Store) Load(ctx context.Context) error {
	records, err := s.backend.Read(ctx)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", s.backend.Name(), err)
	}

	objects := make(map[string]*storagemodels.Entity, len(records))
	for key, rec := range records {
		e, err := s.decode(key, rec)
		if err != nil {
			return err
		}
		objects[key] = e
	}

	s.mu.Lock()
	s.objects = objects
	s.loaded = true
	s.mu.Unlock()

	s.logger.Debugf("Loaded %d entities from %s", len(objects), s.backend.Name())
	return nil
}

func (s *Store) decode(key string, rec storagemodels.Record) (*storagemodels.Entity, error) {
	class := rec.Class()
	if class == "" {
		return nil, errors.NewCorruptError(s.backend.Name(), key, "missing "+storagemodels.FieldClass, nil)
	}
	v, err := s.catalog.Resolve(string(class))
	if err != nil {
		return nil, errors.NewCorruptError(s.backend.Name(), key, "unknown class", err)
	}
	e, err := v.Decode(rec)
	if err != nil {
		return nil, errors.NewCorruptError(s.backend.Name(), key, "undecodable record", err)
	}
	if e.Key() != key {
		return nil, errors.NewCorruptError(s.backend.Name(), key, fmt.Sprintf("key does not match %s", e.Key()), nil)
	}
	return e, nil
}

// Persist writes every entity to the backend, replacing its content.
func (s *Store) Persist(ctx context.Context) error {
	if err := s.ready(ctx); err != nil {
		return err
	}

	s.mu.RLock()
	records := make(map[string]storagemodels.Record, len(s.objects))
	for key, e := range s.objects {
		records[key] = e.ToRecord()
	}
	s.mu.RUnlock()

	if err := s.backend.Write(ctx, records); err != nil {
		return fmt.Errorf("failed to persist %s: %w", s.backend.Name(), err)
	}
	s.logger.Debugf("Persisted %d entities to %s", len(records), s.backend.Name())
	return nil
}

// ready loads the backend on first access.
func (s *Store) ready(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.Load(ctx)
}

// GetOne returns a copy of the entity stored under key.
func (s *Store) GetOne(ctx context.Context, key string) (*storagemodels.Entity, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.objects[key]
	if !ok {
		return nil, errors.NewNotFoundError(classOf(key), key)
	}
	return e.Clone(), nil
}

// Put upserts a copy of entity under its composite key. It does not persist.
func (s *Store) Put(ctx context.Context, entity *storagemodels.Entity) error {
	if err := s.ready(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[entity.Key()] = entity.Clone()
	return nil
}

// Delete removes the entity stored under key and reports whether one was
// there. It does not persist.
func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return false, nil
	}
	delete(s.objects, key)
	return true, nil
}

// All returns a snapshot of the store keyed by composite key.
func (s *Store) All(ctx context.Context) (map[string]*storagemodels.Entity, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*storagemodels.Entity, len(s.objects))
	for k, e := range s.objects {
		out[k] = e.Clone()
	}
	return out, nil
}

// Query scans the store and returns copies of the matching entities,
// oldest first.
func (s *Store) Query(ctx context.Context, params *storagemodels.QueryParams) ([]*storagemodels.Entity, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	results := make([]*storagemodels.Entity, 0, len(s.objects))
	for _, e := range s.objects {
		if params.Matches(e) {
			results = append(results, e.Clone())
		}
	}
	s.mu.RUnlock()

	storagemodels.SortEntities(results)
	if params != nil && params.Limit > 0 && len(results) > params.Limit {
		results = results[:params.Limit]
	}
	return results, nil
}

// Count returns the number of entities of class. An empty class counts
// every entity.
func (s *Store) Count(ctx context.Context, class storagemodels.Class) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if class == "" {
		return len(s.objects), nil
	}
	n := 0
	for _, e := range s.objects {
		if e.Class == class {
			n++
		}
	}
	return n, nil
}

func classOf(key string) string {
	if i := strings.Index(key, "."); i > 0 {
		return key[:i]
	}
	return "entity"
}
