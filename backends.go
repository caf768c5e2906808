/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package hbnb

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/suparena/hbnb/config"
	"github.com/suparena/hbnb/datastore"
	"github.com/suparena/hbnb/datastore/ddb"
	"github.com/suparena/hbnb/datastore/file"
	"github.com/suparena/hbnb/datastore/mock"
	"github.com/suparena/hbnb/registry"
)

// BackendFactory builds the durable mirror named by cfg.Backend.
type BackendFactory func(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (datastore.Backend, error)

// BackendManager is a thread-safe table of backend factories keyed by name.
type BackendManager struct {
	mu        sync.RWMutex
	factories map[string]BackendFactory
}

// NewBackendManager creates an empty manager.
func NewBackendManager() *BackendManager {
	return &BackendManager{
		factories: make(map[string]BackendFactory),
	}
}

// DefaultBackendManager returns a manager with the file, memory and dynamodb
// backends registered.
func DefaultBackendManager() *BackendManager {
	m := NewBackendManager()
	_ = m.Register(config.BackendFile, newFileBackend)
	_ = m.Register(config.BackendMemory, newMemoryBackend)
	_ = m.Register(config.BackendDynamoDB, newDynamoDBBackend)
	return m
}

// Register adds a factory under name.
func (m *BackendManager) Register(name string, factory BackendFactory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.factories[name]; exists {
		return fmt.Errorf("backend %q already registered", name)
	}
	m.factories[name] = factory
	return nil
}

// Get returns the factory registered under name.
func (m *BackendManager) Get(name string) (BackendFactory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	factory, exists := m.factories[name]
	if !exists {
		return nil, fmt.Errorf("backend %q not found", name)
	}
	return factory, nil
}

// Remove deletes the factory registered under name.
func (m *BackendManager) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.factories[name]; !exists {
		return fmt.Errorf("backend %q not found", name)
	}
	delete(m.factories, name)
	return nil
}

// List returns the registered backend names, sorted.
func (m *BackendManager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.factories))
	for name := range m.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Backend validates cfg and builds its backend.
func (m *BackendManager) Backend(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (datastore.Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	factory, err := m.Get(cfg.Backend)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return factory(ctx, cfg, logger)
}

// OpenStore builds the configured backend and loads a store from it. A
// corrupt mirror is an error; an absent one yields an empty store.
func (m *BackendManager) OpenStore(ctx context.Context, cfg *config.Config, catalog *registry.Catalog, logger *zap.SugaredLogger) (*datastore.Store, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	backend, err := m.Backend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	store, err := datastore.Open(ctx, backend, catalog, datastore.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open store from %s: %w", backend.Name(), err)
	}
	logger.Infof("Opened store from %s", backend.Name())
	return store, nil
}

func newFileBackend(_ context.Context, cfg *config.Config, logger *zap.SugaredLogger) (datastore.Backend, error) {
	return file.NewJSONFileBackend(cfg.FilePath, logger), nil
}

func newMemoryBackend(context.Context, *config.Config, *zap.SugaredLogger) (datastore.Backend, error) {
	return mock.New(), nil
}

func newDynamoDBBackend(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (datastore.Backend, error) {
	client, err := ddb.NewDynamoDBClient(ctx, ddb.ClientOptions{
		Region:    cfg.DynamoDB.Region,
		AccessKey: cfg.DynamoDB.AccessKey,
		SecretKey: cfg.DynamoDB.SecretKey,
		Endpoint:  cfg.DynamoDB.Endpoint,
	})
	if err != nil {
		return nil, err
	}
	return ddb.NewDynamodbBackend(client, cfg.DynamoDB.Table, logger), nil
}
