/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.Backend for testing
package mock

import (
	"context"
	"sync"

	"github.com/suparena/hbnb/datastore"
	"github.com/suparena/hbnb/storagemodels"
)

var _ datastore.Backend = (*Backend)(nil)

// Backend is an in-memory datastore.Backend. It stores deep copies of the
// records written to it and counts reads and writes.
type Backend struct {
	mu         sync.RWMutex
	data       map[string]storagemodels.Record
	readError  error
	writeError error
	reads      int
	writes     int
}

// New creates an empty mock backend. Until the first write, Read reports an
// absent mirror.
func New() *Backend {
	return &Backend{}
}

// WithReadError makes Read operations return an error
func (m *Backend) WithReadError(err error) *Backend {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readError = err
	return m
}

// WithWriteError makes Write operations return an error
func (m *Backend) WithWriteError(err error) *Backend {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeError = err
	return m
}

// Name implements datastore.Backend.
func (m *Backend) Name() string {
	return "memory"
}

// Read returns a copy of the stored records.
func (m *Backend) Read(ctx context.Context) (map[string]storagemodels.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads++
	if m.readError != nil {
		return nil, m.readError
	}
	return storagemodels.CloneRecords(m.data), nil
}

// Write replaces the stored records with a copy of records.
func (m *Backend) Write(ctx context.Context, records map[string]storagemodels.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeError != nil {
		return m.writeError
	}
	m.writes++
	m.data = storagemodels.CloneRecords(records)
	if m.data == nil {
		m.data = make(map[string]storagemodels.Record)
	}
	return nil
}

// Helper methods for testing

// SetData directly sets the stored records (for testing)
func (m *Backend) SetData(data map[string]storagemodels.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = storagemodels.CloneRecords(data)
}

// GetData returns a copy of the stored records (for testing)
func (m *Backend) GetData() map[string]storagemodels.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return storagemodels.CloneRecords(m.data)
}

// Writes returns the number of successful writes
func (m *Backend) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// Reads returns the number of reads, failed ones included
func (m *Backend) Reads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reads
}

// Count returns the number of stored records
func (m *Backend) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Clear removes all data and resets the backend to an absent mirror
func (m *Backend) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
}
