/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"context"
	stderrors "errors"
	"time"

	"go.uber.org/zap"

	"github.com/suparena/hbnb/datastore"
	"github.com/suparena/hbnb/errors"
	"github.com/suparena/hbnb/registry"
	"github.com/suparena/hbnb/storagemodels"
)

// Processor implements the console verbs over a Store.
type Processor struct {
	store   *datastore.Store
	catalog *registry.Catalog
	logger  *zap.SugaredLogger
	now     func() time.Time
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger. The processor logs under the "processor" name.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(p *Processor) {
		p.logger = logger.Named("processor")
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		p.now = now
	}
}

// New creates a processor over store, resolving class names with catalog.
func New(store *datastore.Store, catalog *registry.Catalog, opts ...Option) *Processor {
	p := &Processor{
		store:   store,
		catalog: catalog,
		logger:  zap.NewNop().Sugar(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Create builds a new entity of class, stores and persists it, and returns
// its id. Extra arguments are ignored.
func (p *Processor) Create(ctx context.Context, class string, args ...string) (string, error) {
	if class == "" {
		return "", errors.ErrClassMissing
	}
	v, err := p.catalog.Resolve(class)
	if err != nil {
		return "", err
	}
	if len(args) > 0 {
		p.logger.Debugf("Ignoring %d extra arguments to create %s", len(args), class)
	}

	e := v.New(p.now())
	if err := p.store.Put(ctx, e); err != nil {
		return "", err
	}
	if err := p.store.Persist(ctx); err != nil {
		p.rollback(ctx, e.Key(), nil)
		return "", err
	}

	p.logger.Infof("Created %s", e.Key())
	return e.ID, nil
}

// Show returns the entity of class with the given id.
func (p *Processor) Show(ctx context.Context, class, id string) (*storagemodels.Entity, error) {
	v, err := p.resolve(class, id)
	if err != nil {
		return nil, err
	}
	return p.store.GetOne(ctx, storagemodels.CompositeKey(v.Class, id))
}

// Update sets one attribute of an entity, refreshes its updated_at and
// persists the store. Writes to id, created_at, updated_at and __class__
// are ignored; updated_at is refreshed regardless.
func (p *Processor) Update(ctx context.Context, class, id, attr, value string) (*storagemodels.Entity, error) {
	if class == "" {
		return nil, errors.ErrClassMissing
	}
	if id == "" {
		return nil, errors.ErrIdMissing
	}
	if attr == "" {
		return nil, errors.ErrAttributeMissing
	}
	if value == "" {
		return nil, errors.ErrValueMissing
	}
	v, err := p.catalog.Resolve(class)
	if err != nil {
		return nil, err
	}

	key := storagemodels.CompositeKey(v.Class, id)
	e, err := p.store.GetOne(ctx, key)
	if err != nil {
		return nil, err
	}
	previous := e.Clone()

	if err := v.Set(e, attr, value); err != nil {
		if !stderrors.Is(err, errors.ErrProtectedAttribute) {
			return nil, err
		}
		p.logger.Debugf("Ignoring write to read-only attribute %s of %s", attr, key)
	}
	e.Touch(p.now())

	if err := p.store.Put(ctx, e); err != nil {
		return nil, err
	}
	if err := p.store.Persist(ctx); err != nil {
		p.rollback(ctx, key, previous)
		return nil, err
	}

	p.logger.Infof("Updated %s.%s", key, attr)
	return e, nil
}

// Destroy removes an entity and persists the store.
func (p *Processor) Destroy(ctx context.Context, class, id string) error {
	v, err := p.resolve(class, id)
	if err != nil {
		return err
	}

	key := storagemodels.CompositeKey(v.Class, id)
	previous, err := p.store.GetOne(ctx, key)
	if err != nil {
		return err
	}
	if _, err := p.store.Delete(ctx, key); err != nil {
		return err
	}
	if err := p.store.Persist(ctx); err != nil {
		p.rollback(ctx, key, previous)
		return err
	}

	p.logger.Infof("Destroyed %s", key)
	return nil
}

// All returns every entity of class, oldest first. An empty class returns
// every entity in the store.
func (p *Processor) All(ctx context.Context, class string) ([]*storagemodels.Entity, error) {
	params := &storagemodels.QueryParams{}
	if class != "" {
		v, err := p.catalog.Resolve(class)
		if err != nil {
			return nil, err
		}
		params.Class = v.Class
	}
	return p.store.Query(ctx, params)
}

// Count returns the number of entities of class.
func (p *Processor) Count(ctx context.Context, class string) (int, error) {
	if class == "" {
		return 0, errors.ErrClassMissing
	}
	v, err := p.catalog.Resolve(class)
	if err != nil {
		return 0, err
	}
	return p.store.Count(ctx, v.Class)
}

// resolve validates a class and id pair in reporting order: missing class,
// missing id, unknown class.
func (p *Processor) resolve(class, id string) (registry.Variant, error) {
	if class == "" {
		return registry.Variant{}, errors.ErrClassMissing
	}
	if id == "" {
		return registry.Variant{}, errors.ErrIdMissing
	}
	return p.catalog.Resolve(class)
}

// rollback restores key to previous after a failed persist. A nil previous
// removes key.
func (p *Processor) rollback(ctx context.Context, key string, previous *storagemodels.Entity) {
	var err error
	if previous == nil {
		_, err = p.store.Delete(ctx, key)
	} else {
		err = p.store.Put(ctx, previous)
	}
	if err != nil {
		p.logger.Errorf("Failed to roll back %s: %v", key, err)
		return
	}
	p.logger.Warnf("Rolled back %s after failed persist", key)
}
