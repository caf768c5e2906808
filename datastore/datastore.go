/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/hbnb/storagemodels"
)

// Backend is the durable mirror of a Store.
type Backend interface {
	// Name identifies the mirror in logs and errors, e.g. the file path.
	Name() string

	// Read returns every persisted record keyed by composite key.
	// An absent mirror returns (nil, nil). A mirror that exists but cannot
	// be decoded returns an error matching errors.ErrLoadCorrupt.
	Read(ctx context.Context) (map[string]storagemodels.Record, error)

	// Write replaces the whole mirror with records.
	Write(ctx context.Context, records map[string]storagemodels.Record) error
}
