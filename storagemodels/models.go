/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"errors"
	"sort"
	"time"
)

var errEmptyTimestamp = errors.New("empty timestamp")

// Record is the persisted field map of one entity: id, created_at,
// updated_at, __class__ and every variant attribute, all as strings.
type Record map[string]string

// Class returns the discriminator of the record.
func (r Record) Class() Class {
	return Class(r[FieldClass])
}

// Clone returns a copy of the record.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// CloneRecords deep copies a keyed record set.
func CloneRecords(in map[string]Record) map[string]Record {
	if in == nil {
		return nil
	}
	out := make(map[string]Record, len(in))
	for k, v := range in {
		out[k] = v.Clone()
	}
	return out
}

// QueryParams defines parameters for a linear scan of the store.
type QueryParams struct {
	// Class restricts results to one variant. Empty matches every entity.
	Class Class
	// Limit caps the number of results. Zero means no limit.
	Limit int
}

// Matches reports whether e passes the query filter.
func (p *QueryParams) Matches(e *Entity) bool {
	if p == nil || p.Class == "" {
		return true
	}
	return e.Class == p.Class
}

// SortEntities orders entities by creation time, then by composite key.
func SortEntities(entities []*Entity) {
	sort.SliceStable(entities, func(i, j int) bool {
		ci, cj := time.Time(entities[i].CreatedAt), time.Time(entities[j].CreatedAt)
		if !ci.Equal(cj) {
			return ci.Before(cj)
		}
		return entities[i].Key() < entities[j].Key()
	})
}
