/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/suparena/hbnb/errors"
	"github.com/suparena/hbnb/storagemodels"
)

// Kind is the value type an attribute setter accepts. Values are always
// stored as strings.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
)

// Attribute describes one variant specific field.
type Attribute struct {
	Name string
	Kind Kind
}

// Setter assigns a raw value to one attribute of an entity.
type Setter func(e *storagemodels.Entity, value string) error

// Variant is one kind of entity: its class, its module and its schema.
type Variant struct {
	Class      storagemodels.Class
	Module     string
	Attributes []Attribute
}

// Variants returns the built-in variants.
func Variants() []Variant {
	return []Variant{
		{Class: storagemodels.ClassBaseModel, Module: baseModule},
		{Class: storagemodels.ClassUser, Attributes: strs("email", "password", "first_name", "last_name")},
		{Class: storagemodels.ClassPlace, Attributes: []Attribute{
			{Name: "city_id"},
			{Name: "user_id"},
			{Name: "name"},
			{Name: "description"},
			{Name: "number_rooms", Kind: KindInt},
			{Name: "number_bathrooms", Kind: KindInt},
			{Name: "max_guest", Kind: KindInt},
			{Name: "price_by_night", Kind: KindInt},
			{Name: "latitude", Kind: KindFloat},
			{Name: "longitude", Kind: KindFloat},
			{Name: "amenity_ids"},
		}},
		{Class: storagemodels.ClassCity, Attributes: strs("state_id", "name")},
		{Class: storagemodels.ClassState, Attributes: strs("name")},
		{Class: storagemodels.ClassAmenity, Attributes: strs("name")},
		{Class: storagemodels.ClassReview, Attributes: strs("place_id", "user_id", "text")},
	}
}

func strs(names ...string) []Attribute {
	attrs := make([]Attribute, len(names))
	for i, n := range names {
		attrs[i] = Attribute{Name: n}
	}
	return attrs
}

// AttributeNames returns the schema attribute names in order.
func (v Variant) AttributeNames() []string {
	names := make([]string, len(v.Attributes))
	for i, a := range v.Attributes {
		names[i] = a.Name
	}
	return names
}

// New constructs a fresh entity of this variant.
func (v Variant) New(now time.Time) *storagemodels.Entity {
	return storagemodels.NewEntity(v.Class, v.AttributeNames(), now)
}

// Setter returns the typed setter for an attribute. Reserved fields return
// errors.ErrProtectedAttribute, names outside the schema an
// UnknownAttributeError.
func (v Variant) Setter(name string) (Setter, error) {
	switch name {
	case storagemodels.FieldID, storagemodels.FieldCreatedAt,
		storagemodels.FieldUpdatedAt, storagemodels.FieldClass:
		return nil, errors.ErrProtectedAttribute
	}
	for _, a := range v.Attributes {
		if a.Name == name {
			return setterFor(a), nil
		}
	}
	return nil, errors.NewUnknownAttributeError(string(v.Class), name)
}

// Set assigns value to the named attribute of e.
func (v Variant) Set(e *storagemodels.Entity, name, value string) error {
	set, err := v.Setter(name)
	if err != nil {
		return err
	}
	return set(e, value)
}

func setterFor(a Attribute) Setter {
	name := a.Name
	switch a.Kind {
	case KindInt:
		return func(e *storagemodels.Entity, value string) error {
			n, err := parseDecimalInt(value)
			if err != nil {
				return errors.NewValidationError(name, "must be an integer")
			}
			e.Attributes[name] = strconv.Itoa(n)
			return nil
		}
	case KindFloat:
		return func(e *storagemodels.Entity, value string) error {
			f, err := parseDecimalFloat(value)
			if err != nil {
				return errors.NewValidationError(name, "must be a number")
			}
			e.Attributes[name] = strconv.FormatFloat(f, 'f', -1, 64)
			return nil
		}
	default:
		return func(e *storagemodels.Entity, value string) error {
			e.Attributes[name] = value
			return nil
		}
	}
}

// parseDecimalInt reads a base 10 integer. Leading zeros are not an octal
// marker and 0x, 0o, 0b prefixes are rejected.
func parseDecimalInt(value string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(value))
}

// parseDecimalFloat reads a finite decimal number. Hex floats, NaN and
// infinities are rejected.
func parseDecimalFloat(value string) (float64, error) {
	v := strings.TrimSpace(value)
	digits := strings.ToLower(strings.TrimLeft(v, "+-"))
	if strings.HasPrefix(digits, "0x") {
		return 0, fmt.Errorf("hexadecimal value %q", v)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value %q", v)
	}
	return f, nil
}

// Decode rebuilds an entity of this variant from its persisted record.
// Schema attributes missing from the record default to the empty string;
// fields outside the schema are kept so they survive the next write.
func (v Variant) Decode(rec storagemodels.Record) (*storagemodels.Entity, error) {
	if rec.Class() != v.Class {
		return nil, fmt.Errorf("discriminator %q does not match %s", rec.Class(), v.Class)
	}
	id := rec[storagemodels.FieldID]
	if id == "" {
		return nil, fmt.Errorf("missing %s", storagemodels.FieldID)
	}
	created, err := storagemodels.ParseTimestamp(rec[storagemodels.FieldCreatedAt])
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", storagemodels.FieldCreatedAt, err)
	}
	updated, err := storagemodels.ParseTimestamp(rec[storagemodels.FieldUpdatedAt])
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", storagemodels.FieldUpdatedAt, err)
	}

	fields := v.AttributeNames()
	var extra []string
	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f] = true
	}
	for k := range rec {
		switch k {
		case storagemodels.FieldID, storagemodels.FieldCreatedAt,
			storagemodels.FieldUpdatedAt, storagemodels.FieldClass:
			continue
		}
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)

	e := storagemodels.NewEntity(v.Class, append(fields, extra...), time.Time(created))
	e.ID = id
	e.CreatedAt = created
	e.UpdatedAt = updated
	for k := range e.Attributes {
		e.Attributes[k] = rec[k]
	}
	return e, nil
}
