/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

// Class is the variant tag of an entity, e.g. "User" or "Place".
type Class string

// The closed set of entity variants.
const (
	ClassBaseModel Class = "BaseModel"
	ClassUser      Class = "User"
	ClassPlace     Class = "Place"
	ClassCity      Class = "City"
	ClassState     Class = "State"
	ClassAmenity   Class = "Amenity"
	ClassReview    Class = "Review"
)

// Reserved field names of the persisted field map.
const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
	FieldClass     = "__class__"
)

// TimestampFormat is the ISO-8601 layout timestamps are persisted with.
const TimestampFormat = strfmt.RFC3339Micro

// Entity is one typed, identified record held in the store.
type Entity struct {
	// Unique identifier, a UUID v4. Immutable after creation.
	ID string `json:"id"`

	// Variant tag, persisted as __class__.
	Class Class `json:"__class__"`

	// Format: date-time
	CreatedAt strfmt.DateTime `json:"created_at"`

	// Format: date-time
	UpdatedAt strfmt.DateTime `json:"updated_at"`

	// Variant specific string attributes.
	Attributes map[string]string `json:"-"`

	// schema order of Attributes, used for rendering
	fields []string
}

// NewEntity creates an entity of the given class with a fresh UUID, both
// timestamps set to now and every attribute defaulted to the empty string.
func NewEntity(class Class, attributes []string, now time.Time) *Entity {
	ts := Timestamp(now)
	e := &Entity{
		ID:         uuid.NewString(),
		Class:      class,
		CreatedAt:  ts,
		UpdatedAt:  ts,
		Attributes: make(map[string]string, len(attributes)),
		fields:     append([]string(nil), attributes...),
	}
	for _, name := range attributes {
		e.Attributes[name] = ""
	}
	return e
}

// CompositeKey returns the store key "<Class>.<id>".
func CompositeKey(class Class, id string) string {
	return string(class) + "." + id
}

// Key returns the composite key the entity is stored under.
func (e *Entity) Key() string {
	return CompositeKey(e.Class, e.ID)
}

// Fields returns the attribute names in schema order.
func (e *Entity) Fields() []string {
	if len(e.fields) > 0 {
		return append([]string(nil), e.fields...)
	}
	names := make([]string, 0, len(e.Attributes))
	for name := range e.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the value of an attribute or one of the reserved fields.
func (e *Entity) Get(name string) (string, bool) {
	switch name {
	case FieldID:
		return e.ID, true
	case FieldClass:
		return string(e.Class), true
	case FieldCreatedAt:
		return FormatTimestamp(e.CreatedAt), true
	case FieldUpdatedAt:
		return FormatTimestamp(e.UpdatedAt), true
	}
	v, ok := e.Attributes[name]
	return v, ok
}

// Touch refreshes UpdatedAt. The new value is always strictly later than
// the previous one, even when the clock did not advance.
func (e *Entity) Touch(now time.Time) {
	next := time.Time(Timestamp(now))
	prev := time.Time(e.UpdatedAt)
	if !next.After(prev) {
		next = prev.Add(time.Microsecond)
	}
	e.UpdatedAt = strfmt.DateTime(next)
}

// Clone returns a deep copy of the entity.
func (e *Entity) Clone() *Entity {
	c := *e
	c.Attributes = make(map[string]string, len(e.Attributes))
	for k, v := range e.Attributes {
		c.Attributes[k] = v
	}
	c.fields = append([]string(nil), e.fields...)
	return &c
}

// ToRecord renders the entity as its persisted field map.
func (e *Entity) ToRecord() Record {
	rec := make(Record, len(e.Attributes)+4)
	for k, v := range e.Attributes {
		rec[k] = v
	}
	rec[FieldID] = e.ID
	rec[FieldCreatedAt] = FormatTimestamp(e.CreatedAt)
	rec[FieldUpdatedAt] = FormatTimestamp(e.UpdatedAt)
	rec[FieldClass] = string(e.Class)
	return rec
}

// String renders "[<Class>] (<id>) <field-map>".
func (e *Entity) String() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(string(e.Class))
	b.WriteString("] (")
	b.WriteString(e.ID)
	b.WriteString(") {")
	writePair(&b, FieldID, e.ID, true)
	writePair(&b, FieldCreatedAt, FormatTimestamp(e.CreatedAt), false)
	writePair(&b, FieldUpdatedAt, FormatTimestamp(e.UpdatedAt), false)
	for _, name := range e.Fields() {
		writePair(&b, name, e.Attributes[name], false)
	}
	b.WriteString("}")
	return b.String()
}

func writePair(b *strings.Builder, key, value string, first bool) {
	if !first {
		b.WriteString(", ")
	}
	b.WriteString(strconv.Quote(key))
	b.WriteString(": ")
	b.WriteString(strconv.Quote(value))
}

// Timestamp normalizes t to UTC at microsecond precision, the precision the
// persisted format keeps.
func Timestamp(t time.Time) strfmt.DateTime {
	return strfmt.DateTime(t.UTC().Truncate(time.Microsecond))
}

// FormatTimestamp renders dt with TimestampFormat.
func FormatTimestamp(dt strfmt.DateTime) string {
	return time.Time(dt).UTC().Format(TimestampFormat)
}

// ParseTimestamp accepts any ISO-8601 layout strfmt understands. Values
// without a zone offset are read as UTC.
func ParseTimestamp(s string) (strfmt.DateTime, error) {
	if strings.TrimSpace(s) == "" {
		return strfmt.DateTime{}, errEmptyTimestamp
	}
	dt, err := strfmt.ParseDateTime(s)
	if err != nil {
		return strfmt.DateTime{}, err
	}
	return Timestamp(time.Time(dt)), nil
}
