/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestNewEntity(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 123456789, time.UTC)
	e := NewEntity(ClassUser, []string{"email", "password"}, now)

	if !uuidPattern.MatchString(e.ID) {
		t.Fatalf("Expected UUID v4 id, got %q", e.ID)
	}
	if e.Key() != "User."+e.ID {
		t.Fatalf("Unexpected key %q", e.Key())
	}
	if !time.Time(e.CreatedAt).Equal(time.Time(e.UpdatedAt)) {
		t.Fatal("created_at and updated_at should be equal at creation")
	}
	if got := time.Time(e.CreatedAt).Nanosecond(); got != 123456000 {
		t.Fatalf("Expected microsecond truncation, got %d ns", got)
	}
	for _, name := range []string{"email", "password"} {
		v, ok := e.Get(name)
		if !ok || v != "" {
			t.Fatalf("Expected empty default for %s, got %q (%v)", name, v, ok)
		}
	}
}

func TestEntityTouch(t *testing.T) {
	now := time.Now()
	e := NewEntity(ClassState, []string{"name"}, now)

	t.Run("ClockAdvanced", func(t *testing.T) {
		before := time.Time(e.UpdatedAt)
		e.Touch(now.Add(time.Second))
		if !time.Time(e.UpdatedAt).After(before) {
			t.Fatal("updated_at should move forward")
		}
	})

	t.Run("ClockStalled", func(t *testing.T) {
		before := time.Time(e.UpdatedAt)
		e.Touch(before)
		if !time.Time(e.UpdatedAt).After(before) {
			t.Fatal("updated_at should strictly increase even with a stalled clock")
		}
	})

	if !time.Time(e.CreatedAt).Before(time.Time(e.UpdatedAt)) {
		t.Fatal("created_at must not follow updated_at")
	}
}

func TestEntityClone(t *testing.T) {
	e := NewEntity(ClassCity, []string{"state_id", "name"}, time.Now())
	c := e.Clone()
	c.Attributes["name"] = "Lagos"

	if e.Attributes["name"] != "" {
		t.Fatal("mutating a clone must not affect the original")
	}
	if strings.Join(c.Fields(), ",") != "state_id,name" {
		t.Fatalf("clone lost field order: %v", c.Fields())
	}
}

func TestEntityString(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	e := NewEntity(ClassUser, []string{"email", "first_name"}, now)
	e.Attributes["email"] = "x@y.com"

	got := e.String()
	prefix := "[User] (" + e.ID + ") {"
	if !strings.HasPrefix(got, prefix) {
		t.Fatalf("Expected prefix %q, got %q", prefix, got)
	}
	expected := prefix +
		`"id": "` + e.ID + `", ` +
		`"created_at": "2025-03-01T10:00:00.000000Z", ` +
		`"updated_at": "2025-03-01T10:00:00.000000Z", ` +
		`"email": "x@y.com", "first_name": ""}`
	if got != expected {
		t.Fatalf("Expected %q, got %q", expected, got)
	}
}

func TestToRecord(t *testing.T) {
	e := NewEntity(ClassReview, []string{"place_id", "user_id", "text"}, time.Now())
	rec := e.ToRecord()

	if rec.Class() != ClassReview {
		t.Fatalf("Expected discriminator Review, got %q", rec.Class())
	}
	if rec[FieldID] != e.ID {
		t.Fatalf("Expected id %q, got %q", e.ID, rec[FieldID])
	}
	if len(rec) != 7 {
		t.Fatalf("Expected 7 fields, got %d: %v", len(rec), rec)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "rfc3339 micro",
			input: "2025-03-01T10:00:00.123456Z",
			want:  time.Date(2025, 3, 1, 10, 0, 0, 123456000, time.UTC),
		},
		{
			name:  "naive isoformat",
			input: "2023-10-10T12:30:45.654321",
			want:  time.Date(2023, 10, 10, 12, 30, 45, 654321000, time.UTC),
		},
		{
			name:  "offset",
			input: "2025-03-01T12:00:00+02:00",
			want:  time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimestamp failed: %v", err)
			}
			if !time.Time(got).Equal(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, time.Time(got))
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	ts := Timestamp(time.Now())
	parsed, err := ParseTimestamp(FormatTimestamp(ts))
	if err != nil {
		t.Fatalf("ParseTimestamp failed: %v", err)
	}
	if !time.Time(parsed).Equal(time.Time(ts)) {
		t.Fatalf("Round trip mismatch: %v != %v", time.Time(parsed), time.Time(ts))
	}
}

func TestSortEntities(t *testing.T) {
	base := time.Now()
	a := NewEntity(ClassUser, nil, base.Add(2*time.Second))
	b := NewEntity(ClassUser, nil, base)
	c := NewEntity(ClassUser, nil, base.Add(time.Second))

	entities := []*Entity{a, b, c}
	SortEntities(entities)

	if entities[0] != b || entities[1] != c || entities[2] != a {
		t.Fatal("entities should be ordered by created_at")
	}
}
