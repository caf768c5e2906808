/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/suparena/hbnb/datastore/mock"
	"github.com/suparena/hbnb/errors"
	"github.com/suparena/hbnb/storagemodels"
)

func TestMockBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("AbsentUntilWritten", func(t *testing.T) {
		b := mock.New()
		records, err := b.Read(ctx)
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if records != nil {
			t.Fatalf("Expected absent mirror, got %v", records)
		}
	})

	t.Run("WriteStoresCopies", func(t *testing.T) {
		b := mock.New()
		records := map[string]storagemodels.Record{
			"User.1": {"id": "1", "__class__": "User", "email": "a@b.c"},
		}
		if err := b.Write(ctx, records); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		records["User.1"]["email"] = "changed"

		got, err := b.Read(ctx)
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if got["User.1"]["email"] != "a@b.c" {
			t.Fatal("backend must not alias written records")
		}
		got["User.1"]["email"] = "changed"
		if b.GetData()["User.1"]["email"] != "a@b.c" {
			t.Fatal("backend must not alias read records")
		}
		if b.Writes() != 1 || b.Reads() != 1 || b.Count() != 1 {
			t.Fatalf("Unexpected counters: writes=%d reads=%d count=%d", b.Writes(), b.Reads(), b.Count())
		}
	})

	t.Run("EmptyWriteIsPresent", func(t *testing.T) {
		b := mock.New()
		if err := b.Write(ctx, nil); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		got, _ := b.Read(ctx)
		if got == nil {
			t.Fatal("an empty write should leave an empty, present mirror")
		}
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		b := mock.New()

		writeErr := stderrors.New("disk full")
		b.WithWriteError(writeErr)
		if err := b.Write(ctx, nil); err != writeErr {
			t.Fatalf("Expected write error, got: %v", err)
		}
		if b.Writes() != 0 {
			t.Fatal("failed writes must not be counted")
		}

		readErr := errors.NewCorruptError("memory", "", "invalid JSON", nil)
		b.WithReadError(readErr)
		if _, err := b.Read(ctx); !errors.IsLoadCorrupt(err) {
			t.Fatalf("Expected corrupt error, got: %v", err)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		b := mock.New()
		b.SetData(map[string]storagemodels.Record{"City.1": {"id": "1"}})
		b.Clear()
		if b.Count() != 0 {
			t.Fatal("Clear should remove all data")
		}
	})
}
