/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package file

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/suparena/hbnb/datastore"
	"github.com/suparena/hbnb/errors"
	"github.com/suparena/hbnb/storagemodels"
)

// DefaultPath is the backing file used when none is configured.
const DefaultPath = "file.json"

var _ datastore.Backend = (*JSONFileBackend)(nil)

// JSONFileBackend keeps every record in a single JSON object keyed by
// composite key.
type JSONFileBackend struct {
	path   string
	perm   os.FileMode
	logger *zap.SugaredLogger
}

// NewJSONFileBackend constructs a backend writing to path.
func NewJSONFileBackend(path string, logger *zap.SugaredLogger) *JSONFileBackend {
	if path == "" {
		path = DefaultPath
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &JSONFileBackend{
		path:   path,
		perm:   0o644,
		logger: logger.Named("file"),
	}
}

// Name returns the file path.
func (b *JSONFileBackend) Name() string {
	return b.path
}

// Read decodes the backing file. A missing file is an empty start.
func (b *JSONFileBackend) Read(ctx context.Context) (map[string]storagemodels.Record, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			b.logger.Debugf("No store at %s, starting empty", b.path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", b.path, err)
	}
	return b.decode(data)
}

func (b *JSONFileBackend) decode(data []byte) (map[string]storagemodels.Record, error) {
	var raw map[string]map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.NewCorruptError(b.path, "", "invalid JSON", err)
	}
	if off := dec.InputOffset(); off < 0 || off > int64(len(data)) || len(bytes.TrimSpace(data[off:])) != 0 {
		return nil, errors.NewCorruptError(b.path, "", "trailing data after document", nil)
	}
	if raw == nil {
		return nil, errors.NewCorruptError(b.path, "", "document is not an object", nil)
	}

	records := make(map[string]storagemodels.Record, len(raw))
	for key, fields := range raw {
		if fields == nil {
			return nil, errors.NewCorruptError(b.path, key, "record is not an object", nil)
		}
		rec := make(storagemodels.Record, len(fields))
		for name, value := range fields {
			if value == nil {
				rec[name] = ""
				continue
			}
			s, err := cast.ToStringE(value)
			if err != nil {
				return nil, errors.NewCorruptError(b.path, key, fmt.Sprintf("field %q is not a scalar", name), err)
			}
			rec[name] = s
		}
		records[key] = rec
	}
	return records, nil
}

// Write replaces the backing file. The document is written to a temporary
// file in the same directory and renamed over the target.
func (b *JSONFileBackend) Write(ctx context.Context, records map[string]storagemodels.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = map[string]storagemodels.Record{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	dir := filepath.Dir(b.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, b.perm); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", b.path, err)
	}

	b.logger.Debugf("Wrote %d records (%d bytes) to %s", len(records), len(data), b.path)
	return nil
}
