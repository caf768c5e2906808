/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package hbnb_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/suparena/hbnb"
	"github.com/suparena/hbnb/config"
	"github.com/suparena/hbnb/console"
	"github.com/suparena/hbnb/processor"
	"github.com/suparena/hbnb/registry"
)

// session opens the configured store and runs script through a console.
func session(t *testing.T, cfg *config.Config, script string) string {
	t.Helper()
	ctx := context.Background()
	logger := zaptest.NewLogger(t).Sugar()
	catalog := registry.DefaultCatalog()

	store, err := hbnb.DefaultBackendManager().OpenStore(ctx, cfg, catalog, logger)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	c := console.New(processor.New(store, catalog, processor.WithLogger(logger)),
		console.WithInput(strings.NewReader(script)),
		console.WithOutput(out),
		console.WithLogger(logger),
	)
	require.NoError(t, c.Run(ctx))
	return out.String()
}

func TestSessionsShareTheFile(t *testing.T) {
	cfg := config.Default()
	cfg.FilePath = filepath.Join(t.TempDir(), "file.json")

	id := strings.TrimSpace(session(t, cfg, "create Place\n"))
	require.NotEmpty(t, id)

	out := session(t, cfg, strings.Join([]string{
		"update Place " + id + ` name "Sunny loft"`,
		"update Place " + id + " latitude 37.77",
		"show Place " + id,
		"quit",
	}, "\n"))
	assert.Contains(t, out, `"name": "Sunny loft"`)
	assert.Contains(t, out, `"latitude": "37.77"`)

	data, err := os.ReadFile(cfg.FilePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Place.`+id+`"`)

	out = session(t, cfg, "destroy Place "+id+"\ncount Place\n")
	assert.Equal(t, "0\n", out)

	out = session(t, cfg, "show Place "+id+"\n")
	assert.Equal(t, "** no instance found **\n", out)
}

func TestCreateUnknownClassLeavesFileAbsent(t *testing.T) {
	cfg := config.Default()
	cfg.FilePath = filepath.Join(t.TempDir(), "file.json")

	out := session(t, cfg, "create Bogus\n")
	assert.Equal(t, "** class doesn't exist **\n", out)

	_, err := os.Stat(cfg.FilePath)
	assert.True(t, os.IsNotExist(err), "no write should occur")
}

func TestMemoryBackendSession(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = config.BackendMemory

	out := session(t, cfg, "create State\ncreate State\ncount State\n")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "2", lines[2])
}
