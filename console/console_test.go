/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package console

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/hbnb/datastore"
	"github.com/suparena/hbnb/datastore/mock"
	"github.com/suparena/hbnb/errors"
	"github.com/suparena/hbnb/processor"
	"github.com/suparena/hbnb/registry"
)

type harness struct {
	console *Console
	out     *bytes.Buffer
	backend *mock.Backend
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	backend := mock.New()
	catalog := registry.DefaultCatalog()
	proc := processor.New(datastore.New(backend, catalog), catalog)
	out := &bytes.Buffer{}
	return &harness{
		console: New(proc, append([]Option{WithOutput(out)}, opts...)...),
		out:     out,
		backend: backend,
	}
}

// exec runs one line and returns what it printed, without the trailing newline.
func (h *harness) exec(t *testing.T, line string) string {
	t.Helper()
	h.out.Reset()
	assert.False(t, h.console.Execute(context.Background(), line), "%q should not stop the console", line)
	return strings.TrimRight(h.out.String(), "\n")
}

func TestScenario(t *testing.T) {
	h := newHarness(t)

	id := h.exec(t, "create User")
	require.Regexp(t, `^[0-9a-f-]{36}$`, id)

	show := h.exec(t, "show User "+id)
	assert.True(t, strings.HasPrefix(show, fmt.Sprintf("[User] (%s) ", id)), show)

	assert.Empty(t, h.exec(t, "update User "+id+" email x@y.com"))
	assert.Contains(t, h.exec(t, "show User "+id), `"email": "x@y.com"`)

	assert.Empty(t, h.exec(t, `update User `+id+` first_name "Betty Holberton"`))
	assert.Contains(t, h.exec(t, "show User "+id), `"first_name": "Betty Holberton"`)

	assert.Equal(t, "1", h.exec(t, "count User"))
	assert.Empty(t, h.exec(t, "destroy User "+id))
	assert.Equal(t, "** no instance found **", h.exec(t, "show User "+id))
	assert.Equal(t, "0", h.exec(t, "count User"))
	assert.NotContains(t, h.exec(t, "all User"), id)
}

func TestMessages(t *testing.T) {
	h := newHarness(t)
	placeID := h.exec(t, "create Place")

	tests := []struct {
		line string
		want string
	}{
		{"create", "** class name missing **"},
		{"create Bogus", "** class doesn't exist **"},
		{"show", "** class name missing **"},
		{"show User", "** instance id missing **"},
		{"show Bogus 1", "** class doesn't exist **"},
		{"show User 1", "** no instance found **"},
		{"destroy", "** class name missing **"},
		{"destroy User", "** instance id missing **"},
		{"destroy Bogus 1", "** class doesn't exist **"},
		{"destroy User 1", "** no instance found **"},
		{"update", "** class name missing **"},
		{"update User", "** instance id missing **"},
		{"update User 1", "** attribute name missing **"},
		{"update User 1 email", "** value missing **"},
		{"update Bogus 1 email x", "** class doesn't exist **"},
		{"update User 1 email x", "** no instance found **"},
		{"update Place " + placeID + " colour red", "** attribute doesn't exist **"},
		{"update Place " + placeID + " max_guest many", "** invalid value: max_guest must be an integer **"},
		{"all Bogus", "** class doesn't exist **"},
		{"count", "** class name missing **"},
		{"count Bogus", "** class doesn't exist **"},
		{"frobnicate User", "*** Unknown syntax: frobnicate User"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, h.exec(t, tt.line))
		})
	}
	assert.Equal(t, 1, h.backend.Writes(), "only the create should have written")
}

func TestMessageFallback(t *testing.T) {
	assert.Equal(t, "** disk full **", Message(fmt.Errorf("disk full")))
	assert.Equal(t, "** no instance found **", Message(errors.NewNotFoundError("User", "User.1")))
}

func TestPersistFailureIsReported(t *testing.T) {
	h := newHarness(t)
	h.backend.WithWriteError(fmt.Errorf("disk full"))

	msg := h.exec(t, "create User")
	assert.True(t, strings.HasPrefix(msg, "** "), msg)
	assert.True(t, strings.HasSuffix(msg, "disk full **"), msg)
	assert.Equal(t, "0", h.exec(t, "count User"))
}

func TestAllOutput(t *testing.T) {
	h := newHarness(t)
	a := h.exec(t, "create Amenity")
	s := h.exec(t, "create State")

	lines := strings.Split(h.exec(t, "all"), "\n")
	assert.Len(t, lines, 2)

	amenities := h.exec(t, "all Amenity")
	assert.Contains(t, amenities, a)
	assert.NotContains(t, amenities, s)
}

func TestEmptyLineAndHelp(t *testing.T) {
	h := newHarness(t)

	assert.Empty(t, h.exec(t, ""))
	assert.Empty(t, h.exec(t, "   "))

	listing := h.exec(t, "help")
	for _, name := range []string{"EOF", "all", "count", "create", "destroy", "help", "quit", "show", "update"} {
		assert.Contains(t, listing, name)
	}
	assert.Contains(t, h.exec(t, "help quit"), "Quit command to exit the program.")
	assert.Equal(t, "*** No help on nope", h.exec(t, "help nope"))
}

func TestRun(t *testing.T) {
	t.Run("QuitStops", func(t *testing.T) {
		h := newHarness(t, WithInput(strings.NewReader("create State\nquit\ncreate State\n")))
		require.NoError(t, h.console.Run(context.Background()))
		assert.Equal(t, 1, h.backend.Writes(), "lines after quit must not run")
	})

	t.Run("EOFCommandStops", func(t *testing.T) {
		h := newHarness(t, WithInput(strings.NewReader("EOF\ncreate State\n")))
		require.NoError(t, h.console.Run(context.Background()))
		assert.Equal(t, 0, h.backend.Writes())
	})

	t.Run("EndOfInput", func(t *testing.T) {
		h := newHarness(t, WithInput(strings.NewReader("create City\ncount City")))
		require.NoError(t, h.console.Run(context.Background()))
		lines := strings.Split(strings.TrimSpace(h.out.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "1", lines[1])
	})

	t.Run("NoPromptWhenPiped", func(t *testing.T) {
		h := newHarness(t, WithInput(strings.NewReader("count User\n")))
		require.NoError(t, h.console.Run(context.Background()))
		assert.Equal(t, "0\n", h.out.String())
	})

	t.Run("PromptWhenInteractive", func(t *testing.T) {
		h := newHarness(t,
			WithInput(strings.NewReader("count User\nquit\n")),
			WithInteractive(true),
			WithPrompt("> "),
		)
		require.NoError(t, h.console.Run(context.Background()))
		assert.Equal(t, "> 0\n> ", h.out.String())
	})

	t.Run("LongLine", func(t *testing.T) {
		h := newHarness(t)
		id := h.exec(t, "create Review")
		text := strings.Repeat("a", 70000)

		h.out.Reset()
		h.console.in = strings.NewReader("update Review " + id + " text \"" + text + "\"\ncount Review\n")
		require.NoError(t, h.console.Run(context.Background()))
		assert.Equal(t, "1\n", h.out.String())
		assert.Contains(t, h.exec(t, "show Review "+id), text)
	})

	t.Run("OversizedLineIsSkipped", func(t *testing.T) {
		h := newHarness(t,
			WithMaxLineSize(64),
			WithInput(strings.NewReader("create " + strings.Repeat("X", 200) + "\ncreate State\ncount State\n")),
		)
		require.NoError(t, h.console.Run(context.Background()))

		lines := strings.Split(strings.TrimSpace(h.out.String()), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "*** Line too long: limit is 64 bytes", lines[0])
		assert.Equal(t, "1", lines[2])
		assert.Equal(t, 1, h.backend.Writes())
	})

	t.Run("OversizedLastLine", func(t *testing.T) {
		h := newHarness(t,
			WithMaxLineSize(16),
			WithInput(strings.NewReader("count State\n" + strings.Repeat("y", 5000))),
		)
		require.NoError(t, h.console.Run(context.Background()))
		assert.Equal(t, "0\n*** Line too long: limit is 16 bytes\n", h.out.String())
	})

	t.Run("CancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		h := newHarness(t, WithInput(strings.NewReader("create User\n")))
		assert.ErrorIs(t, h.console.Run(ctx), context.Canceled)
		assert.Equal(t, 0, h.backend.Writes())
	})
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"create User", []string{"create", "User"}},
		{"  show\tUser   1 ", []string{"show", "User", "1"}},
		{`update User 1 first_name "Betty Holberton"`, []string{"update", "User", "1", "first_name", "Betty Holberton"}},
		{`update User 1 name ""`, []string{"update", "User", "1", "name", ""}},
		{`update User 1 name "say \"hi\""`, []string{"update", "User", "1", "name", `say "hi"`}},
		{`update User 1 name "open ended`, []string{"update", "User", "1", "name", "open ended"}},
		{`a"b c"d`, []string{"ab cd"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.line))
		})
	}
}
