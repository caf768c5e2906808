/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package console

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/suparena/hbnb/errors"
	"github.com/suparena/hbnb/processor"
)

// DefaultPrompt is printed before each line in interactive mode.
const DefaultPrompt = "(hbnb) "

// DefaultMaxLineSize bounds the length of one input line.
const DefaultMaxLineSize = 1 << 20

// Console reads commands line by line and runs them against a Processor.
type Console struct {
	proc        *processor.Processor
	in          io.Reader
	out         io.Writer
	prompt      string
	interactive bool
	maxLineSize int
	logger      *zap.SugaredLogger
	commands    map[string]command
}

// Option configures a Console.
type Option func(*Console)

// WithInput sets the command source. Defaults to os.Stdin.
func WithInput(r io.Reader) Option {
	return func(c *Console) {
		c.in = r
	}
}

// WithOutput sets where command output goes. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Console) {
		c.out = w
	}
}

// WithPrompt sets the interactive prompt.
func WithPrompt(prompt string) Option {
	return func(c *Console) {
		c.prompt = prompt
	}
}

// WithInteractive controls whether the prompt is printed.
func WithInteractive(interactive bool) Option {
	return func(c *Console) {
		c.interactive = interactive
	}
}

// WithMaxLineSize sets the longest accepted input line in bytes.
func WithMaxLineSize(n int) Option {
	return func(c *Console) {
		if n > 0 {
			c.maxLineSize = n
		}
	}
}

// WithLogger sets the logger. The console logs under the "console" name.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Console) {
		c.logger = logger.Named("console")
	}
}

// New creates a console over proc.
func New(proc *processor.Processor, opts ...Option) *Console {
	c := &Console{
		proc:        proc,
		in:          os.Stdin,
		out:         os.Stdout,
		prompt:      DefaultPrompt,
		maxLineSize: DefaultMaxLineSize,
		logger:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.commands = c.table()
	return c
}

// Run executes lines until quit, EOF or the end of input. It returns nil in
// all three cases and the read error otherwise. A line longer than the
// maximum line size is reported and skipped.
func (c *Console) Run(ctx context.Context) error {
	reader := bufio.NewReader(c.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.interactive {
			fmt.Fprint(c.out, c.prompt)
		}
		line, tooLong, err := readLine(reader, c.maxLineSize)
		if err != nil {
			if c.interactive {
				fmt.Fprintln(c.out)
			}
			if stderrors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if tooLong {
			c.logger.Warnf("Skipped input line longer than %d bytes", c.maxLineSize)
			fmt.Fprintf(c.out, "*** Line too long: limit is %d bytes\n", c.maxLineSize)
			continue
		}
		if stop := c.Execute(ctx, line); stop {
			return nil
		}
	}
}

// readLine returns the next line without its line ending. Once a line
// exceeds limit bytes the rest of it is discarded and tooLong is set.
func readLine(r *bufio.Reader, limit int) (line string, tooLong bool, err error) {
	var buf []byte
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			if len(buf) > 0 || tooLong {
				return string(buf), tooLong, nil
			}
			return "", false, err
		}
		if !tooLong {
			if len(buf)+len(chunk) > limit {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

// Execute runs a single line and reports whether the console should stop.
func (c *Console) Execute(ctx context.Context, line string) bool {
	args := Tokenize(line)
	if len(args) == 0 {
		return false
	}

	cmd, ok := c.commands[args[0]]
	if !ok {
		fmt.Fprintf(c.out, "*** Unknown syntax: %s\n", line)
		return false
	}

	c.logger.Debugw("Executing command", "command", args[0], "args", args[1:])
	stop, err := cmd.run(ctx, args[1:])
	if err != nil {
		c.logger.Debugw("Command failed", "command", args[0], "error", err)
		fmt.Fprintln(c.out, Message(err))
	}
	return stop
}

func (c *Console) create(ctx context.Context, args []string) (bool, error) {
	id, err := c.proc.Create(ctx, arg(args, 0), rest(args, 1)...)
	if err != nil {
		return false, err
	}
	fmt.Fprintln(c.out, id)
	return false, nil
}

func (c *Console) show(ctx context.Context, args []string) (bool, error) {
	e, err := c.proc.Show(ctx, arg(args, 0), arg(args, 1))
	if err != nil {
		return false, err
	}
	fmt.Fprintln(c.out, e)
	return false, nil
}

func (c *Console) destroy(ctx context.Context, args []string) (bool, error) {
	return false, c.proc.Destroy(ctx, arg(args, 0), arg(args, 1))
}

func (c *Console) update(ctx context.Context, args []string) (bool, error) {
	_, err := c.proc.Update(ctx, arg(args, 0), arg(args, 1), arg(args, 2), arg(args, 3))
	return false, err
}

func (c *Console) all(ctx context.Context, args []string) (bool, error) {
	entities, err := c.proc.All(ctx, arg(args, 0))
	if err != nil {
		return false, err
	}
	for _, e := range entities {
		fmt.Fprintln(c.out, e)
	}
	return false, nil
}

func (c *Console) count(ctx context.Context, args []string) (bool, error) {
	n, err := c.proc.Count(ctx, arg(args, 0))
	if err != nil {
		return false, err
	}
	fmt.Fprintln(c.out, strconv.Itoa(n))
	return false, nil
}

func (c *Console) quit(context.Context, []string) (bool, error) {
	return true, nil
}

// Message renders err as the line shown to the user.
func Message(err error) string {
	var ve *errors.ValidationError
	switch {
	case stderrors.Is(err, errors.ErrClassMissing):
		return "** class name missing **"
	case stderrors.Is(err, errors.ErrClassNotFound):
		return "** class doesn't exist **"
	case stderrors.Is(err, errors.ErrIdMissing):
		return "** instance id missing **"
	case stderrors.Is(err, errors.ErrInstanceNotFound):
		return "** no instance found **"
	case stderrors.Is(err, errors.ErrAttributeMissing):
		return "** attribute name missing **"
	case stderrors.Is(err, errors.ErrValueMissing):
		return "** value missing **"
	case stderrors.Is(err, errors.ErrUnknownAttribute):
		return "** attribute doesn't exist **"
	case stderrors.As(err, &ve):
		return fmt.Sprintf("** invalid value: %s %s **", ve.Field, ve.Message)
	default:
		return fmt.Sprintf("** %v **", err)
	}
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func rest(args []string, i int) []string {
	if i < len(args) {
		return args[i:]
	}
	return nil
}
