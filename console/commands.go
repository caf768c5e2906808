/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package console

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, args []string) (bool, error)
}

func (c *Console) table() map[string]command {
	return map[string]command{
		"create": {
			usage: "create <class>",
			help:  "Creates a new instance of <class>, saves it and prints its id.",
			run:   c.create,
		},
		"show": {
			usage: "show <class> <id>",
			help:  "Prints the string representation of an instance.",
			run:   c.show,
		},
		"destroy": {
			usage: "destroy <class> <id>",
			help:  "Deletes an instance and saves the change.",
			run:   c.destroy,
		},
		"update": {
			usage: `update <class> <id> <attribute> "<value>"`,
			help:  "Sets one attribute of an instance and saves the change.\nid, created_at and updated_at cannot be changed.",
			run:   c.update,
		},
		"all": {
			usage: "all [<class>]",
			help:  "Prints every instance, or every instance of <class>.",
			run:   c.all,
		},
		"count": {
			usage: "count <class>",
			help:  "Prints the number of instances of <class>.",
			run:   c.count,
		},
		"help": {
			usage: "help [<command>]",
			help:  "Lists the available commands or describes one.",
			run:   c.help,
		},
		"quit": {
			usage: "quit",
			help:  "Quit command to exit the program.",
			run:   c.quit,
		},
		"EOF": {
			usage: "EOF",
			help:  "Exits the program at the end of input.",
			run:   c.quit,
		},
	}
}

func (c *Console) help(_ context.Context, args []string) (bool, error) {
	if name := arg(args, 0); name != "" {
		cmd, ok := c.commands[name]
		if !ok {
			fmt.Fprintf(c.out, "*** No help on %s\n", name)
			return false, nil
		}
		fmt.Fprintf(c.out, "Usage: %s\n%s\n", cmd.usage, cmd.help)
		return false, nil
	}

	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	header := "Documented commands (type help <topic>):"
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, header)
	fmt.Fprintln(c.out, strings.Repeat("=", len(header)))
	fmt.Fprintln(c.out, strings.Join(names, "  "))
	fmt.Fprintln(c.out)
	return false, nil
}
