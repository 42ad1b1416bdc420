package command

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"
	"github.com/xDarkicex/zerocopy"
)

// transferCommands names the primitives exposed as subcommands.
var transferCommands = []string{"splice", "sendfile"}

// Main parses args, runs the selected subcommand and returns its exit
// status. args[0] is the program name; an empty args runs as "zerocopy"
// with no subcommand. Standard streams are passed in so the whole surface
// can run in-process.
func Main(ctx context.Context, args []string, stdin zerocopy.Source, stdout, stderr io.Writer) subcommands.ExitStatus {
	if len(args) == 0 {
		args = []string{"zerocopy"}
	}
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)

	cdr := subcommands.NewCommander(fs, args[0])
	cdr.Output = stdout
	cdr.Error = stderr

	// Help and flag commands.
	const helpGroup = "help"
	cdr.Register(cdr.HelpCommand(), helpGroup)
	cdr.Register(cdr.FlagsCommand(), helpGroup)
	cdr.Register(cdr.CommandsCommand(), helpGroup)

	// Transfer commands.
	const transferGroup = "transfer"
	for _, name := range transferCommands {
		t, err := zerocopy.Lookup(name)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return subcommands.ExitFailure
		}
		cdr.Register(NewDrain(t, stdin, stdout, stderr), transferGroup)
	}

	if err := fs.Parse(args[1:]); err != nil {
		return subcommands.ExitUsageError
	}
	return cdr.Execute(ctx)
}
