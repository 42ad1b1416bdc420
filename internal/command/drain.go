// Package command holds the zerocopy subcommands.
package command

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
	"github.com/xDarkicex/zerocopy"
)

// Drain implements subcommands.Command for one zero-copy primitive. It
// copies standard input into a freshly created output file.
type Drain struct {
	transferer zerocopy.Transferer
	stdin      zerocopy.Source
	stdout     io.Writer
	stderr     io.Writer

	// chunkSize is left at zero outside tests.
	chunkSize int
	debug     bool
}

// NewDrain returns the command for t, reading stdin and reporting to
// stdout and stderr.
func NewDrain(t zerocopy.Transferer, stdin zerocopy.Source, stdout, stderr io.Writer) *Drain {
	return &Drain{
		transferer: t,
		stdin:      stdin,
		stdout:     stdout,
		stderr:     stderr,
	}
}

// Name implements subcommands.Command.Name.
func (d *Drain) Name() string {
	return d.transferer.Name()
}

// Synopsis implements subcommands.Command.Synopsis.
func (d *Drain) Synopsis() string {
	return fmt.Sprintf("copy standard input to OUTFILE with %s", d.transferer.Name())
}

// Usage implements subcommands.Command.Usage.
func (d *Drain) Usage() string {
	return fmt.Sprintf("%s [flags] OUTFILE\n", d.transferer.Name())
}

// SetFlags implements subcommands.Command.SetFlags.
func (d *Drain) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&d.debug, "debug", false, "log every kernel call to stderr")
}

// Execute implements subcommands.Command.Execute. It creates the output
// file, drains stdin into it and reports the byte and call counts.
func (d *Drain) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(d.stderr, "usage: %s", d.Usage())
		return subcommands.ExitUsageError
	}
	outName := f.Arg(0)

	log := d.logger()

	out, err := zerocopy.Create(outName)
	if err != nil {
		var oe *zerocopy.OpenError
		if errors.As(err, &oe) {
			fmt.Fprintf(d.stderr, "Failed to open %s: %v\n", oe.Path, oe.Err)
		} else {
			fmt.Fprintln(d.stderr, err)
		}
		return subcommands.ExitFailure
	}

	drain := zerocopy.Drain{
		Transferer: d.transferer,
		ChunkSize:  d.chunkSize,
		Log:        log.WithField("out", outName),
	}
	res, err := drain.Run(out, d.stdin)

	// The output is closed before anything is reported, on both paths.
	closeErr := out.Close()

	if err != nil {
		fmt.Fprintln(d.stderr, err)
		return subcommands.ExitFailure
	}
	if closeErr != nil {
		fmt.Fprintf(d.stderr, "Failed to close %s: %v\n", outName, closeErr)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(d.stdout, "Wrote %d bytes in %d %s %s\n",
		res.Bytes, res.Calls, d.transferer.Name(), plural(res.Calls, "call"))
	return subcommands.ExitSuccess
}

func (d *Drain) logger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(d.stderr)
	l.SetLevel(logrus.WarnLevel)
	if d.debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
