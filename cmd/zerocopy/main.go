// Binary zerocopy copies standard input to a file with splice(2) or
// sendfile(2) and reports how many kernel calls it took.
//
//	zerocopy splice OUTFILE < input
//	zerocopy sendfile OUTFILE < input
package main

import (
	"context"
	"os"

	"github.com/xDarkicex/zerocopy/internal/command"
)

func main() {
	os.Exit(int(command.Main(context.Background(), os.Args, os.Stdin, os.Stdout, os.Stderr)))
}
