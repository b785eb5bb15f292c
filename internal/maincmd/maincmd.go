// Package maincmd implements the lox command-line interface: a REPL when
// called without argument, batch execution of a script otherwise.
package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
)

const binName = "lox"

var (
	usage = fmt.Sprintf("Usage: %s [script]", binName)

	longUsage = fmt.Sprintf(`usage: %s [script]
       %[1]s -h|--help
       %[1]s -v|--version

Tree-walking interpreter for the Lox programming language.

Without argument, starts a read-eval-print loop. With a script path,
executes the script and exits with one of the following codes:
       0    success
       64   usage error
       65   static (scan, parse or resolve) error
       70   runtime error
`, binName)
)

// Exit codes of the batch driver.
const (
	exitUsage   mainer.ExitCode = 64
	exitStatic  mainer.ExitCode = 65
	exitRuntime mainer.ExitCode = 70
)

// Cmd is the command-line interface of the interpreter.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	args  []string
	flags map[string]bool
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	// the argument count is validated in Main, where it maps to the usage
	// exit code instead of an invalid-arguments failure
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s\n", err, usage)
		return exitUsage
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	switch len(c.args) {
	case 0:
		return Repl(ctx, stdio)
	case 1:
		return RunFile(ctx, stdio, c.args[0])
	default:
		fmt.Fprintln(stdio.Stdout, usage)
		return exitUsage
	}
}
