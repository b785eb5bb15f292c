package maincmd

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/loxlang/golox/lang/interp"
	"github.com/loxlang/golox/lang/parser"
	"github.com/loxlang/golox/lang/resolver"
	"github.com/loxlang/golox/lang/scanner"
	"github.com/mna/mainer"
)

// RunFile batch-executes the Lox script at path. Static errors suppress
// evaluation and exit 65 after the full parse and resolve; a runtime error
// abandons execution and exits 70.
func RunFile(ctx context.Context, stdio mainer.Stdio, path string) mainer.ExitCode {
	b, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return mainer.Failure
	}

	ch, perr := parser.ParseChunk(ctx, path, b)
	if perr != nil {
		scanner.PrintError(stdio.Stderr, perr)
		return exitStatic
	}

	depths, rerr := resolver.ResolveChunk(ctx, ch)
	if rerr != nil {
		scanner.PrintError(stdio.Stderr, rerr)
		return exitStatic
	}

	it := interp.New()
	it.Stdout = stdio.Stdout
	if err := it.RunChunk(ctx, ch, depths); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return exitRuntime
	}
	return mainer.Success
}

// Repl runs the read-eval-print loop until EOF on stdin. Global state and
// closures persist across lines; static and runtime errors are reported and
// the loop continues with a fresh error state on the next line.
func Repl(ctx context.Context, stdio mainer.Stdio) mainer.ExitCode {
	it := interp.New()
	it.Stdout = stdio.Stdout

	lines := bufio.NewScanner(stdio.Stdin)
	for {
		fmt.Fprint(stdio.Stdout, "> ")
		if !lines.Scan() {
			return mainer.Success
		}

		ch, perr := parser.ParseChunk(ctx, "", lines.Bytes())
		if perr != nil {
			scanner.PrintError(stdio.Stderr, perr)
			continue
		}

		depths, rerr := resolver.ResolveChunk(ctx, ch)
		if rerr != nil {
			scanner.PrintError(stdio.Stderr, rerr)
			continue
		}

		if err := it.RunChunk(ctx, ch, depths); err != nil {
			if ctx.Err() != nil {
				return mainer.Failure
			}
			// a runtime error does not terminate the session
			fmt.Fprintln(stdio.Stderr, err)
		}
	}
}
