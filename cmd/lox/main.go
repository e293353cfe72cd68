package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

const cliVersion = "lox 0.1.0"

// CLI is the top-level command tree. Running without a script starts the
// interactive prompt, mirroring the reference interpreter.
type CLI struct {
	Version kong.VersionFlag `short:"V" help:"Print version and exit"`

	Run    runCmd    `cmd:"" default:"withargs" help:"Run a script, or start a prompt when no script is given"`
	Repl   replCmd   `cmd:"" help:"Start an interactive prompt"`
	Ast    astCmd    `cmd:"" help:"Print the parsed syntax tree of a script"`
	Tokens tokensCmd `cmd:"" help:"Print the scanned token stream of a script"`
}

// exitError carries a process exit code out of a subcommand.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("lox"),
		kong.Description("Tree-walking interpreter for the Lox scripting language."),
		kong.UsageOnError(),
		kong.Vars{"version": cliVersion},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 64
	}

	err = ktx.Run()
	var exit *exitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exit):
		return exit.code
	default:
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
}
