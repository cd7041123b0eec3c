package main

import (
	"fmt"
	"io"
	"os"
)

const cliToolVersion = "enderpy 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	return newCLI(os.Stdout, os.Stderr).run(args)
}

type cli struct {
	stdout io.Writer
	stderr io.Writer
}

func newCLI(stdout, stderr io.Writer) *cli {
	return &cli{stdout: stdout, stderr: stderr}
}

func (c *cli) run(args []string) int {
	if len(args) == 0 {
		c.printUsage()
		return 1
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return 2
	}
	if len(remaining) == 0 {
		c.printUsage()
		return 1
	}

	switch remaining[0] {
	case "--help", "-h", "help":
		c.printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(c.stdout, cliToolVersion)
		return 0
	case "check":
		return c.runCheck(remaining[1:], opts)
	case "symbols":
		return c.runSymbols(remaining[1:], opts)
	case "ast":
		return c.runAST(remaining[1:], opts)
	case "repl":
		return c.runRepl(remaining[1:], opts)
	default:
		return c.runCheck(remaining, opts)
	}
}
