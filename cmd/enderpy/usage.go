package main

import "fmt"

func (c *cli) printUsage() {
	fmt.Fprintln(c.stderr, "Usage:")
	fmt.Fprintln(c.stderr, "  enderpy [global flags] check [paths]")
	fmt.Fprintln(c.stderr, "  enderpy [global flags] symbols [paths]")
	fmt.Fprintln(c.stderr, "  enderpy [global flags] ast <file.py>")
	fmt.Fprintln(c.stderr, "  enderpy [global flags] repl")
	fmt.Fprintln(c.stderr, "  enderpy version")
	fmt.Fprintln(c.stderr, "")
	fmt.Fprintln(c.stderr, "Global flags:")
	fmt.Fprintln(c.stderr, "  --config <path>      use this enderpy.yml instead of searching upwards")
	fmt.Fprintln(c.stderr, "  --log-level <level>  debug, info, warn or error")
	fmt.Fprintln(c.stderr, "  --workers <n>        number of files analyzed in parallel")
	fmt.Fprintln(c.stderr, "  --rev <revision>     read sources from a git revision instead of the working tree")
	fmt.Fprintln(c.stderr, "  --format <format>    text or json for check, yaml or json for symbols")
}
