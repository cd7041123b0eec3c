package main

import (
	"fmt"
	"strconv"
	"strings"
)

type globalOptions struct {
	configPath string
	logLevel   string
	workers    int
	rev        string
	format     string
}

var valueFlags = map[string]struct{}{
	"--config":    {},
	"--log-level": {},
	"--workers":   {},
	"--rev":       {},
	"--format":    {},
}

// parseGlobalFlags pulls the global flags out of args wherever they appear
// before `--`, returning the rest in order.
func parseGlobalFlags(args []string) (globalOptions, []string, error) {
	var opts globalOptions
	remaining := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			remaining = append(remaining, args[i+1:]...)
			break
		}
		name, value, hasValue := strings.Cut(arg, "=")
		if _, ok := valueFlags[name]; !ok {
			remaining = append(remaining, arg)
			continue
		}
		if !hasValue {
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("%s expects a value", name)
			}
			value = args[i+1]
			i++
		}
		if err := opts.set(name, value); err != nil {
			return opts, nil, err
		}
	}
	return opts, remaining, nil
}

func (o *globalOptions) set(name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%s expects a value", name)
	}
	switch name {
	case "--config":
		o.configPath = value
	case "--log-level":
		o.logLevel = value
	case "--workers":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("--workers expects a positive integer, got '%s'", value)
		}
		o.workers = n
	case "--rev":
		o.rev = value
	case "--format":
		switch strings.ToLower(value) {
		case "text", "json", "yaml":
			o.format = strings.ToLower(value)
		default:
			return fmt.Errorf("unknown --format value '%s' (expected text, json or yaml)", value)
		}
	}
	return nil
}
