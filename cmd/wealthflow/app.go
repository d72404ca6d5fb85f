package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/bobmcallan/wealthflow/internal/app"
	"github.com/bobmcallan/wealthflow/internal/common"
)

var configPath = flag.String("config", "", "Path to wealthflow.toml. Defaults to $WEALTHFLOW_CONFIG, then wealthflow.toml next to the binary.")

// Command output goes to stdout, diagnostics to stderr. Tests swap both.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// openApp loads the configured snapshot. Callers must Close the App so the
// final snapshot is flushed.
func openApp(ctx context.Context) (*app.App, error) {
	return app.NewApp(ctx, *configPath)
}

// printf writes to stdout.
func printf(format string, args ...any) {
	fmt.Fprintf(stdout, format, args...)
}

// errorf writes to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintf(stderr, format, args...)
}

// parseAmount parses a decimal flag value. An empty value is an error.
func parseAmount(name, value string) (decimal.Decimal, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if value == "" {
		return decimal.Zero, fmt.Errorf("-%s is required", name)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid -%s %q: %w", name, value, err)
	}
	return d, nil
}

// optionalAmount parses value, treating empty as zero.
func optionalAmount(name, value string) (decimal.Decimal, error) {
	if strings.TrimSpace(value) == "" {
		return decimal.Zero, nil
	}
	return parseAmount(name, value)
}

// flagsSet returns the names of the flags given on the command line.
func flagsSet(f *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return set
}

type versionCmd struct{}

func (*versionCmd) Name() string     { return "version" }
func (*versionCmd) Synopsis() string { return "print the version" }
func (*versionCmd) Usage() string    { return "wealthflow version\n" }
func (*versionCmd) SetFlags(*flag.FlagSet) {}

func (*versionCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	printf("wealthflow %s\n", common.GetFullVersion())
	return subcommands.ExitSuccess
}
