package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], DefaultEnv())
	stop()

	if errors.Is(err, flag.ErrHelp) {
		os.Exit(ExitSuccess)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v%s\n", err, hintFor(err, configNameFromArgs(os.Args[1:])))
		os.Exit(exitCodeFor(err))
	}
}

// configNameFromArgs recovers the --config value for hints after a failed run.
func configNameFromArgs(args []string) string {
	flags, _, err := parseFlags(args, io.Discard)
	if err != nil || flags.common.config == "" {
		return os.Getenv("GLOSSARYTIPS_CONFIG")
	}
	return flags.common.config
}
