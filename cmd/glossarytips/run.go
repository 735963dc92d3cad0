package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/phuslu/log"

	glossary "github.com/alnah/go-glossary"
	"github.com/alnah/go-glossary/internal/config"
	"github.com/alnah/go-glossary/internal/course"
	"github.com/alnah/go-glossary/internal/logging"
	"github.com/alnah/go-glossary/internal/metrics"
)

// Sentinel errors for CLI operations.
var (
	ErrInvalidFlags   = errors.New("invalid flags")
	ErrUnexpectedArgs = errors.New("unexpected arguments")
	ErrPartialRun     = errors.New("some pages failed")
	ErrWriteMetrics   = errors.New("failed to write metrics file")
)

// run executes one glossary run. args exclude the program name.
func run(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseFlags(args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFlags, err)
	}
	if flags.common.version {
		fmt.Fprintf(env.Stdout, "glossarytips %s\n", Version)
		return nil
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: %s", ErrUnexpectedArgs, strings.Join(positional, " "))
	}

	cfg, err := resolveConfig(flags, env)
	if err != nil {
		return err
	}

	order, err := glossary.ParseTermOrder(cfg.Glossary.Order)
	if err != nil {
		return err
	}

	logger := newLogger(cfg, env, !flags.output.noColor)
	store, err := env.NewStore(cfg, logger)
	if err != nil {
		return err
	}

	m := metrics.New()
	ropts := []course.RunnerOption{
		course.WithEnricher(glossary.NewEnricher(glossary.WithTermOrder(order))),
		course.WithLogger(logger),
		course.WithMetrics(m),
	}
	if flags.output.printHTML {
		ropts = append(ropts, course.WithChangeHook(newPreviewHook(env.Stdout, !flags.output.noColor)))
	}

	runner, err := course.NewRunner(store, course.Options{
		CourseID:     cfg.Course.ID.String(),
		GlossaryPage: cfg.Course.GlossaryPage,
		DryRun:       flags.output.dryRun,
	}, ropts...)
	if err != nil {
		return err
	}

	g, err := loadGlossary(ctx, cfg, runner)
	switch {
	case errors.Is(err, course.ErrGlossaryPageNotFound):
		// A missing glossary page is not fatal: there is simply nothing to apply
		logger.Warn().Str("page", cfg.Course.GlossaryPage).Msg("glossary page not found")
		g = glossary.New()
	case err != nil:
		return err
	}

	report := &course.Report{}
	if g.Len() == 0 {
		logger.Warn().Msg("glossary is empty, no pages to update")
	} else {
		report, err = runner.Run(ctx, g)
		if err != nil {
			return err
		}
	}

	if path := flags.output.metricsFile; path != "" {
		if err := m.WriteTextfile(path); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteMetrics, err)
		}
	}

	if !flags.common.quiet {
		printSummary(env, report, flags.output.dryRun)
	}

	if report.Failed() {
		return fmt.Errorf("%w: %d page(s): %w", ErrPartialRun, len(report.Failures), report.Failures[0])
	}
	return nil
}

// resolveConfig builds the validated config.
// Precedence: CLI flags > env vars > config file > defaults.
func resolveConfig(flags *cliFlags, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	cfg := config.DefaultConfig()
	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the run logger writing to stderr.
func newLogger(cfg *config.Config, env *Environment, color bool) *log.Logger {
	if cfg.Log.Format == "json" {
		return logging.NewJSON(cfg.Log.Level, env.Stderr)
	}
	return logging.New(cfg.Log.Level, env.Stderr, color)
}

// printSummary prints the user-visible outcome of a run.
func printSummary(env *Environment, report *course.Report, dryRun bool) {
	if dryRun {
		fmt.Fprintf(env.Stdout, "Would update %d pages.\n", report.Updated)
	} else {
		fmt.Fprintf(env.Stdout, "Updated %d pages.\n", report.Updated)
	}
	for _, f := range report.Failures {
		fmt.Fprintf(env.Stderr, "  failed: %v\n", f)
	}
}
