package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	carbon "github.com/alnah/go-carbon"
	"github.com/alnah/go-carbon/internal/config"
	"github.com/alnah/go-carbon/internal/hints"
	"github.com/rs/zerolog"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no file specified")
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrRender         = errors.New("sending code to carbon failed")
)

// runMain parses args, runs the pipeline and returns the process exit code.
func runMain(args []string, env *Environment) int {
	flags, positional, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n\n", err)
		printUsage(env.Stderr)
		return ExitFailure
	}

	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "carbon-now %s\n", Version)
		return ExitSuccess
	}

	if len(positional) == 0 {
		printMissingFile(env.Stderr)
		return exitCodeFor(ErrNoInput)
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := run(ctx, positional[0], flags, env); err != nil {
		printFailure(env.Stderr, err, flags.verbose)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// run loads the preset, executes the pipeline for path and prints the result.
func run(ctx context.Context, path string, flags *cliFlags, env *Environment) error {
	logger := newLogger(env, flags.verbose)

	cfg := config.DefaultConfig()
	if flags.config != "" {
		var err error
		cfg, err = config.LoadConfig(flags.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		logger.Debug().Str("config", flags.config).Msg("preset loaded")
	}

	timeout, err := resolveTimeout(flags.timeout, cfg)
	if err != nil {
		return err
	}

	selector := cfg.Selector
	if selector == "" {
		selector = carbon.DefaultSelector
	}

	p := carbon.NewPipeline(env.NewBrowser(timeout, selector, logger))
	if cfg.Endpoint != "" {
		p.Endpoint = cfg.Endpoint
	}
	p.Settings = cfg.Apply(p.Settings)
	p.Logger = logger

	opts := carbon.Options{
		Selection: carbon.Selection{Path: path, Start: flags.start, End: flags.end},
		Open:      flags.open,
		Location:  flags.location,
	}

	start := time.Now()
	out, err := p.Execute(ctx, opts, progressReporter(env, flags.quiet))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	logger.Debug().Dur("elapsed", time.Since(start)).Msg("pipeline finished")

	printSuccess(env, out, flags.quiet, logger)
	return nil
}

// resolveTimeout picks the capture timeout: flag, then preset, then default.
func resolveTimeout(flagValue time.Duration, cfg *config.Config) (time.Duration, error) {
	if flagValue < 0 {
		return 0, fmt.Errorf("%w: must be positive, got %s", ErrInvalidTimeout, flagValue)
	}
	if flagValue > 0 {
		return flagValue, nil
	}

	d, err := cfg.TimeoutDuration()
	if err != nil {
		return 0, err
	}
	if d > 0 {
		return d, nil
	}
	return carbon.DefaultTimeout, nil
}

// newLogger returns a console logger on stderr in verbose mode and a
// disabled logger otherwise.
func newLogger(env *Environment, verbose bool) zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: env.Stderr, TimeFormat: time.TimeOnly}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
}

// progressReporter prints one line per pipeline step unless quiet.
func progressReporter(env *Environment, quiet bool) carbon.Reporter {
	if quiet {
		return nil
	}
	return func(title string, skipped bool) {
		if skipped {
			fmt.Fprintf(env.Stdout, "  ↓ %s [skipped]\n", title)
			return
		}
		fmt.Fprintf(env.Stdout, "  › %s\n", title)
	}
}

// printSuccess reports where the result went. In quiet mode only the image
// path is printed.
func printSuccess(env *Environment, out carbon.Outcome, quiet bool, logger zerolog.Logger) {
	if quiet {
		if !out.Opened {
			fmt.Fprintln(env.Stdout, out.ImagePath)
		}
		return
	}

	fmt.Fprintln(env.Stdout)
	fmt.Fprintln(env.Stdout, "  Done!")
	fmt.Fprintln(env.Stdout)

	if out.Opened {
		fmt.Fprintln(env.Stdout, "  Browser opened, finish your image there!")
		return
	}

	fmt.Fprintf(env.Stdout, "  The file can be found here: %s\n", out.ImagePath)

	if supportsInlineImages(env) {
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "  iTerm2 should display the image below.")
		fmt.Fprintln(env.Stdout)
		if err := displayImage(env.Stdout, out.ImagePath); err != nil {
			logger.Debug().Err(err).Msg("inline image skipped")
		}
	}
}

// printFailure prints the diagnostic for err. Render failures get the fixed
// carbon diagnostic; the cause and hints are only shown in verbose mode.
func printFailure(w io.Writer, err error, verbose bool) {
	if errors.Is(err, ErrRender) {
		printRenderFailure(w)
	} else {
		fmt.Fprintf(w, "\n  Error: %v\n", err)
	}

	if verbose {
		if errors.Is(err, ErrRender) {
			fmt.Fprintf(w, "\n  cause: %v", err)
		}
		fmt.Fprintln(w, hintsFor(err))
	}
}

// hintsFor returns actionable hints matching err, or "".
func hintsFor(err error) string {
	var nf *config.NotFoundError
	switch {
	case errors.As(err, &nf):
		return hints.ForConfigNotFound(nf.Searched)
	case errors.Is(err, carbon.ErrInvalidRange):
		return hints.ForRange()
	case errors.Is(err, carbon.ErrWriteImage):
		return hints.ForLocation()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, carbon.ErrBrowserLaunch):
		return hints.ForBrowserLaunch()
	case errors.Is(err, carbon.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, carbon.ErrOpenBrowser):
		return hints.ForOpenBrowser()
	}
	return ""
}
