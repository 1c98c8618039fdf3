package main

import (
	"io"
	"os"
	"time"

	carbon "github.com/alnah/go-carbon"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// BrowserFactory builds the Browser used for one run.
type BrowserFactory func(timeout time.Duration, selector string, logger zerolog.Logger) carbon.Browser

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout     io.Writer
	Stderr     io.Writer
	Getenv     func(string) string
	IsTerminal func(io.Writer) bool
	NewBrowser BrowserFactory
}

// DefaultEnv returns the production environment backed by headless Chrome.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Getenv:     os.Getenv,
		IsTerminal: isTerminal,
		NewBrowser: newRodBrowser,
	}
}

func newRodBrowser(timeout time.Duration, selector string, logger zerolog.Logger) carbon.Browser {
	return carbon.NewRodBrowser(
		carbon.WithTimeout(timeout),
		carbon.WithSelector(selector),
		carbon.WithLogger(logger),
	)
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- fd fits in int
}
