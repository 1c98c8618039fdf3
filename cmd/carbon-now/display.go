package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BourgeoisBear/rasterm"
)

// supportsInlineImages reports whether the terminal understands the iTerm2
// inline image protocol.
func supportsInlineImages(env *Environment) bool {
	return strings.Contains(env.Getenv("TERM_PROGRAM"), "iTerm") && env.IsTerminal(env.Stdout)
}

// displayImage streams the PNG at path to w as an iTerm2 inline image.
func displayImage(w io.Writer, path string) error {
	f, err := os.Open(path) // #nosec G304 -- path was written by this process
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	if err := rasterm.ItermCopyFileInline(w, f, info.Size()); err != nil {
		return fmt.Errorf("writing inline image: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
