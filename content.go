package carbon

import (
	"fmt"
	"os"
	"strings"
)

// Default line bounds when none are given.
const (
	DefaultStartLine = 1
	DefaultEndLine   = 1000
)

// Selection identifies the lines of a source file to render.
// Lines are 1-based and the range is inclusive on both ends.
type Selection struct {
	Path  string
	Start int
	End   int
}

// NewSelection returns a selection of path with the default line bounds.
func NewSelection(path string) Selection {
	return Selection{Path: path, Start: DefaultStartLine, End: DefaultEndLine}
}

// Validate checks the bounds that can be checked without reading the file.
func (s Selection) Validate() error {
	if s.Start < 1 {
		return fmt.Errorf("%w: start line %d (must be >= 1)", ErrInvalidRange, s.Start)
	}
	if s.End < 1 {
		return fmt.Errorf("%w: end line %d (must be >= 1)", ErrInvalidRange, s.End)
	}
	if s.End < s.Start {
		return fmt.Errorf("%w: end line %d is before start line %d", ErrInvalidRange, s.End, s.Start)
	}
	return nil
}

// Prepare reads the selected file and returns the selected lines joined by
// newlines. Line content is kept byte-for-byte.
//
// An end line past the end of the file is clamped to the last line; a start
// line past the end of the file is an error.
func Prepare(sel Selection) (string, error) {
	if err := sel.Validate(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(sel.Path) // #nosec G304 -- path is the user's input file
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadSource, err)
	}

	return selectLines(string(data), sel.Start, sel.End)
}

// selectLines extracts the inclusive [start, end] range from content.
// A trailing newline terminates the last line rather than opening a new one.
func selectLines(content string, start, end int) (string, error) {
	lines := splitLines(content)

	if start > len(lines) {
		return "", fmt.Errorf("%w: start line %d is past the end of the file (%d lines)", ErrInvalidRange, start, len(lines))
	}
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[start-1:end], "\n"), nil
}

// splitLines splits content on "\n". Carriage returns stay in the lines.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}
