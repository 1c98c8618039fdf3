package main

// Notes:
// - runMain: we test exit codes and the messages for the missing-file,
//   open, capture, and failure scenarios with a fake Browser. Real Chrome
//   runs are covered by the root package integration tests.
// - printFailure/hintsFor: we test that hints only appear in verbose mode and
//   that each sentinel maps to its hint.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	carbon "github.com/alnah/go-carbon"
	"github.com/alnah/go-carbon/internal/config"
	"github.com/rs/zerolog"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake browser and environment
// ---------------------------------------------------------------------------

var pngStub = []byte("\x89PNG\r\n\x1a\nstub")

// fakeBrowser records calls and writes a stub image on capture.
type fakeBrowser struct {
	mu         sync.Mutex
	openErr    error
	captureErr error
	opened     []string
	captured   []string
}

func (f *fakeBrowser) Open(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = append(f.opened, url)
	return f.openErr
}

func (f *fakeBrowser) Capture(_ context.Context, url, dir string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.captured = append(f.captured, url)
	if f.captureErr != nil {
		return "", f.captureErr
	}
	path := filepath.Join(dir, carbon.ImageName)
	if err := os.WriteFile(path, pngStub, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// browserCall records the arguments passed to the browser factory.
type browserCall struct {
	timeout  time.Duration
	selector string
}

type testEnv struct {
	*Environment
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	browser *fakeBrowser
	calls   []browserCall
}

func newTestEnv(vars map[string]string, terminal bool) *testEnv {
	te := &testEnv{
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		browser: &fakeBrowser{},
	}
	te.Environment = &Environment{
		Stdout:     te.stdout,
		Stderr:     te.stderr,
		Getenv:     func(k string) string { return vars[k] },
		IsTerminal: func(_ io.Writer) bool { return terminal },
		NewBrowser: func(timeout time.Duration, selector string, _ zerolog.Logger) carbon.Browser {
			te.calls = append(te.calls, browserCall{timeout: timeout, selector: selector})
			return te.browser
		},
	}
	return te
}

// writeSource creates a source file with lines "line 1".."line n".
func writeSource(t *testing.T, name string, n int) string {
	t.Helper()

	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestRunMain - Exit codes and messages
// ---------------------------------------------------------------------------

func TestRunMain_MissingFile(t *testing.T) {
	t.Parallel()

	te := newTestEnv(nil, false)
	code := runMain([]string{"carbon-now"}, te.Environment)

	if code != ExitFailure {
		t.Errorf("exit code = %d, want %d", code, ExitFailure)
	}
	if !strings.Contains(te.stderr.String(), "Please provide at least a file") {
		t.Errorf("stderr = %q", te.stderr.String())
	}
	if len(te.calls) != 0 {
		t.Error("browser must not be created without a file")
	}
}

func TestRunMain_HelpAndVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "help long", args: []string{"carbon-now", "--help"}, want: "Usage: carbon-now"},
		{name: "help short", args: []string{"carbon-now", "-h"}, want: "--location"},
		{name: "version", args: []string{"carbon-now", "--version"}, want: "carbon-now " + Version},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(nil, false)
			if code := runMain(tt.args, te.Environment); code != ExitSuccess {
				t.Errorf("exit code = %d, want %d", code, ExitSuccess)
			}
			if !strings.Contains(te.stdout.String(), tt.want) {
				t.Errorf("stdout %q should contain %q", te.stdout.String(), tt.want)
			}
		})
	}
}

func TestRunMain_UnknownFlag(t *testing.T) {
	t.Parallel()

	te := newTestEnv(nil, false)
	code := runMain([]string{"carbon-now", "--nope", "foo.js"}, te.Environment)

	if code != ExitFailure {
		t.Errorf("exit code = %d, want %d", code, ExitFailure)
	}
	if !strings.Contains(te.stderr.String(), "Usage: carbon-now") {
		t.Errorf("usage should be printed on stderr, got %q", te.stderr.String())
	}
}

func TestRunMain_Capture(t *testing.T) {
	t.Parallel()

	src := writeSource(t, "foo.js", 5)
	dir := t.TempDir()
	te := newTestEnv(nil, false)

	code := runMain([]string{"carbon-now", src, "-l", dir}, te.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, te.stderr.String())
	}

	out := te.stdout.String()
	for _, want := range []string{
		"Processing " + src,
		"Preparing connection",
		"Opening in browser [skipped]",
		"Fetching beautiful image",
		"Done!",
		filepath.Join(dir, carbon.ImageName),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q:\n%s", want, out)
		}
	}
	if len(te.browser.opened) != 0 {
		t.Error("capture mode must not open the browser")
	}
	if len(te.calls) != 1 || te.calls[0].timeout != carbon.DefaultTimeout || te.calls[0].selector != carbon.DefaultSelector {
		t.Errorf("browser factory calls = %+v", te.calls)
	}
	if strings.Contains(out, "1337;File=") {
		t.Error("inline image must not be written outside iTerm")
	}
}

func TestRunMain_Open(t *testing.T) {
	t.Parallel()

	src := writeSource(t, "foo.js", 5)
	dir := t.TempDir()
	te := newTestEnv(nil, false)

	code := runMain([]string{"carbon-now", src, "--open", "-l", dir}, te.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, te.stderr.String())
	}

	if len(te.browser.opened) != 1 {
		t.Fatalf("opened %d URLs, want 1", len(te.browser.opened))
	}
	if !strings.HasPrefix(te.browser.opened[0], carbon.DefaultEndpoint+"?") {
		t.Errorf("opened URL = %q", te.browser.opened[0])
	}
	if len(te.browser.captured) != 0 {
		t.Error("open mode must not capture")
	}
	if !strings.Contains(te.stdout.String(), "Browser opened") {
		t.Errorf("stdout = %q", te.stdout.String())
	}
	if _, err := os.Stat(filepath.Join(dir, carbon.ImageName)); !os.IsNotExist(err) {
		t.Error("open mode must not write carbon.png")
	}
}

func TestRunMain_OpenFailure(t *testing.T) {
	t.Parallel()

	src := writeSource(t, "foo.js", 5)
	te := newTestEnv(nil, false)
	te.browser.openErr = errors.New(`exec: "xdg-open": executable file not found in $PATH`)

	code := runMain([]string{"carbon-now", src, "--open"}, te.Environment)
	if code != ExitFailure {
		t.Errorf("exit code = %d, want %d", code, ExitFailure)
	}
	if strings.Contains(te.stdout.String(), "Browser opened") {
		t.Error("success must not be reported when the OS could not open a browser")
	}
	if !strings.Contains(te.stderr.String(), "went wrong") {
		t.Errorf("stderr = %q", te.stderr.String())
	}
}

func TestRunMain_InvalidRange(t *testing.T) {
	t.Parallel()

	src := writeSource(t, "foo.js", 20)
	te := newTestEnv(nil, false)

	code := runMain([]string{"carbon-now", src, "--start", "10", "--end", "2", "-l", t.TempDir()}, te.Environment)
	if code != ExitFailure {
		t.Errorf("exit code = %d, want %d", code, ExitFailure)
	}

	errOut := te.stderr.String()
	if !strings.Contains(errOut, "Sending code to https://carbon.now.sh went wrong") {
		t.Errorf("stderr = %q", errOut)
	}
	if strings.Contains(errOut, "hint:") {
		t.Error("hints should only appear in verbose mode")
	}
	if len(te.browser.captured)+len(te.browser.opened) != 0 {
		t.Error("browser must not be used after a content error")
	}
	if strings.Contains(te.stdout.String(), "Fetching beautiful image") {
		t.Error("later steps must not be reported after a failure")
	}
}

func TestRunMain_CaptureFailureVerbose(t *testing.T) {
	t.Parallel()

	src := writeSource(t, "foo.js", 5)
	te := newTestEnv(nil, false)
	te.browser.captureErr = fmt.Errorf("%w: %w", carbon.ErrPageLoad, context.DeadlineExceeded)

	code := runMain([]string{"carbon-now", src, "-v", "-l", t.TempDir()}, te.Environment)
	if code != ExitFailure {
		t.Errorf("exit code = %d, want %d", code, ExitFailure)
	}

	errOut := te.stderr.String()
	if !strings.Contains(errOut, "cause:") {
		t.Errorf("verbose failure should print the cause, got %q", errOut)
	}
	if !strings.Contains(errOut, "--timeout") {
		t.Errorf("verbose failure should hint at --timeout, got %q", errOut)
	}
}

func TestRunMain_Quiet(t *testing.T) {
	t.Parallel()

	src := writeSource(t, "foo.js", 5)
	dir := t.TempDir()
	te := newTestEnv(nil, false)

	code := runMain([]string{"carbon-now", src, "-q", "-l", dir}, te.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, te.stderr.String())
	}

	want := filepath.Join(dir, carbon.ImageName) + "\n"
	if te.stdout.String() != want {
		t.Errorf("stdout = %q, want %q", te.stdout.String(), want)
	}
}

func TestRunMain_InlineImage(t *testing.T) {
	t.Parallel()

	src := writeSource(t, "foo.js", 5)
	te := newTestEnv(map[string]string{"TERM_PROGRAM": "iTerm.app"}, true)

	code := runMain([]string{"carbon-now", src, "-l", t.TempDir()}, te.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, te.stderr.String())
	}
	if !strings.Contains(te.stdout.String(), "1337;File=") {
		t.Error("expected iTerm2 inline image sequence")
	}
}

func TestRunMain_Preset(t *testing.T) {
	t.Parallel()

	src := writeSource(t, "foo.js", 5)
	preset := filepath.Join(t.TempDir(), "dracula.yaml")
	content := "endpoint: https://carbon.example.com/\ntimeout: 45s\nselector: '#export'\nsettings:\n  theme: dracula\n"
	if err := os.WriteFile(preset, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	te := newTestEnv(nil, false)

	code := runMain([]string{"carbon-now", src, "-c", preset, "-l", t.TempDir()}, te.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, te.stderr.String())
	}

	if len(te.calls) != 1 || te.calls[0].timeout != 45*time.Second || te.calls[0].selector != "#export" {
		t.Errorf("browser factory calls = %+v", te.calls)
	}
	url := te.browser.captured[0]
	if !strings.HasPrefix(url, "https://carbon.example.com/?") {
		t.Errorf("URL = %q, want preset endpoint", url)
	}
	if !strings.Contains(url, "t=dracula") {
		t.Errorf("URL = %q, want preset theme", url)
	}
}

func TestRunMain_PresetNotFound(t *testing.T) {
	t.Parallel()

	src := writeSource(t, "foo.js", 5)
	te := newTestEnv(nil, false)

	code := runMain([]string{"carbon-now", src, "-c", filepath.Join(t.TempDir(), "missing.yaml")}, te.Environment)
	if code != ExitFailure {
		t.Errorf("exit code = %d, want %d", code, ExitFailure)
	}

	errOut := te.stderr.String()
	if !strings.Contains(errOut, "loading config") {
		t.Errorf("stderr = %q", errOut)
	}
	if strings.Contains(errOut, "carbon.now.sh went wrong") {
		t.Error("config errors must not print the render diagnostic")
	}
	if len(te.calls) != 0 {
		t.Error("browser must not be created when the preset fails to load")
	}
}

// ---------------------------------------------------------------------------
// TestResolveTimeout - Flag, preset, default priority
// ---------------------------------------------------------------------------

func TestResolveTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flag    time.Duration
		preset  string
		want    time.Duration
		wantErr error
	}{
		{name: "default", want: carbon.DefaultTimeout},
		{name: "preset", preset: "45s", want: 45 * time.Second},
		{name: "flag wins over preset", flag: time.Minute, preset: "45s", want: time.Minute},
		{name: "negative flag", flag: -time.Second, wantErr: ErrInvalidTimeout},
		{name: "invalid preset", preset: "soon", wantErr: config.ErrInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveTimeout(tt.flag, &config.Config{Timeout: tt.preset})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveTimeout() = %s, want %s", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHintsFor - Error to hint mapping
// ---------------------------------------------------------------------------

func TestHintsFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "range", err: fmt.Errorf("%w: %w", ErrRender, carbon.ErrInvalidRange), want: "--start"},
		{name: "location", err: carbon.ErrWriteImage, want: "--location"},
		{name: "timeout", err: fmt.Errorf("%w: %w", carbon.ErrElementNotFound, context.DeadlineExceeded), want: "--timeout"},
		{name: "config", err: &config.NotFoundError{Searched: []string{"x.yaml", "/home/u/.config/carbon-now/x.yaml"}}, want: "carbon-now/x.yaml"},
		{name: "launch", err: fmt.Errorf("%w: %w", ErrRender, carbon.ErrBrowserLaunch), want: "ROD_BROWSER_BIN"},
		{name: "open", err: fmt.Errorf("%w: %w", carbon.ErrOpenBrowser, errors.New("xdg-open not found")), want: "drop --open"},
		{name: "unknown", err: errors.New("boom"), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintsFor(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("hintsFor() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("hintsFor() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}
