package carbon

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pkg/browser"
	"github.com/rs/zerolog"

	"github.com/alnah/go-carbon/internal/fileutil"
	"github.com/alnah/go-carbon/internal/process"
)

// Capture defaults.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultSelector  = "#export-container"
	stableDuration   = 300 * time.Millisecond
	imagePermissions = 0o644 // rw-r--r--
)

// screenshotter abstracts headless capture to enable testing without a browser.
type screenshotter interface {
	Screenshot(ctx context.Context, url string) ([]byte, error)
}

// Compile-time interface checks
var (
	_ Browser       = (*RodBrowser)(nil)
	_ screenshotter = (*rodRenderer)(nil)
)

// RodBrowser implements Browser with go-rod.
// Rod automatically downloads Chromium on first run if not found.
type RodBrowser struct {
	renderer screenshotter
	open     func(url string) error
	logger   zerolog.Logger
}

// BrowserOption configures a RodBrowser.
type BrowserOption func(*browserConfig)

type browserConfig struct {
	timeout  time.Duration
	selector string
	logger   zerolog.Logger
}

// WithTimeout bounds a whole capture, from browser launch to screenshot.
func WithTimeout(d time.Duration) BrowserOption {
	return func(c *browserConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithSelector sets the CSS selector of the element to capture.
func WithSelector(selector string) BrowserOption {
	return func(c *browserConfig) {
		if selector != "" {
			c.selector = selector
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l zerolog.Logger) BrowserOption {
	return func(c *browserConfig) {
		c.logger = l
	}
}

// NewRodBrowser returns a RodBrowser with the given options applied.
func NewRodBrowser(opts ...BrowserOption) *RodBrowser {
	cfg := browserConfig{
		timeout:  DefaultTimeout,
		selector: DefaultSelector,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &RodBrowser{
		renderer: &rodRenderer{
			timeout:  cfg.timeout,
			selector: cfg.selector,
			logger:   cfg.logger,
		},
		open:   browser.OpenURL,
		logger: cfg.logger,
	}
}

// Open hands url to the default browser through the OS (xdg-open, open,
// rundll32). It returns once the OS accepted the request, without waiting
// for the page.
func (b *RodBrowser) Open(url string) error {
	b.logger.Debug().Int("url_length", len(url)).Msg("opening default browser")
	return b.open(url)
}

// Capture screenshots the export element of url into dir/carbon.png.
// The image is written to a temporary file first and renamed into place, so
// a failed capture never leaves a partial image behind.
func (b *RodBrowser) Capture(ctx context.Context, url, dir string) (string, error) {
	if !fileutil.IsDir(dir) {
		return "", fmt.Errorf("%w: %s is not a directory", ErrWriteImage, dir)
	}

	start := time.Now()
	buf, err := b.renderer.Screenshot(ctx, url)
	if err != nil {
		return "", err
	}
	b.logger.Debug().Dur("elapsed", time.Since(start)).Int("bytes", len(buf)).Msg("captured export element")

	path := filepath.Join(dir, ImageName)
	if err := writeFileAtomic(path, buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteImage, err)
	}
	return path, nil
}

// writeFileAtomic writes data to a temporary sibling of path and renames it.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".carbon-*.png")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	// #nosec G302 -- images are meant to be shared
	if err := os.Chmod(tmpPath, imagePermissions); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return err
	}
	return nil
}

// rodRenderer drives one headless Chrome per capture.
type rodRenderer struct {
	timeout  time.Duration
	selector string
	logger   zerolog.Logger
}

// Screenshot loads url, waits for the export element to settle, and returns
// it as PNG bytes. The browser is closed and its process killed on every
// return path.
func (r *rodRenderer) Screenshot(ctx context.Context, url string) ([]byte, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	l := newLauncher(ctx)
	controlURL, err := l.Launch()
	if err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("%w: %w", ErrBrowserLaunch, err)
	}
	defer release(l)

	chrome := rod.New().ControlURL(controlURL).Context(ctx)
	if err := chrome.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBrowserConnect, err)
	}
	defer func() { _ = chrome.Close() }()

	page, err := chrome.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageLoad, err)
	}
	r.logger.Debug().Msg("page loaded")

	el, err := page.Element(r.selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrElementNotFound, r.selector, err)
	}
	if err := el.WaitVisible(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrElementNotFound, r.selector, err)
	}
	if err := el.WaitStable(stableDuration); err != nil {
		return nil, fmt.Errorf("%w: waiting for render: %w", ErrScreenshot, err)
	}

	buf, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScreenshot, err)
	}
	return buf, nil
}

// newLauncher configures Chrome from the environment. ctx bounds the launch,
// including rod's first-run Chromium download.
func newLauncher(ctx context.Context) *launcher.Launcher {
	l := launcher.New().Context(ctx)

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	return l
}

// release stops Chrome and removes its profile directory.
func release(l *launcher.Launcher) {
	if pid := l.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	l.Kill()
	l.Cleanup()
}
