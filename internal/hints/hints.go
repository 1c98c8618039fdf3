// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-carbon/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// sandboxHint suggests disabling the Chrome sandbox in CI or a container,
// where it usually cannot start. Empty when not applicable.
func sandboxHint() string {
	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		return "set ROD_NO_SANDBOX=1 for Docker/CI"
	}
	return ""
}

// ForBrowserLaunch returns hints for a Chrome that could not be found,
// downloaded or started.
func ForBrowserLaunch() string {
	var hints []string

	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		hints = append(hints, "check that ROD_BROWSER_BIN="+bin+" is an executable Chrome or Chromium")
	} else {
		hints = append(hints, "install Chrome or Chromium and point ROD_BROWSER_BIN at it, or allow the first-run Chromium download")
	}

	if h := sandboxHint(); h != "" {
		hints = append(hints, h)
	}

	return formatHints(hints)
}

// ForBrowserConnect returns hints for a Chrome that started but dropped the
// DevTools connection.
func ForBrowserConnect() string {
	if h := sandboxHint(); h != "" {
		return format(h)
	}
	return format("Chrome exited right after launch; retry, or set ROD_BROWSER_BIN to another build")
}

// ForOpenBrowser returns a hint for when the OS has no default browser handler.
func ForOpenBrowser() string {
	return format("no default browser handler (xdg-open, open) was found; drop --open to save carbon.png instead")
}

// ForTimeout returns a hint about increasing timeout for slow connections.
func ForTimeout() string {
	return format("on slow connections, use --timeout (e.g. --timeout 1m)")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config with a path or creating a preset in ~/.config/carbon-now/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/preset.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "carbon-now") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForLocation returns hints for capture destination errors.
func ForLocation() string {
	return format("--location must be an existing, writable directory")
}

// ForRange returns hints for invalid line ranges.
func ForRange() string {
	return format("--start and --end are 1-based and inclusive, with start <= end")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
