package carbon

import (
	"context"
	"fmt"
	"path/filepath"
)

// ImageName is the file written into the destination directory on capture.
const ImageName = "carbon.png"

// Browser is the capability the renderer is reached through.
//
// Open hands url to the user's browser and returns once the request was
// accepted. Capture loads url headlessly, screenshots the rendered export
// element, writes it to dir/carbon.png, and returns the written path.
type Browser interface {
	Open(url string) error
	Capture(ctx context.Context, url, dir string) (string, error)
}

// Outcome is the result of a successful render.
type Outcome struct {
	Opened    bool   // the URL was handed to a browser
	ImagePath string // absolute path of the captured image, capture mode only
}

// Orchestrator sends a built URL to exactly one of the browser modes.
type Orchestrator struct {
	Browser Browser
}

// Render opens url when open is true and captures it into location otherwise.
// An empty location means the current working directory.
func (o *Orchestrator) Render(ctx context.Context, url string, open bool, location string) (Outcome, error) {
	if open {
		return o.Open(url)
	}
	return o.Capture(ctx, url, location)
}

// Open hands url to the browser. No file is written.
func (o *Orchestrator) Open(url string) (Outcome, error) {
	if o.Browser == nil {
		return Outcome{}, ErrNilBrowser
	}
	if err := o.Browser.Open(url); err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrOpenBrowser, err)
	}
	return Outcome{Opened: true}, nil
}

// Capture writes the rendered image into location.
func (o *Orchestrator) Capture(ctx context.Context, url, location string) (Outcome, error) {
	if o.Browser == nil {
		return Outcome{}, ErrNilBrowser
	}

	dir, err := resolveLocation(location)
	if err != nil {
		return Outcome{}, err
	}

	path, err := o.Browser.Capture(ctx, url, dir)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{ImagePath: path}, nil
}

// resolveLocation returns location as an absolute directory path.
func resolveLocation(location string) (string, error) {
	if location == "" {
		location = "."
	}
	dir, err := filepath.Abs(location)
	if err != nil {
		return "", fmt.Errorf("%w: resolving %q: %w", ErrWriteImage, location, err)
	}
	return dir, nil
}
