package carbon

import "errors"

// Sentinel errors for library operations.
var (
	// Content errors.
	ErrReadSource   = errors.New("failed to read source file")
	ErrInvalidRange = errors.New("invalid line range")

	// Render errors.
	ErrNilBrowser      = errors.New("no browser configured")
	ErrBrowserLaunch   = errors.New("failed to launch browser")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")
	ErrElementNotFound = errors.New("export element not found")
	ErrScreenshot      = errors.New("screenshot capture failed")
	ErrWriteImage      = errors.New("failed to write image file")
	ErrOpenBrowser     = errors.New("failed to open browser")
)
