package carbon

import (
	"context"
	"os"
	"path/filepath"
)

// pngStub is the 8-byte PNG signature, enough for file assertions.
var pngStub = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// fakeBrowser records calls instead of driving Chrome.
type fakeBrowser struct {
	openErr    error
	captureErr error

	opened   []string
	captured []string // URLs
	dirs     []string
}

func (f *fakeBrowser) Open(url string) error {
	f.opened = append(f.opened, url)
	return f.openErr
}

func (f *fakeBrowser) Capture(_ context.Context, url, dir string) (string, error) {
	f.captured = append(f.captured, url)
	f.dirs = append(f.dirs, dir)
	if f.captureErr != nil {
		return "", f.captureErr
	}
	path := filepath.Join(dir, ImageName)
	if err := os.WriteFile(path, pngStub, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// mockScreenshotter stands in for the rod renderer.
type mockScreenshotter struct {
	result     []byte
	err        error
	calledWith string
}

func (m *mockScreenshotter) Screenshot(_ context.Context, url string) ([]byte, error) {
	m.calledWith = url
	return m.result, m.err
}
