package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	carbon "github.com/alnah/go-carbon"
	"github.com/alnah/go-carbon/internal/fileutil"
	"github.com/alnah/go-carbon/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxURLLength      = 2048 // Browser limit
	MaxNameLength     = 64   // Theme, font family, window theme
	MaxColorLength    = 64   // "red", "#ADB7C1", "rgba(171, 184, 195, 1)"
	MaxLengthValue    = 16   // "18px", "48px"
	MaxSelectorLength = 256  // CSS selector
	MaxExportScale    = 4
)

// appDir is the directory under the user config dir searched for presets.
const appDir = "carbon-now"

// Config is a preset file. Zero values mean "keep the default".
type Config struct {
	Endpoint string         `yaml:"endpoint"` // Renderer URL
	Timeout  string         `yaml:"timeout"`  // Capture timeout, e.g. "45s"
	Selector string         `yaml:"selector"` // Element captured in the rendered page
	Settings SettingsConfig `yaml:"settings"`
}

// SettingsConfig overrides presentation settings. Booleans are pointers so
// an explicit false can be told apart from an omitted key.
type SettingsConfig struct {
	Theme             string `yaml:"theme"`
	Background        string `yaml:"background"`
	WindowTheme       string `yaml:"windowTheme"`
	WindowControls    *bool  `yaml:"windowControls"`
	FontFamily        string `yaml:"fontFamily"`
	FontSize          string `yaml:"fontSize"`
	LineNumbers       *bool  `yaml:"lineNumbers"`
	DropShadow        *bool  `yaml:"dropShadow"`
	DropShadowOffsetY string `yaml:"dropShadowOffsetY"`
	DropShadowBlur    string `yaml:"dropShadowBlur"`
	AutoWidth         *bool  `yaml:"autoWidth"`
	PaddingVertical   string `yaml:"paddingVertical"`
	PaddingHorizontal string `yaml:"paddingHorizontal"`
	Squared           *bool  `yaml:"squared"`
	Watermark         *bool  `yaml:"watermark"`
	ExportScale       int    `yaml:"exportScale"` // 1-4
}

// DefaultConfig returns an empty preset that overrides nothing.
func DefaultConfig() *Config {
	return &Config{}
}

// TimeoutDuration parses Timeout. An empty Timeout returns 0.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q: %v", ErrInvalidField, c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidField, d)
	}
	return d, nil
}

// Validate checks field lengths and ranges.
// Called automatically by LoadConfig.
func (c *Config) Validate() error {
	if err := validateFieldLength("endpoint", c.Endpoint, MaxURLLength); err != nil {
		return err
	}
	if c.Endpoint != "" && !strings.HasPrefix(c.Endpoint, "http://") && !strings.HasPrefix(c.Endpoint, "https://") {
		return fmt.Errorf("%w: endpoint %q must be an http(s) URL", ErrInvalidField, c.Endpoint)
	}
	if err := validateFieldLength("selector", c.Selector, MaxSelectorLength); err != nil {
		return err
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	s := c.Settings
	names := []struct {
		field string
		value string
		max   int
	}{
		{"settings.theme", s.Theme, MaxNameLength},
		{"settings.background", s.Background, MaxColorLength},
		{"settings.windowTheme", s.WindowTheme, MaxNameLength},
		{"settings.fontFamily", s.FontFamily, MaxNameLength},
		{"settings.fontSize", s.FontSize, MaxLengthValue},
		{"settings.dropShadowOffsetY", s.DropShadowOffsetY, MaxLengthValue},
		{"settings.dropShadowBlur", s.DropShadowBlur, MaxLengthValue},
		{"settings.paddingVertical", s.PaddingVertical, MaxLengthValue},
		{"settings.paddingHorizontal", s.PaddingHorizontal, MaxLengthValue},
	}
	for _, n := range names {
		if err := validateFieldLength(n.field, n.value, n.max); err != nil {
			return err
		}
	}

	if s.ExportScale < 0 || s.ExportScale > MaxExportScale {
		return fmt.Errorf("%w: settings.exportScale must be between 1 and %d, got %d", ErrInvalidField, MaxExportScale, s.ExportScale)
	}

	return nil
}

// Apply returns s with every key set in the preset overridden.
func (c *Config) Apply(s carbon.Settings) carbon.Settings {
	p := c.Settings

	setString(&s.Theme, p.Theme)
	setString(&s.Background, p.Background)
	setString(&s.WindowTheme, p.WindowTheme)
	setBool(&s.WindowControls, p.WindowControls)
	setString(&s.FontFamily, p.FontFamily)
	setString(&s.FontSize, p.FontSize)
	setBool(&s.LineNumbers, p.LineNumbers)
	setBool(&s.DropShadow, p.DropShadow)
	setString(&s.DropShadowOffsetY, p.DropShadowOffsetY)
	setString(&s.DropShadowBlur, p.DropShadowBlur)
	setBool(&s.AutoWidth, p.AutoWidth)
	setString(&s.PaddingVertical, p.PaddingVertical)
	setString(&s.PaddingHorizontal, p.PaddingHorizontal)
	setBool(&s.Squared, p.Squared)
	setBool(&s.Watermark, p.Watermark)
	if p.ExportScale > 0 {
		s.ExportScale = p.ExportScale
	}

	return s
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads a preset from a file path or preset name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a preset name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Searched: []string{configPath}}
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// NotFoundError lists the paths searched for a preset.
// It matches ErrConfigNotFound with errors.Is.
type NotFoundError struct {
	Searched []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: tried %s", ErrConfigNotFound, strings.Join(e.Searched, ", "))
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrConfigNotFound
}

// resolveConfigPath searches for a preset by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/carbon-now/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Searched: triedPaths}
}
