package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/deer-in-haze/go-csvgallery/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxPathLength    = 4096
	MaxColumnLength  = 128
	MaxHeaderLength  = 100
	MaxTitleLength   = 200
	MaxNameLength    = 64 // style, template set, CSS class
	MaxImageWidth    = 4096
	MaxWorkers       = 64
	DefaultDataDir   = "data"
	DefaultImageSize = 120
)

// Config holds the gallery defaults.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Columns ColumnsConfig `yaml:"columns"`
	Table   TableConfig   `yaml:"table"`
	Assets  AssetsConfig  `yaml:"assets"`
	Render  RenderConfig  `yaml:"render"`
}

// DataConfig locates and parses datasets.
type DataConfig struct {
	Dir       string `yaml:"dir"`       // Directory dataset names are resolved under
	Delimiter string `yaml:"delimiter"` // Single character, empty = ","
}

// ColumnsConfig names the dataset columns read by the gallery.
type ColumnsConfig struct {
	Image string `yaml:"image"` // default IMAGE_PATH
	Name  string `yaml:"name"`  // default LATIN_NAME
}

// TableConfig shapes the rendered table.
type TableConfig struct {
	ImageWidth  int    `yaml:"imageWidth"`  // pixels, default 120
	ImageHeader string `yaml:"imageHeader"` // default "Image"
	NameHeader  string `yaml:"nameHeader"`  // default "Latin name"
	CSSClass    string `yaml:"cssClass"`    // default "csvgallery"
}

// AssetsConfig selects styles and templates.
type AssetsConfig struct {
	BasePath    string `yaml:"basePath"`    // Empty = embedded assets only
	Style       string `yaml:"style"`       // Style name, empty = default
	TemplateSet string `yaml:"templateSet"` // Template set name, empty = default
}

// RenderConfig tunes the rendering run.
type RenderConfig struct {
	Workers int    `yaml:"workers"` // 0 or 1 = sequential
	Timeout string `yaml:"timeout"` // Go duration, empty = no timeout
	Title   string `yaml:"title"`   // Page title
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Data:    DataConfig{Dir: DefaultDataDir},
		Columns: ColumnsConfig{Image: "IMAGE_PATH", Name: "LATIN_NAME"},
		Table: TableConfig{
			ImageWidth:  DefaultImageSize,
			ImageHeader: "Image",
			NameHeader:  "Latin name",
		},
	}
}

// TimeoutDuration parses Render.Timeout. Empty means zero.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Render.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Render.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: render.timeout: %v", ErrInvalidValue, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: render.timeout: must not be negative, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// DelimiterRune returns the dataset delimiter, ',' when unset.
func (c *Config) DelimiterRune() rune {
	if c.Data.Delimiter == "" {
		return ','
	}
	if c.Data.Delimiter == `\t` {
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(c.Data.Delimiter)
	return r
}

// Validate checks field lengths and ranges.
// Called by LoadConfig; available for configs built in code.
func (c *Config) Validate() error {
	if err := validateFieldLength("data.dir", c.Data.Dir, MaxPathLength); err != nil {
		return err
	}
	if d := c.Data.Delimiter; d != "" && d != `\t` {
		if utf8.RuneCountInString(d) != 1 || d == "\n" || d == "\r" || d == `"` {
			return fmt.Errorf("%w: data.delimiter: must be a single character other than quote or newline, got %q", ErrInvalidValue, d)
		}
	}

	if err := validateFieldLength("columns.image", c.Columns.Image, MaxColumnLength); err != nil {
		return err
	}
	if err := validateFieldLength("columns.name", c.Columns.Name, MaxColumnLength); err != nil {
		return err
	}

	if c.Table.ImageWidth < 0 || c.Table.ImageWidth > MaxImageWidth {
		return fmt.Errorf("%w: table.imageWidth: must be between 0 (default) and %d, got %d", ErrInvalidValue, MaxImageWidth, c.Table.ImageWidth)
	}
	if err := validateFieldLength("table.imageHeader", c.Table.ImageHeader, MaxHeaderLength); err != nil {
		return err
	}
	if err := validateFieldLength("table.nameHeader", c.Table.NameHeader, MaxHeaderLength); err != nil {
		return err
	}
	if err := validateFieldLength("table.cssClass", c.Table.CSSClass, MaxNameLength); err != nil {
		return err
	}
	if strings.ContainsAny(c.Table.CSSClass, "\"<>") {
		return fmt.Errorf("%w: table.cssClass: %q", ErrInvalidValue, c.Table.CSSClass)
	}

	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.style", c.Assets.Style, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.templateSet", c.Assets.TemplateSet, MaxNameLength); err != nil {
		return err
	}

	if c.Render.Workers < 0 || c.Render.Workers > MaxWorkers {
		return fmt.Errorf("%w: render.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Render.Workers)
	}
	if err := validateFieldLength("render.title", c.Render.Title, MaxTitleLength); err != nil {
		return err
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as a file; otherwise it is a
// name searched in standard locations. Unset fields keep DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if strings.ContainsAny(nameOrPath, "/\\") {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is caller-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name.
// Tries ./{name}.yaml, ./{name}.yml, then the same under the user config dir.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-csvgallery", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
