package csvgallery

import (
	flag "github.com/spf13/pflag"

	"github.com/deer-in-haze/go-csvgallery/internal/config"
)

// Config is the file-backed gallery configuration.
type Config = config.Config

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// LoadConfig loads a YAML configuration by name or path.
// Names are searched as ./<name>.yaml, ./<name>.yml, then under the user
// config directory in go-csvgallery/.
func LoadConfig(nameOrPath string) (*Config, error) {
	return config.LoadConfig(nameOrPath)
}

// RegisterFlags exposes cfg fields as command-line flags on fs, for programs
// embedding the gallery that want overrides on top of a config file.
func RegisterFlags(fs *flag.FlagSet, cfg *Config) {
	config.RegisterFlags(fs, cfg)
}
