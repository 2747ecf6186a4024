package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the configuration is looked up when --config is not given.
const DefaultPath = ".mrf.yaml"

const DefaultMaxPreviews = 5

// EnvPrefix prefixes environment overrides, e.g. MRF_CONCURRENCY.
const EnvPrefix = "MRF"

// Config represents the overall configuration.
type Config struct {
	// Concurrency bounds worker goroutines; 0 means runtime.NumCPU().
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
	// MaxPreviews is the number of mappings shown before confirmation.
	MaxPreviews int `yaml:"max_previews" mapstructure:"max_previews"`
	// Patterns names replacers so they can be referred to as "@name".
	// Names are case-insensitive.
	Patterns map[string]string `yaml:"patterns" mapstructure:"patterns"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Concurrency: 0,
		MaxPreviews: DefaultMaxPreviews,
		Patterns:    map[string]string{},
	}
}

// Load reads the configuration at path, then applies MRF_CONCURRENCY and
// MRF_MAX_PREVIEWS from the environment. A leading "~" in path is expanded.
// A missing file at the default path yields the defaults; a missing file
// anywhere else is an error.
func Load(path string) (Config, error) {
	config := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return config, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault("concurrency", config.Concurrency)
	v.SetDefault("max_previews", config.MaxPreviews)

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return config, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	if err := v.UnmarshalExact(&config); err != nil {
		return config, fmt.Errorf("parsing %s: %w", path, err)
	}
	if config.Patterns == nil {
		config.Patterns = map[string]string{}
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Validate reports values that cannot be used.
func (c Config) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	if c.MaxPreviews < 0 {
		return fmt.Errorf("max_previews must not be negative, got %d", c.MaxPreviews)
	}
	for name := range c.Patterns {
		if name == "" || strings.ContainsAny(name, " \t\n@.") {
			return fmt.Errorf("invalid pattern name %q", name)
		}
	}
	return nil
}

// ResolveReplacer expands "@name" to the named pattern; other strings are
// returned as-is.
func (c Config) ResolveReplacer(s string) (string, error) {
	name, ok := strings.CutPrefix(s, "@")
	if !ok {
		return s, nil
	}
	pattern, found := c.Patterns[strings.ToLower(name)]
	if !found {
		return "", fmt.Errorf("unknown pattern %q", name)
	}
	return pattern, nil
}

// Write stores the configuration at path, replacing any existing file.
func Write(path string, config Config) error {
	if path == "" {
		path = DefaultPath
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}

	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	if err != nil {
		return err
	}

	return nil
}
